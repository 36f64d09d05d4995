package sink

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Slug 把不可信的电影标题转成确定性的、文件系统安全的文件名主干。
//
// 标题来自抓取的页面，直接当路径分量用会踩到分隔符、保留名等坑；
// 这里保留字母/数字（含中文），其余字符折叠为单个下划线，再追加
// 标题原文的 FNV-32a 短哈希，保证净化后撞名的标题仍能区分。
// 标题原文只保留在 CSV 里。
func Slug(title string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	stem := strings.Trim(b.String(), "_")
	if stem == "" {
		stem = "untitled"
	}

	h := fnv.New32a()
	h.Write([]byte(title))
	return fmt.Sprintf("%s-%08x", stem, h.Sum32())
}
