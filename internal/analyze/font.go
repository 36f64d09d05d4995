package analyze

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
)

var fontOnce sync.Once

// cjkFontPaths 是常见发行版里中日韩字体的安装位置，按优先级排列。
var cjkFontPaths = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/wenquanyi/wqy-microhei/wqy-microhei.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"C:\\Windows\\Fonts\\simsun.ttc",
}

// initFonts 把图表默认字体切到系统中文字体（进程级一次性初始化，幂等）。
// 找不到可用字体时退回内置西文字体：图表仍能渲染，中文字符会缺字形。
func initFonts() {
	fontOnce.Do(func() {
		for _, path := range cjkFontPaths {
			raw, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			coll, err := opentype.ParseCollection(raw)
			if err != nil {
				logrus.Warnf("解析字体失败 %s：%v", path, err)
				continue
			}
			face, err := coll.Font(0)
			if err != nil {
				logrus.Warnf("读取字体失败 %s：%v", path, err)
				continue
			}

			const typeface = font.Typeface("CJK")
			font.DefaultCache.Add([]font.Face{{
				Font: font.Font{Typeface: typeface},
				Face: face,
			}})
			plot.DefaultFont = font.Font{Typeface: typeface}
			return
		}
		logrus.Warn("未找到可用的中文字体，图表中文字符可能缺字形")
	})
}
