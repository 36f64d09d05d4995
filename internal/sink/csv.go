package sink

import (
	"encoding/csv"
	"os"

	"github.com/John-Robertt/DBMC/internal/domain"
)

// Header 是 CSV 的固定表头（标题、年份、海报链接）。
var Header = []string{"电影名称", "上映年份", "海报链接"}

// CSV 是本工具唯一的持久存储：表头写一次，之后每页追加。
// 追加式写入让中断后的产物仍然可读（分析阶段只依赖该文件）。
type CSV struct {
	Path string
}

// Init 截断/创建文件并写入表头。每次运行恰好调用一次，且先于任何页处理。
func (c CSV) Init() error {
	f, err := os.Create(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Append 以追加模式打开文件并写入一页的记录，一条记录一行。
// encoding/csv 统一用 \n 结尾，不会产生平台相关的空行。
func (c CSV) Append(records []domain.MovieRecord) error {
	f, err := os.OpenFile(c.Path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, r := range records {
		if err := w.Write([]string{r.Title, r.Year, r.PosterURL}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
