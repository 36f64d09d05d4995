package analyze

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/John-Robertt/DBMC/internal/config"
	"github.com/John-Robertt/DBMC/internal/domain"
	"github.com/John-Robertt/DBMC/internal/infra/fsx"
)

// 本包是抓取完成后的一次性后处理：重新读取 CSV（唯一的持久存储），
// 统计每年上榜的国产电影数量，渲染折线图并落盘。
// 抓取阶段不在内存里跨页保留任何记录，分析只信 CSV。

// ReadYears 重新打开 CSV，跳过表头，把年份列解析为整数。
// 解析失败是致命错误（与写入端“不校验年份”的约定对应：脏数据在这里暴露）。
func ReadYears(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV 缺少表头：%s", path)
	}

	years := make([]int, 0, len(rows)-1)
	for _, row := range rows[1:] {
		y, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("年份列解析失败：%q: %w", row[1], err)
		}
		years = append(years, y)
	}
	return years, nil
}

// Histogram 统计每年的电影数量，按年份升序返回。
func Histogram(years []int) []domain.YearCount {
	m := make(map[int]int, len(years))
	for _, y := range years {
		m[y]++
	}
	out := make([]domain.YearCount, 0, len(m))
	for y, c := range m {
		out = append(out, domain.YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Render 把直方图渲染为“带点标记的折线图”（虚线网格、中文标题与坐标轴标签），
// 以 PNG 原子落盘。空直方图渲染为只有标题与坐标轴的退化图，不报错。
func Render(counts []domain.YearCount, path string) error {
	initFonts()

	p := plot.New()
	p.Title.Text = "豆瓣电影Top250国产电影每年上榜数量变化趋势"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "年份"
	p.Y.Label.Text = "电影数量"
	p.Add(plotter.NewGrid())

	if len(counts) > 0 {
		xys := make(plotter.XYs, len(counts))
		for i, c := range counts {
			xys[i].X = float64(c.Year)
			xys[i].Y = float64(c.Count)
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(2)
		p.Add(line, points)
	}

	wt, err := p.WriterTo(12*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return err
	}
	return fsx.WriteFileAtomicReplace(filepath.Dir(path), filepath.Base(path), buf.Bytes())
}

// Run 执行完整的分析：读回 CSV → 直方图 → 渲染图表 →（可选）调起查看器。
// 查看器失败只记日志：图表文件本身已经是完整产物。
func Run(cfg config.RunConfig) error {
	years, err := ReadYears(cfg.CSVPath)
	if err != nil {
		return err
	}

	counts := Histogram(years)
	if err := Render(counts, cfg.ChartPath); err != nil {
		return err
	}
	logrus.WithField("years", len(counts)).Infof("分析完成，图表已保存：%s", cfg.ChartPath)

	if cfg.ShowChart {
		if err := Show(cfg.ChartPath); err != nil {
			logrus.Warnf("调起图表查看器失败：%v", err)
		}
	}
	return nil
}
