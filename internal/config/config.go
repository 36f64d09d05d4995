package config

import "time"

// RunConfig 是实现层直接消费的运行参数（不再做二次默认/优先级判断）。
//
// 本工具刻意不提供 CLI 参数、环境变量与配置文件：目标站点结构固定，
// 参数全部是常量；可变的只有测试里注入的路径。
type RunConfig struct {
	// BaseURL 是榜单页的基础 URL；请求参数 start = 页码*PageSize。
	BaseURL string
	// Pages 是固定抓取的页数（页码 0..Pages-1）。
	Pages int
	// PageSize 是每页条目数，同时也是 start 参数的步长。
	PageSize int

	// SleepMin/SleepMax 是页与页之间随机休眠的闭区间。
	SleepMin time.Duration
	SleepMax time.Duration

	// Marker 是“国产”判定的字面子串（出现在条目简介段全文中）。
	Marker string

	CSVPath   string
	ImageDir  string
	LogPath   string
	ChartPath string

	// ShowChart 控制是否在保存图表后尝试调起系统查看器。
	ShowChart bool
}

// Defaults 返回全部固定参数。调用方如需改路径（仅测试场景），改返回值副本即可。
func Defaults() RunConfig {
	return RunConfig{
		BaseURL:   "https://movie.douban.com/top250",
		Pages:     10,
		PageSize:  25,
		SleepMin:  1 * time.Second,
		SleepMax:  3 * time.Second,
		Marker:    "中国",
		CSVPath:   "douban.csv",
		ImageDir:  "film_img",
		LogPath:   "douban.log",
		ChartPath: "douban.png",
		ShowChart: true,
	}
}
