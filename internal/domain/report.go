package domain

import (
	"encoding/json"
	"time"
)

const (
	PageStatusOK     = "ok"
	PageStatusFailed = "failed"
)

// RunReport 是对外稳定输出（stdout JSON）的结构。
type RunReport struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`
	Pages   []PageResult  `json:"pages"`
}

type ReportSummary struct {
	PagesOK       int `json:"pages_ok"`
	PagesFailed   int `json:"pages_failed"`
	Records       int `json:"records"`
	PostersSaved  int `json:"posters_saved"`
	PostersFailed int `json:"posters_failed"`
}

// PageResult 是单页处理的结果（失败页也占一条，便于解释“哪页的数据永久缺失”）。
type PageResult struct {
	Page   int    `json:"page"`   // 0 起始的页码
	Offset int    `json:"offset"` // 请求参数 start 的取值
	Status string `json:"status"`

	Domestic      int `json:"domestic"` // 保留的国产条目数
	PostersSaved  int `json:"posters_saved"`
	PostersFailed int `json:"posters_failed"`

	ErrorMsg string `json:"error_msg"`
}

// Finalize 做两件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) summary 由 pages 计算得出
//
// pages 不排序：页序即处理序（0..9），乱序本身就是 bug。
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	var s ReportSummary
	for _, p := range r.Pages {
		switch p.Status {
		case PageStatusOK:
			s.PagesOK++
		case PageStatusFailed:
			s.PagesFailed++
		}
		s.Records += p.Domestic
		s.PostersSaved += p.PostersSaved
		s.PostersFailed += p.PostersFailed
	}
	r.Summary = s
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
// 当前只是透传 encoding/json 的默认行为。
func (r RunReport) MarshalJSON() ([]byte, error) {
	type Alias RunReport
	return json.Marshal(Alias(r))
}
