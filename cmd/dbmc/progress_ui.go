package main

import (
	"fmt"
	"io"
	"time"

	"github.com/John-Robertt/DBMC/internal/app/run"
	"github.com/John-Robertt/DBMC/internal/config"
	"github.com/John-Robertt/DBMC/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是交互终端下的逐页进度输出。
//
// 设计目标：
// - 所有过程信息写到 stderr（或 fallback 到 stdout），不污染 stdout 的 JSON 输出契约
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - 执行严格串行，事件按页序到达，无需加锁
type progressUI struct {
	w         io.Writer
	startedAt time.Time
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

func (p *progressUI) OnStart(cfg config.RunConfig) {
	p.startedAt = time.Now()

	fmt.Fprintf(p.w, "[%s] DBMC run\n", p.startedAt.Format("15:04:05"))
	fmt.Fprintln(p.w, "参数（固定）:")
	fmt.Fprintf(p.w, "  base_url: %s\n", cfg.BaseURL)
	fmt.Fprintf(p.w, "  pages: %d（start 步长 %d）\n", cfg.Pages, cfg.PageSize)
	fmt.Fprintf(p.w, "  pacing: [%s, %s]\n", cfg.SleepMin, cfg.SleepMax)
	fmt.Fprintf(p.w, "  marker: %q\n", cfg.Marker)
	fmt.Fprintln(p.w)
}

func (p *progressUI) OnPageDone(page, total int, res domain.PageResult, dur time.Duration) {
	switch res.Status {
	case domain.PageStatusFailed:
		fmt.Fprintf(p.w, "页 %d/%d FAIL start=%d：%s (%s)\n",
			page+1, total, res.Offset, res.ErrorMsg, formatShortDuration(dur))
	default:
		fmt.Fprintf(p.w, "页 %d/%d OK 国产=%d 海报=%d/%d (%s)\n",
			page+1, total, res.Domestic, res.PostersSaved, res.PostersSaved+res.PostersFailed,
			formatShortDuration(dur))
	}
}

func (p *progressUI) OnFinish(rr domain.RunReport) {
	fmt.Fprintf(p.w, "\n抓取完成：%d 条记录，耗时 %s\n",
		rr.Summary.Records, formatShortDuration(time.Since(p.startedAt)))
}

func formatShortDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
