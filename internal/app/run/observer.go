package run

import (
	"time"

	"github.com/John-Robertt/DBMC/internal/config"
	"github.com/John-Robertt/DBMC/internal/domain"
)

// Observer 用于把“运行进度/单页结果”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）
// - 执行严格串行，事件按页序到达，实现无需考虑并发
type Observer interface {
	// OnStart 在 Execute 开始时调用（应尽量早，保证用户 1 秒内看到输出）。
	OnStart(cfg config.RunConfig)
	// OnPageDone 在某一页处理完成时调用（失败页也会触发）。
	OnPageDone(page, total int, res domain.PageResult, dur time.Duration)
	// OnFinish 在整个批次正常走完时调用（致命终止不触发）。
	OnFinish(rr domain.RunReport)
}
