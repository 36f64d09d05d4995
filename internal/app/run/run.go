package run

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/DBMC/internal/config"
	"github.com/John-Robertt/DBMC/internal/domain"
	"github.com/John-Robertt/DBMC/internal/infra/fsx"
	"github.com/John-Robertt/DBMC/internal/provider/douban"
	"github.com/John-Robertt/DBMC/internal/sink"
)

// Execute 顺序驱动固定页数的抓取流水线：
// fetch → 过滤 → 提取 → 追加 CSV → 落盘海报 → 随机休眠。
//
// 错误分层：
// - 单页抓取失败：记 ERROR 日志后跳过该页（数据永久缺失，不重试），批次继续
// - 结构性解析失败 / 文件 IO 失败：致命，终止运行并返回错误
// 严格串行：慢页会阻塞后续所有页；休眠在失败页之后同样执行（避免失败后的
// 紧凑请求被站点视为滥用）。
func Execute(ctx context.Context, cfg config.RunConfig, pageClient, imageClient *http.Client, obs Observer) (domain.RunReport, error) {
	started := time.Now().UTC()
	if obs != nil {
		obs.OnStart(cfg)
	}

	rr := domain.RunReport{
		StartedAt: started,
		Pages:     make([]domain.PageResult, 0, cfg.Pages),
	}

	finish := func() {
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
	}

	// 海报目录必须在任何页处理前就绪。
	if err := fsx.EnsureDir(cfg.ImageDir); err != nil {
		finish()
		return rr, err
	}

	csvSink := sink.CSV{Path: cfg.CSVPath}
	if err := csvSink.Init(); err != nil {
		finish()
		return rr, err
	}
	posters := sink.PosterStore{Dir: cfg.ImageDir, Client: imageClient}

	for page := 0; page < cfg.Pages; page++ {
		pageStarted := time.Now()
		res, err := handleOnePage(ctx, cfg, page, pageClient, csvSink, posters)
		rr.Pages = append(rr.Pages, res)
		if err != nil {
			finish()
			return rr, err
		}
		if obs != nil {
			obs.OnPageDone(page, cfg.Pages, res, time.Since(pageStarted))
		}
		pace(cfg.SleepMin, cfg.SleepMax)
	}

	finish()
	if obs != nil {
		obs.OnFinish(rr)
	}
	return rr, nil
}

// handleOnePage 完成一页的完整子流水线。
// 返回 (res, nil) 表示该页已有定论（成功或可跳过的抓取失败）；
// 返回非 nil error 表示致命失败，调用方必须终止批次。
func handleOnePage(ctx context.Context, cfg config.RunConfig, page int, client *http.Client, csvSink sink.CSV, posters sink.PosterStore) (domain.PageResult, error) {
	res := domain.PageResult{
		Page:   page,
		Offset: page * cfg.PageSize,
		Status: domain.PageStatusOK,
	}

	html, err := douban.Fetch(ctx, client, cfg.BaseURL, page, cfg.PageSize)
	if err != nil {
		logrus.WithField("page", page).Errorf("请求失败：%v", err)
		res.Status = domain.PageStatusFailed
		res.ErrorMsg = err.Error()
		return res, nil
	}

	items, err := douban.Items(html)
	if err != nil {
		return fatal(&res, err), err
	}
	kept, err := douban.DomesticOnly(items, cfg.Marker)
	if err != nil {
		return fatal(&res, err), err
	}

	recs, err := douban.Records(kept)
	if err != nil {
		return fatal(&res, err), err
	}
	posterList, err := douban.Posters(kept)
	if err != nil {
		return fatal(&res, err), err
	}

	if err := csvSink.Append(recs); err != nil {
		return fatal(&res, err), err
	}
	saved, failed, err := posters.Save(ctx, posterList)
	res.PostersSaved = saved
	res.PostersFailed = failed
	if err != nil {
		return fatal(&res, err), err
	}

	res.Domestic = len(kept)
	logrus.WithField("page", page).Infof("第 %d 页处理完成，共 %d 部国产电影", page+1, len(kept))
	return res, nil
}

func fatal(res *domain.PageResult, err error) domain.PageResult {
	res.Status = domain.PageStatusFailed
	res.ErrorMsg = err.Error()
	return *res
}
