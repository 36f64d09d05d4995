package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/DBMC/internal/analyze"
	"github.com/John-Robertt/DBMC/internal/app/run"
	"github.com/John-Robertt/DBMC/internal/config"
	"github.com/John-Robertt/DBMC/internal/domain"
	"github.com/John-Robertt/DBMC/internal/infra/httpx"
	"github.com/John-Robertt/DBMC/internal/infra/logx"
)

// dbmc 抓取豆瓣电影 Top 250 的国产条目，落盘 CSV 与海报，并生成年度趋势图。
// 刻意不提供任何 CLI 参数/环境变量/配置文件：全部参数是固定常量。
func main() {
	if len(os.Args) > 1 && isHelp(os.Args[1]) {
		printUsage()
		return
	}
	if code := runMain(); code != 0 {
		os.Exit(code)
	}
}

func runMain() int {
	cfg := config.Defaults()

	if err := logx.Init(cfg.LogPath); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败：%v\n", err)
		return 1
	}

	progressW, interactive := pickProgressWriter()
	var obs run.Observer
	if interactive {
		obs = newProgressUI(progressW)
	}

	rr, err := run.Execute(context.Background(), cfg, httpx.NewPageClient(), httpx.NewImageClient(), obs)
	if err != nil {
		logrus.Errorf("运行终止：%v", err)
		fmt.Fprintf(os.Stderr, "运行终止：%v\n", err)
		emitReport(rr)
		return 1
	}

	if err := analyze.Run(cfg); err != nil {
		logrus.Errorf("分析失败：%v", err)
		fmt.Fprintf(os.Stderr, "分析失败：%v\n", err)
		emitReport(rr)
		return 1
	}

	emitReport(rr)
	if interactive {
		emitLocations(progressW, cfg)
	}
	// 单页失败不致命，但必须让调用方可见（该页数据已永久缺失）。
	if rr.Summary.PagesFailed == 0 {
		return 0
	}
	return 1
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  dbmc

抓取豆瓣电影 Top 250 的国产条目（固定 10 页），写入 douban.csv 与 film_img/，
随后生成年度趋势图 douban.png。无任何可配置参数。
`)
}

func emitReport(rr domain.RunReport) {
	if isTTY(os.Stdout) {
		fmt.Fprintf(os.Stdout, "完成：pages_ok=%d pages_failed=%d records=%d posters_saved=%d posters_failed=%d\n",
			rr.Summary.PagesOK, rr.Summary.PagesFailed, rr.Summary.Records,
			rr.Summary.PostersSaved, rr.Summary.PostersFailed,
		)
		for _, p := range rr.Pages {
			if p.Status != domain.PageStatusFailed {
				continue
			}
			fmt.Fprintf(os.Stderr, "page %d (start=%d): %s\n", p.Page, p.Offset, p.ErrorMsg)
		}
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 RunReport JSON（摘要走 stderr）。
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintf(os.Stderr, "完成：pages_ok=%d pages_failed=%d records=%d\n",
		rr.Summary.PagesOK, rr.Summary.PagesFailed, rr.Summary.Records,
	)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func pickProgressWriter() (io.Writer, bool) {
	// 进度输出只在交互终端启用；默认走 stderr（不污染 stdout JSON）。
	if isTTY(os.Stderr) {
		return os.Stderr, true
	}
	// 某些环境（例如仅重定向 stderr）下，stdout 仍是 TTY：退化输出到 stdout。
	if isTTY(os.Stdout) {
		return os.Stdout, true
	}
	return nil, false
}

func emitLocations(w io.Writer, cfg config.RunConfig) {
	// 降低“完成后不知道产物在哪”的摩擦，且不影响 stdout JSON 契约。
	if w == nil {
		return
	}
	fmt.Fprintf(w, "csv: %s\n", cfg.CSVPath)
	fmt.Fprintf(w, "img: %s\n", cfg.ImageDir)
	fmt.Fprintf(w, "chart: %s\n", cfg.ChartPath)
	fmt.Fprintf(w, "log: %s\n", cfg.LogPath)
}
