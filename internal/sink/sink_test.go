package sink

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/John-Robertt/DBMC/internal/domain"
)

func TestCSV_InitThenAppend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "douban.csv")
	c := CSV{Path: path}

	if err := c.Init(); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	// 两次 Append 模拟两页：第二次不得覆盖第一次。
	if err := c.Append([]domain.MovieRecord{
		{Title: "霸王别姬", Year: "1993", PosterURL: "https://img.test/1.jpg"},
		{Title: "活着", Year: "1994", PosterURL: "https://img.test/2.jpg"},
	}); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if err := c.Append([]domain.MovieRecord{
		{Title: "大话西游之大圣娶亲", Year: "1995", PosterURL: "https://img.test/3.jpg"},
	}); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("打开 CSV 失败：%v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("读取 CSV 失败：%v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("期望表头 + 3 行数据，实际 %d 行", len(rows))
	}
	if rows[0][0] != "电影名称" || rows[0][1] != "上映年份" || rows[0][2] != "海报链接" {
		t.Fatalf("表头不符合预期：%v", rows[0])
	}
	if rows[1][0] != "霸王别姬" || rows[1][1] != "1993" {
		t.Fatalf("首行数据不符合预期：%v", rows[1])
	}
	if rows[3][0] != "大话西游之大圣娶亲" {
		t.Fatalf("追加顺序必须是页序：%v", rows[3])
	}
}

func TestCSV_InitTruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "douban.csv")
	c := CSV{Path: path}

	if err := c.Init(); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if err := c.Append([]domain.MovieRecord{{Title: "旧数据", Year: "2000"}}); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if err := c.Init(); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "旧数据") {
		t.Fatalf("Init 必须截断上一次运行的数据：%q", string(b))
	}
}

func TestSlug_DeterministicAndSafe(t *testing.T) {
	a := Slug("霸王别姬")
	b := Slug("霸王别姬")
	if a != b {
		t.Fatalf("slug 必须是确定性的：%q != %q", a, b)
	}
	if !strings.HasPrefix(a, "霸王别姬-") {
		t.Fatalf("slug 应保留中文字符：%q", a)
	}

	tricky := Slug(`a/b\c:d*e?"f"<g>|h`)
	for _, bad := range []string{"/", "\\", ":", "*", "?", `"`, "<", ">", "|"} {
		if strings.Contains(tricky, bad) {
			t.Fatalf("slug 不得包含路径危险字符 %q：%q", bad, tricky)
		}
	}

	// 净化后相同、原文不同的标题必须产生不同文件名。
	if Slug("大话西游:月光宝盒") == Slug("大话西游*月光宝盒") {
		t.Fatalf("短哈希必须区分净化后撞名的标题")
	}

	if !strings.HasPrefix(Slug("!!!"), "untitled-") {
		t.Fatalf("全符号标题应落到 untitled 主干：%q", Slug("!!!"))
	}
}

func TestPosterStore_SaveAndSkipFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Write([]byte("jpegbytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	st := PosterStore{Dir: dir, Client: srv.Client()}

	saved, failed, err := st.Save(context.Background(), []domain.MoviePoster{
		{Title: "霸王别姬", URL: srv.URL + "/ok/1.jpg"},
		{Title: "坏链接", URL: srv.URL + "/bad/2.jpg"},
		{Title: "活着", URL: srv.URL + "/ok/3.jpg"},
	})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if saved != 2 || failed != 1 {
		t.Fatalf("期望 saved=2 failed=1，实际 saved=%d failed=%d", saved, failed)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir 失败：%v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("下载失败不得留下占位文件：%v", entries)
	}

	b, err := os.ReadFile(filepath.Join(dir, Slug("霸王别姬")+".jpg"))
	if err != nil {
		t.Fatalf("读取海报失败：%v", err)
	}
	if string(b) != "jpegbytes" {
		t.Fatalf("海报字节必须原样写入：%q", string(b))
	}
}
