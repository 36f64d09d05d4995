package douban

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/DBMC/internal/domain"
)

// 本包实现豆瓣 Top 250 榜单页的抓取与解析。
//
// 约束：
// - Fetch 不做缓存、不做重试、不做限速（限速由上层的随机休眠统一实现）
// - Items/DomesticOnly/Records 等解析函数必须是纯函数：相同输入 => 相同输出
// - 条目顺序始终保持页面源顺序（下游依赖该顺序解释结果）

// HTTPStatusError 表示站点返回了非 2xx 的 HTTP 状态码。
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	return fmt.Sprintf("HTTP %d url=%s", e.StatusCode, e.URL)
}

// ShapeError 表示页面缺失期望的嵌套结构（站点结构可能已变化）。
// 产品约束：结构性失败视为致命错误，终止本次运行，不做逐条降级。
type ShapeError struct {
	Want string // 期望命中的选择器
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("页面结构缺失：%s（站点结构可能已变化）", e.Want)
}

// PageURL 拼出第 page 页（0 起始）的请求 URL：start = page*stride。
func PageURL(baseURL string, page, stride int) string {
	return fmt.Sprintf("%s?start=%d", baseURL, page*stride)
}

// Fetch 抓取第 page 页（0 起始）的榜单 HTML。
// 非 2xx 返回 *HTTPStatusError；传输错误原样返回。单页失败由上层记录并跳过。
func Fetch(ctx context.Context, c *http.Client, baseURL string, page, stride int) ([]byte, error) {
	if c == nil {
		return nil, errors.New("http client 不能为空")
	}
	if page < 0 {
		return nil, fmt.Errorf("页码必须 >= 0，实际 %d", page)
	}

	u := PageURL(baseURL, page, stride)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{URL: u, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// Item 是一条榜单条目（<div class="item">）的不透明包装。
// 生命周期限定在单页处理内：解析完成后即丢弃，不跨页持有。
type Item struct {
	sel *goquery.Selection
}

// Items 解析 HTML 并返回全部榜单条目，顺序与页面源顺序一致。
func Items(html []byte) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	var items []Item
	doc.Find("div.item").Each(func(_ int, s *goquery.Selection) {
		items = append(items, Item{sel: s})
	})
	return items, nil
}

// DomesticOnly 过滤出简介段全文包含 marker 的条目（国产判定）。
//
// - 仅依据简介段文本判定，不看任何其他字段
// - 保留原顺序；谓词幂等（对已过滤列表重过滤结果不变）
// - 条目缺失简介段结构时返回 *ShapeError（致命）
func DomesticOnly(items []Item, marker string) ([]Item, error) {
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		p := it.sel.Find("div.bd p").First()
		if p.Length() == 0 {
			return nil, &ShapeError{Want: "div.bd p"}
		}
		if strings.Contains(p.Text(), marker) {
			kept = append(kept, it)
		}
	}
	return kept, nil
}

// Record 在一次遍历内提取单个条目的完整记录。
//
// 把（名称，年份）与（名称，海报）合并为一条记录是刻意设计：两份独立投影靠
// 下标 zip 配对时，任何一侧的静默缺项都会让整页数据错位。单遍提取让配对
// 不再依赖位置对齐。
func Record(it Item) (domain.MovieRecord, error) {
	title := it.sel.Find("div.hd span.title").First()
	if title.Length() == 0 {
		return domain.MovieRecord{}, &ShapeError{Want: "div.hd span.title"}
	}

	p := it.sel.Find("div.bd p").First()
	if p.Length() == 0 {
		return domain.MovieRecord{}, &ShapeError{Want: "div.bd p"}
	}

	img := it.sel.Find("div.pic img").First()
	if img.Length() == 0 {
		return domain.MovieRecord{}, &ShapeError{Want: "div.pic img"}
	}
	src, ok := img.Attr("src")
	if !ok {
		return domain.MovieRecord{}, &ShapeError{Want: "div.pic img[src]"}
	}

	return domain.MovieRecord{
		Title:     title.Text(),
		Year:      yearFromDetail(p.Text()),
		PosterURL: strings.TrimSpace(src),
	}, nil
}

// Records 对过滤后的条目逐条提取完整记录，长度与输入一致。
func Records(items []Item) ([]domain.MovieRecord, error) {
	out := make([]domain.MovieRecord, 0, len(items))
	for _, it := range items {
		r, err := Record(it)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Infos 是（电影名称，上映年份）投影，由 Records 派生：长度与顺序天然一致。
func Infos(items []Item) ([]domain.MovieInfo, error) {
	recs, err := Records(items)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MovieInfo, len(recs))
	for i, r := range recs {
		out[i] = domain.MovieInfo{Title: r.Title, Year: r.Year}
	}
	return out, nil
}

// Posters 是（电影名称，海报链接）投影，名称取图片 alt 属性（与海报同源）。
func Posters(items []Item) ([]domain.MoviePoster, error) {
	out := make([]domain.MoviePoster, 0, len(items))
	for _, it := range items {
		img := it.sel.Find("div.pic img").First()
		if img.Length() == 0 {
			return nil, &ShapeError{Want: "div.pic img"}
		}
		alt, ok := img.Attr("alt")
		if !ok {
			return nil, &ShapeError{Want: "div.pic img[alt]"}
		}
		src, ok := img.Attr("src")
		if !ok {
			return nil, &ShapeError{Want: "div.pic img[src]"}
		}
		out = append(out, domain.MoviePoster{
			Title: strings.TrimSpace(alt),
			URL:   strings.TrimSpace(src),
		})
	}
	return out, nil
}

// yearFromDetail 从简介段全文提取年份：整体去首尾空白后取第二行，
// 再取去空白后的前 4 个字符。不做数值校验（脏数据原样透传）。
func yearFromDetail(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return ""
	}
	second := []rune(strings.TrimSpace(lines[1]))
	if len(second) > 4 {
		second = second[:4]
	}
	return string(second)
}
