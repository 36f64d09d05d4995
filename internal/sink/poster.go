package sink

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/DBMC/internal/domain"
	"github.com/John-Robertt/DBMC/internal/infra/fsx"
)

// PosterStore 把海报原始字节落盘到固定目录，文件名为标题的 slug + ".jpg"。
type PosterStore struct {
	Dir    string
	Client *http.Client
}

// Save 逐条下载海报并写盘。
//
// - 下载失败：记 ERROR 日志（带 URL）后跳过，不中断批次，也不留占位文件
// - 写盘失败：致命，原样返回错误
// - 响应字节不做解码/转码，按原样写入（与 CSV 中的链接保持一致）
func (s PosterStore) Save(ctx context.Context, posters []domain.MoviePoster) (saved, failed int, err error) {
	for _, p := range posters {
		b, derr := s.download(ctx, p.URL)
		if derr != nil {
			logrus.WithField("url", p.URL).Errorf("下载海报失败：%v", derr)
			failed++
			continue
		}
		if werr := fsx.WriteFileAtomicReplace(s.Dir, Slug(p.Title)+".jpg", b); werr != nil {
			return saved, failed, werr
		}
		saved++
	}
	return saved, failed, nil
}

func (s PosterStore) download(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
