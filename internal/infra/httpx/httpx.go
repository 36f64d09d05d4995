package httpx

import (
	"errors"
	"net/http"
	"time"
)

// 目标站点会拒绝默认的 Go 客户端标识，必须伪装成桌面浏览器。
// UA 固定为单一值：本工具不做 UA 轮换，也不做重试/退避（礼貌抓取靠随机休眠）。
const desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36 Edg/137.0.0.0"

// defaultTimeout 是整体超时。源实现不配置超时（挂起会阻塞整个批次），
// 这里按既有网络层约定保留 20s 总超时，属于有记录的偏差。
const defaultTimeout = 20 * time.Second

// Transport 把“固定桌面 UA”固化为统一策略。
//
// 设计目标：provider 只负责“定位页面 + 解析 HTML”，不关心网络策略细节。
type Transport struct {
	Base http.RoundTripper

	// UA 为空时不注入（例如海报直链下载不需要特殊请求头）。
	UA string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	// Clone 会复制 Header 等，避免在 RoundTripper 内部“污染”调用方的 request。
	r := req.Clone(req.Context())
	if t.UA != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", t.UA)
	}
	return t.Base.RoundTrip(r)
}

// NewPageClient 构造用于榜单页抓取的 HTTP client（带固定桌面 UA）。
func NewPageClient() *http.Client {
	return newClient(desktopUA)
}

// NewImageClient 构造用于海报下载的 HTTP client（不带特殊请求头）。
func NewImageClient() *http.Client {
	return newClient("")
}

func newClient(ua string) *http.Client {
	base := &http.Transport{
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
	}
	return &http.Client{
		Transport: &Transport{Base: base, UA: ua},
		Timeout:   defaultTimeout,
	}
}
