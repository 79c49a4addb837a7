package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClientOptions 出站请求配置
type HTTPClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	ProxyURL  string
	UserAgent string
	Debug     bool
	Retries   int
}

// NewHTTPClient 创建一个配置好代理、超时和重试的 Resty 客户端
// 它是全系统统一的出站请求入口
func NewHTTPClient(opts HTTPClientOptions) *resty.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Orient-Store/1.0"
	}

	client := resty.New().
		SetDebug(opts.Debug).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent)

	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}

	// 只要配置了代理地址就挂载
	if opts.ProxyURL != "" {
		client.SetProxy(opts.ProxyURL)
	}

	if opts.Retries > 0 {
		client.SetRetryCount(opts.Retries).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(5 * time.Second)
	}

	return client
}
