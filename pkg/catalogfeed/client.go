package catalogfeed

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"orient_store/internal/model"
	"orient_store/pkg/utils"
)

// 翻页上限，防止数据源 next_page 循环
const maxPages = 200

var ErrFeedDisabled = errors.New("catalogfeed: 未配置数据源地址")

// Config 数据源配置
type Config struct {
	BaseURL  string
	APIKey   string
	ProxyURL string
	Timeout  time.Duration
	Retries  int
}

// Client 外部目录数据源客户端
type Client struct {
	http *resty.Client
}

// NewClient BaseURL 为空时返回 ErrFeedDisabled
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrFeedDisabled
	}
	c := utils.NewHTTPClient(utils.HTTPClientOptions{
		BaseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		Timeout:  cfg.Timeout,
		ProxyURL: cfg.ProxyURL,
		Retries:  cfg.Retries,
	})
	c.SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		c.SetHeader("x-api-key", cfg.APIKey)
	}
	return &Client{http: c}, nil
}

// Collections 拉取全部系列
func (c *Client) Collections(ctx context.Context) ([]FeedCollection, error) {
	var out FeedCollectionsResp
	if err := c.get(ctx, "/collections", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Watches 按 next_page 翻页拉取全部商品
func (c *Client) Watches(ctx context.Context) ([]FeedWatch, error) {
	var all []FeedWatch
	page := 1
	for i := 0; i < maxPages && page > 0; i++ {
		var out FeedWatchesResp
		params := map[string]string{"page": strconv.Itoa(page)}
		if err := c.get(ctx, "/watches", params, &out); err != nil {
			return nil, fmt.Errorf("第 %d 页: %w", page, err)
		}
		all = append(all, out.Results...)
		page = out.NextPage
	}
	return all, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	var apiErr FeedErrorResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		SetError(&apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("请求目录数据源失败: %w", err)
	}
	if resp.IsError() {
		msg := apiErr.ErrorDescription
		if msg == "" {
			msg = apiErr.Error
		}
		if msg == "" {
			msg = resp.Status()
		}
		return fmt.Errorf("目录数据源返回 %d: %s", resp.StatusCode(), msg)
	}
	return nil
}

// ==================== 转换 ====================

// ToProducts 转为商品模型，缺少 SKU 或名称的条目跳过
func ToProducts(items []FeedWatch) []model.Product {
	out := make([]model.Product, 0, len(items))
	for _, w := range items {
		sku := strings.TrimSpace(w.SKU)
		if sku == "" || strings.TrimSpace(w.Name) == "" {
			continue
		}
		specs := make([]model.SpecPair, len(w.Specs))
		for i, s := range w.Specs {
			specs[i] = model.SpecPair{Label: s.Label, Value: s.Value}
		}
		p := model.Product{
			Name:            strings.TrimSpace(w.Name),
			Collection:      strings.TrimSpace(w.Collection),
			Description:     w.Description,
			SKU:             &sku,
			Price:           w.Price,
			InStock:         w.InStock,
			StockQuantity:   w.StockQuantity,
			Images:          w.Images,
			Features:        w.Features,
			Specs:           specs,
			Movement:        strings.ToLower(w.Movement),
			CaseMaterial:    strings.ToLower(w.CaseMaterial),
			DialColor:       strings.ToLower(w.DialColor),
			WaterResistance: strings.ToLower(w.WaterResistance),
		}
		if len(w.Images) > 0 {
			p.Image = w.Images[0]
		}
		out = append(out, p)
	}
	return out
}

// ToCollections 转为系列模型，默认启用
func ToCollections(items []FeedCollection) []model.Collection {
	out := make([]model.Collection, 0, len(items))
	for _, fc := range items {
		slug := strings.TrimSpace(fc.Slug)
		if slug == "" || fc.Name == "" {
			continue
		}
		out = append(out, model.Collection{
			ID:          slug,
			Name:        fc.Name,
			Description: fc.Description,
			Image:       fc.Image,
			Number:      fc.Number,
			Active:      true,
		})
	}
	return out
}
