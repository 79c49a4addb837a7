package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"orient_store/internal/model"
	"orient_store/pkg/catalogfeed"
)

// CatalogFeed 外部目录数据源
type CatalogFeed interface {
	Collections(ctx context.Context) ([]catalogfeed.FeedCollection, error)
	Watches(ctx context.Context) ([]catalogfeed.FeedWatch, error)
}

// ProductImporter 以 SKU 为键写入商品
type ProductImporter interface {
	Import(ctx context.Context, products []model.Product) (int, error)
}

// CollectionImporter 写入系列
type CollectionImporter interface {
	Import(ctx context.Context, cs []model.Collection) error
}

// HomeInvalidator 首页缓存失效
type HomeInvalidator interface {
	InvalidateHome()
}

// FeedResult 一次同步的结果
type FeedResult struct {
	Collections int           `json:"collections"`
	Products    int           `json:"products"`
	Skipped     int           `json:"skipped"`
	FinishedAt  time.Time     `json:"finishedAt"`
	Elapsed     time.Duration `json:"elapsed"`
}

// ==================== CatalogFeedTask 目录同步任务 ====================

// CatalogFeedTask 定时从外部数据源拉取系列与商品并写入本地目录
type CatalogFeedTask struct {
	feed        CatalogFeed
	products    ProductImporter
	collections CollectionImporter
	home        HomeInvalidator
	cron        *cron.Cron
	log         *zap.Logger

	spec    string
	timeout time.Duration

	// 同一时间只允许一次同步
	running sync.Mutex

	mu      sync.Mutex
	last    *FeedResult
	lastErr error
}

// NewCatalogFeedTask 创建目录同步任务，home 可为 nil
func NewCatalogFeedTask(feed CatalogFeed, products ProductImporter, collections CollectionImporter,
	home HomeInvalidator, log *zap.Logger) *CatalogFeedTask {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogFeedTask{
		feed:        feed,
		products:    products,
		collections: collections,
		home:        home,
		cron:        cron.New(cron.WithSeconds()),
		log:         log.Named("catalog_feed"),
		spec:        "0 0 */6 * * *",
		timeout:     10 * time.Minute,
	}
}

// SetSchedule 设置 cron 表达式与单次超时
func (t *CatalogFeedTask) SetSchedule(spec string, timeout time.Duration) {
	if spec != "" {
		t.spec = spec
	}
	if timeout > 0 {
		t.timeout = timeout
	}
}

// Start 启动定时任务
func (t *CatalogFeedTask) Start() error {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		if _, err := t.Execute(ctx); err != nil {
			t.log.Warn("定时同步失败", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	t.cron.Start()
	t.log.Info("已启动", zap.String("spec", t.spec))
	return nil
}

// Stop 停止任务，等待正在执行的同步结束
func (t *CatalogFeedTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info("已停止")
}

// Execute 同步一次：先系列后商品，成功后清除首页缓存
func (t *CatalogFeedTask) Execute(ctx context.Context) (*FeedResult, error) {
	if !t.running.TryLock() {
		return nil, ErrTaskRunning
	}
	defer t.running.Unlock()

	start := time.Now()
	res, err := t.sync(ctx)

	t.mu.Lock()
	t.lastErr = err
	if err == nil {
		res.FinishedAt = time.Now()
		res.Elapsed = time.Since(start)
		t.last = res
	}
	t.mu.Unlock()

	if err != nil {
		return nil, err
	}
	t.log.Info("目录同步完成",
		zap.Int("collections", res.Collections),
		zap.Int("products", res.Products),
		zap.Int("skipped", res.Skipped),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

func (t *CatalogFeedTask) sync(ctx context.Context) (*FeedResult, error) {
	feedCollections, err := t.feed.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取系列失败: %w", err)
	}
	collections := catalogfeed.ToCollections(feedCollections)
	if len(collections) > 0 {
		if err := t.collections.Import(ctx, collections); err != nil {
			return nil, fmt.Errorf("写入系列失败: %w", err)
		}
	}

	watches, err := t.feed.Watches(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取商品失败: %w", err)
	}
	products := catalogfeed.ToProducts(watches)
	n, err := t.products.Import(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("写入商品失败: %w", err)
	}

	if t.home != nil {
		t.home.InvalidateHome()
	}
	return &FeedResult{
		Collections: len(collections),
		Products:    n,
		Skipped:     len(watches) - n,
	}, nil
}

// Last 上次成功结果与最近一次错误
func (t *CatalogFeedTask) Last() (*FeedResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.lastErr
}
