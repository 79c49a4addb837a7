package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/storefront"
)

// ==================== PageSession 详情页会话 ====================

// PageSession 一个打开的商品详情页
// 画廊、加购、相关商品轮播三个控制器的生命周期与会话一致，Close 即页面卸载。
type PageSession struct {
	ID       string
	CartID   string
	OpenedAt time.Time

	product dto.ProductResp
	related []dto.ProductResp

	gallery  *storefront.GalleryController
	cart     *storefront.AddToCartController
	carousel *storefront.CarouselTracker
	carts    *CartService

	version  atomic.Uint64
	lastSeen atomic.Int64 // unix nano
	now      func() time.Time
}

func (p *PageSession) touch() {
	p.lastSeen.Store(p.now().UnixNano())
}

func (p *PageSession) bump() {
	p.version.Add(1)
}

// LastSeen 最近一次操作时间
func (p *PageSession) LastSeen() time.Time {
	return time.Unix(0, p.lastSeen.Load())
}

// Version 每次状态变化递增，视图层据此判断是否需要重绘
func (p *PageSession) Version() uint64 {
	return p.version.Load()
}

// View 当前完整视图
func (p *PageSession) View() dto.PageView {
	return dto.PageView{
		SessionID: p.ID,
		Version:   p.Version(),
		Product:   p.product,
		Gallery:   p.gallery.State(),
		AddToCart: p.cart.State(),
		Related:   p.related,
		Carousel:  p.carousel.State(),
		CartCount: p.carts.Count(p.CartID),
		OpenedAt:  p.OpenedAt,
	}
}

// ---------- 画廊 ----------

func (p *PageSession) SelectImage(index int) error {
	p.touch()
	if err := p.gallery.Select(index); err != nil {
		return err
	}
	p.bump()
	return nil
}

func (p *PageSession) NextImage() {
	p.touch()
	p.gallery.Next()
	p.bump()
}

func (p *PageSession) PreviousImage() {
	p.touch()
	p.gallery.Previous()
	p.bump()
}

func (p *PageSession) MovePointer(clientX, clientY float64, bounds storefront.Rect) {
	p.touch()
	p.gallery.UpdatePointer(clientX, clientY, bounds)
	p.bump()
}

func (p *PageSession) SetZoom(active bool, viewportWidth float64) {
	p.touch()
	p.gallery.SetZoomActive(active, viewportWidth)
	p.bump()
}

func (p *PageSession) PointerLeave() {
	p.touch()
	p.gallery.PointerLeave()
	p.bump()
}

// ---------- 加购 ----------
// 加购控制器通过 onChange 自行递增版本号

func (p *PageSession) SetQuantity(n int) {
	p.touch()
	p.cart.SetQuantity(n)
}

func (p *PageSession) ChangeQuantity(delta int) {
	p.touch()
	switch {
	case delta > 0:
		p.cart.Increment()
	case delta < 0:
		p.cart.Decrement()
	}
}

// AddToCart 返回 false 表示动画进行中，本次点击被忽略
func (p *PageSession) AddToCart(origin storefront.Rect, viewportWidth float64) bool {
	p.touch()
	return p.cart.Click(origin, viewportWidth)
}

// ---------- 相关商品轮播 ----------

func (p *PageSession) MeasureCarousel(m storefront.ScrollMetrics) {
	p.touch()
	p.carousel.Measure(m)
	p.bump()
}

func (p *PageSession) ScrollCarousel(dir storefront.Direction) float64 {
	p.touch()
	target := p.carousel.ScrollBy(dir)
	p.bump()
	return target
}

func (p *PageSession) dispose() {
	p.cart.Dispose()
	p.carousel.Dispose()
}

// ==================== PageSessionService ====================

// PageSessionService 管理所有打开的详情页会话
type PageSessionService struct {
	catalog *CatalogService
	carts   *CartService
	sched   storefront.Scheduler
	now     func() time.Time
	log     *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*PageSession
}

// SessionOption 会话服务配置项
type SessionOption func(*PageSessionService)

// WithScheduler 替换定时器（测试使用虚拟时钟）
func WithScheduler(s storefront.Scheduler) SessionOption {
	return func(svc *PageSessionService) { svc.sched = s }
}

// WithClock 替换当前时间函数
func WithClock(now func() time.Time) SessionOption {
	return func(svc *PageSessionService) { svc.now = now }
}

func NewPageSessionService(catalog *CatalogService, carts *CartService, log *zap.Logger, opts ...SessionOption) *PageSessionService {
	if log == nil {
		log = zap.NewNop()
	}
	svc := &PageSessionService{
		catalog:  catalog,
		carts:    carts,
		sched:    storefront.RealScheduler{},
		now:      time.Now,
		log:      log.Named("page_session"),
		sessions: make(map[string]*PageSession),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Open 打开商品详情页
// 商品没有图片时画廊为空状态，不视为错误。cartID 为空时使用会话 ID。
func (s *PageSessionService) Open(ctx context.Context, productID, cartID string) (*PageSession, error) {
	product, err := s.catalog.GetByPublicID(ctx, productID)
	if err != nil {
		return nil, err
	}
	related, err := s.catalog.Related(ctx, product, RelatedLimit)
	if err != nil {
		return nil, err
	}
	s.catalog.RecordView(ctx, product.ID)

	id := uuid.NewString()
	if cartID == "" {
		cartID = id
	}

	sess := &PageSession{
		ID:       id,
		CartID:   cartID,
		OpenedAt: s.now(),
		product:  dto.ToProductResp(product),
		related:  dto.ToProductResps(related),
		carts:    s.carts,
		now:      s.now,
	}
	sess.gallery = storefront.NewGalleryController(product.Gallery(), storefront.WithStrictIndex())
	sess.cart = storefront.NewAddToCartController(
		product.PublicID(), product.Name, s.sched, s.carts.Sink(cartID),
		storefront.WithOnChange(func(storefront.CartAddState) { sess.bump() }),
	)
	sess.carousel = storefront.NewCarouselTracker(len(related), s.sched)
	sess.carousel.OnSettled(func(storefront.CarouselState) { sess.bump() })
	sess.touch()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.Debug("详情页会话已打开",
		zap.String("session_id", id),
		zap.String("product_id", sess.product.ID),
		zap.Int("images", sess.gallery.Len()))
	return sess, nil
}

// Get 获取会话并刷新活跃时间
func (s *PageSessionService) Get(id string) (*PageSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touch()
	return sess, nil
}

// Close 页面卸载，取消全部未触发的定时任务
func (s *PageSessionService) Close(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	sess.dispose()
	s.releaseCarts([]*PageSession{sess})
	return nil
}

// ReapIdle 关闭超过 maxIdle 未活动的会话，返回关闭数量
func (s *PageSessionService) ReapIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle).UnixNano()

	s.mu.Lock()
	var stale []*PageSession
	for id, sess := range s.sessions {
		if sess.lastSeen.Load() < cutoff {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.dispose()
	}
	s.releaseCarts(stale)
	if len(stale) > 0 {
		s.log.Info("已回收空闲会话", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// CloseAll 关闭全部会话（进程退出）
func (s *PageSessionService) CloseAll() int {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*PageSession)
	s.mu.Unlock()

	closed := make([]*PageSession, 0, len(all))
	for _, sess := range all {
		sess.dispose()
		closed = append(closed, sess)
	}
	s.releaseCarts(closed)
	return len(all)
}

// releaseCarts 清空不再被任何存活会话引用的购物车
// 需在 dispose 之后调用，避免残留的加购任务重新写入。
func (s *PageSessionService) releaseCarts(closed []*PageSession) {
	if len(closed) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	live := make(map[string]struct{}, len(s.sessions))
	for _, sess := range s.sessions {
		live[sess.CartID] = struct{}{}
	}
	for _, sess := range closed {
		if _, ok := live[sess.CartID]; !ok {
			s.carts.Clear(sess.CartID)
		}
	}
}

// Count 当前会话数
func (s *PageSessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// IDs 当前会话 ID（排序后）
func (s *PageSessionService) IDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
