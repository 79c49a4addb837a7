package storefront

import (
	"sync"
	"time"
)

const (
	// ScrollDeadZone 边界判定的死区，避免在边界处闪烁
	ScrollDeadZone = 10.0
	// ScrollStepRatio 每次滚动可视宽度的比例
	ScrollStepRatio = 0.85
	// ScrollSettleDelay 平滑滚动结束后重新计算边界的延迟
	ScrollSettleDelay = 400 * time.Millisecond
	// CarouselPerPage 指示点按每页 3 个商品计算
	CarouselPerPage = 3
)

// Direction 滚动方向
type Direction string

const (
	ScrollLeft  Direction = "left"
	ScrollRight Direction = "right"
)

// ScrollMetrics 横向滚动容器的尺寸
type ScrollMetrics struct {
	ScrollLeft  float64 `json:"scroll_left"`
	ScrollWidth float64 `json:"scroll_width"`
	ClientWidth float64 `json:"client_width"`
}

func (m ScrollMetrics) maxOffset() float64 {
	if max := m.ScrollWidth - m.ClientWidth; max > 0 {
		return max
	}
	return 0
}

// CarouselState 轮播视图状态
type CarouselState struct {
	Items          int           `json:"items"`
	Pages          int           `json:"pages"`
	Metrics        ScrollMetrics `json:"metrics"`
	CanScrollLeft  bool          `json:"can_scroll_left"`
	CanScrollRight bool          `json:"can_scroll_right"`
	Settling       bool          `json:"settling"`
}

// CarouselTracker 商品/系列轮播的滚动边界追踪
type CarouselTracker struct {
	mu    sync.Mutex
	sched Scheduler

	items    int
	metrics  ScrollMetrics
	canLeft  bool
	canRight bool

	settle    Timer
	settleSeq uint64
	onSettled func(CarouselState)
	disposed  bool
}

// NewCarouselTracker 创建追踪器，items 为轮播中的条目数
func NewCarouselTracker(items int, sched Scheduler) *CarouselTracker {
	if sched == nil {
		sched = RealScheduler{}
	}
	return &CarouselTracker{items: items, sched: sched}
}

// Measure 视图上报最新滚动尺寸（onScroll / resize）
func (t *CarouselTracker) Measure(m ScrollMetrics) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return
	}
	t.metrics = m
	t.evaluateLocked()
}

// ScrollBy 按方向滚动约 85% 可视宽度，返回目标偏移
// 边界标记在 ScrollSettleDelay 之后重新计算
func (t *CarouselTracker) ScrollBy(dir Direction) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed || t.items == 0 {
		return t.metrics.ScrollLeft
	}

	step := t.metrics.ClientWidth * ScrollStepRatio
	target := t.metrics.ScrollLeft
	switch dir {
	case ScrollLeft:
		target -= step
	case ScrollRight:
		target += step
	default:
		return target
	}
	if target < 0 {
		target = 0
	}
	if max := t.metrics.maxOffset(); target > max {
		target = max
	}
	t.metrics.ScrollLeft = target

	if t.settle != nil {
		t.settle.Stop()
	}
	t.settleSeq++
	seq := t.settleSeq
	t.settle = t.sched.AfterFunc(ScrollSettleDelay, func() { t.settled(seq) })
	return target
}

// OnSettled 滚动停稳、边界标记重新计算后回调（在锁外执行）
func (t *CarouselTracker) OnSettled(fn func(CarouselState)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettled = fn
}

// settled 只处理最近一次滚动登记的任务，已被取代但仍触发的旧任务直接丢弃
func (t *CarouselTracker) settled(seq uint64) {
	t.mu.Lock()
	if t.disposed || seq != t.settleSeq {
		t.mu.Unlock()
		return
	}
	t.settle = nil
	t.evaluateLocked()
	fn := t.onSettled
	st := t.stateLocked()
	t.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

// Dispose 取消未完成的边界重算
func (t *CarouselTracker) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.disposed = true
	if t.settle != nil {
		t.settle.Stop()
		t.settle = nil
	}
}

// State 当前视图状态
func (t *CarouselTracker) State() CarouselState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *CarouselTracker) stateLocked() CarouselState {
	return CarouselState{
		Items:          t.items,
		Pages:          PageCount(t.items, CarouselPerPage),
		Metrics:        t.metrics,
		CanScrollLeft:  t.canLeft,
		CanScrollRight: t.canRight,
		Settling:       t.settle != nil,
	}
}

func (t *CarouselTracker) evaluateLocked() {
	if t.items == 0 {
		t.canLeft, t.canRight = false, false
		return
	}
	m := t.metrics
	t.canLeft = m.ScrollLeft > ScrollDeadZone
	t.canRight = m.ScrollLeft < m.ScrollWidth-m.ClientWidth-ScrollDeadZone
}

// PageCount 指示点数量 ceil(items/perPage)
func PageCount(items, perPage int) int {
	if items <= 0 || perPage <= 0 {
		return 0
	}
	return (items + perPage - 1) / perPage
}
