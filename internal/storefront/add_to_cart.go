package storefront

import (
	"fmt"
	"sync"
	"time"
)

// ==================== 状态定义 ====================

// CartPhase 加购动画阶段
type CartPhase int

const (
	CartIdle CartPhase = iota
	CartInFlight
	CartSuccess
)

func (p CartPhase) String() string {
	switch p {
	case CartIdle:
		return "idle"
	case CartInFlight:
		return "in_flight"
	case CartSuccess:
		return "success"
	default:
		return "unknown"
	}
}

func (p CartPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Transition 调度任务所执行的状态迁移
type Transition string

const (
	TransitionFlyToTarget  Transition = "fly-to-target"
	TransitionLand         Transition = "land"
	TransitionSettle       Transition = "settle"
	TransitionDismissToast Transition = "dismiss-toast"
)

// Step 加购时序中的一步，At 以点击时刻 T0 为基准
type Step struct {
	At         time.Duration
	Transition Transition
}

// DefaultSequence 加购动画默认时序
var DefaultSequence = []Step{
	{At: 50 * time.Millisecond, Transition: TransitionFlyToTarget},
	{At: 800 * time.Millisecond, Transition: TransitionLand},
	{At: 2500 * time.Millisecond, Transition: TransitionSettle},
	{At: 3500 * time.Millisecond, Transition: TransitionDismissToast},
}

// FlyingCue "商品飞入购物车" 视觉提示
type FlyingCue struct {
	Visible  bool  `json:"visible"`
	Position Point `json:"position"`
}

// CartAddState 加购控制器视图状态
type CartAddState struct {
	Phase        CartPhase `json:"phase"`
	Quantity     int       `json:"quantity"`
	ToastVisible bool      `json:"toast_visible"`
	ToastText    string    `json:"toast_text,omitempty"`
	Flying       FlyingCue `json:"flying"`
}

// CartSink 购物车写入方（外部协作者），只在进入 InFlight 时调用一次，不检查结果
type CartSink interface {
	AddItem(productID string, quantity int)
}

// CartSinkFunc 函数适配器
type CartSinkFunc func(productID string, quantity int)

func (f CartSinkFunc) AddItem(productID string, quantity int) { f(productID, quantity) }

// ==================== AddToCartController ====================

type pendingStep struct {
	transition Transition
	timer      Timer
}

// AddToCartController 加购按钮状态机
//
// Idle --click--> InFlight --800ms--> Success --2500ms--> Idle
//
// 非 Idle 状态下的点击全部忽略，保证同一时刻至多一个动画序列。
// 一次点击的所有延迟任务登记在同一个任务表中，Dispose 时整体取消。
type AddToCartController struct {
	mu sync.Mutex

	productID   string
	productName string
	sched       Scheduler
	sink        CartSink
	sequence    []Step
	onChange    func(CartAddState)

	phase    CartPhase
	quantity int
	toast    bool
	toastMsg string
	flying   FlyingCue
	target   Point

	cycle    uint64
	pending  []pendingStep
	disposed bool
}

// CartOption 加购控制器配置项
type CartOption func(*AddToCartController)

// WithSequence 覆盖默认时序
func WithSequence(steps []Step) CartOption {
	return func(c *AddToCartController) {
		c.sequence = append([]Step(nil), steps...)
	}
}

// WithOnChange 每次状态变化后回调（在锁外执行）
func WithOnChange(fn func(CartAddState)) CartOption {
	return func(c *AddToCartController) { c.onChange = fn }
}

// NewAddToCartController 创建加购控制器，sink 可以为 nil
func NewAddToCartController(productID, productName string, sched Scheduler, sink CartSink, opts ...CartOption) *AddToCartController {
	if sched == nil {
		sched = RealScheduler{}
	}
	c := &AddToCartController{
		productID:   productID,
		productName: productName,
		sched:       sched,
		sink:        sink,
		sequence:    DefaultSequence,
		quantity:    1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Click 用户点击加购
// origin 为商品主图包围盒，viewportWidth 用于计算右上角的飞行终点。
// 返回 false 表示点击被忽略（动画进行中或控制器已销毁）。
func (c *AddToCartController) Click(origin Rect, viewportWidth float64) bool {
	c.mu.Lock()
	if c.disposed || c.phase != CartIdle {
		c.mu.Unlock()
		return false
	}

	// 上一轮遗留的 toast 隐藏任务作废，旧 toast 在此处统一收起
	c.cancelPendingLocked()
	c.toast = false

	c.cycle++
	cycle := c.cycle
	qty := c.quantity

	c.phase = CartInFlight
	c.toastMsg = fmt.Sprintf("%s × %d", c.productName, qty)
	c.flying = FlyingCue{Visible: true, Position: origin.Center()}
	c.target = Point{X: viewportWidth - 100, Y: 50}

	for _, step := range c.sequence {
		tr := step.Transition
		timer := c.sched.AfterFunc(step.At, func() { c.fire(cycle, tr) })
		c.pending = append(c.pending, pendingStep{transition: tr, timer: timer})
	}

	snapshot := c.stateLocked()
	sink := c.sink
	productID := c.productID
	c.mu.Unlock()

	if sink != nil {
		sink.AddItem(productID, qty)
	}
	c.notify(snapshot)
	return true
}

// fire 执行一个到期任务，过期轮次或已销毁时丢弃
func (c *AddToCartController) fire(cycle uint64, tr Transition) {
	c.mu.Lock()
	if c.disposed || cycle != c.cycle {
		c.mu.Unlock()
		return
	}
	c.dropPendingLocked(tr)

	switch tr {
	case TransitionFlyToTarget:
		c.flying.Position = c.target
	case TransitionLand:
		c.flying.Visible = false
		c.phase = CartSuccess
		c.toast = true
	case TransitionSettle:
		c.phase = CartIdle
	case TransitionDismissToast:
		c.toast = false
	}

	snapshot := c.stateLocked()
	c.mu.Unlock()
	c.notify(snapshot)
}

// SetQuantity 设置数量，最小为 1；InFlight 期间忽略
func (c *AddToCartController) SetQuantity(n int) {
	c.updateQuantity(func(int) int { return n })
}

// Increment 数量 +1
func (c *AddToCartController) Increment() {
	c.updateQuantity(func(q int) int { return q + 1 })
}

// Decrement 数量 -1，不会低于 1
func (c *AddToCartController) Decrement() {
	c.updateQuantity(func(q int) int { return q - 1 })
}

// updateQuantity 在同一把锁内完成读取与写入，并发的增减不会互相覆盖
func (c *AddToCartController) updateQuantity(next func(int) int) {
	c.mu.Lock()
	if c.disposed || c.phase == CartInFlight {
		c.mu.Unlock()
		return
	}
	n := next(c.quantity)
	if n < 1 {
		n = 1
	}
	if n == c.quantity {
		c.mu.Unlock()
		return
	}
	c.quantity = n
	snapshot := c.stateLocked()
	c.mu.Unlock()
	c.notify(snapshot)
}

// Quantity 当前数量
func (c *AddToCartController) Quantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantity
}

// Dispose 页面卸载：取消全部未触发任务，之后的调用全部失效
func (c *AddToCartController) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.disposed = true
	c.cancelPendingLocked()
}

// PendingTransitions 尚未触发的任务（按注册顺序）
func (c *AddToCartController) PendingTransitions() []Transition {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Transition, 0, len(c.pending))
	for _, p := range c.pending {
		out = append(out, p.transition)
	}
	return out
}

// State 当前视图状态
func (c *AddToCartController) State() CartAddState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *AddToCartController) stateLocked() CartAddState {
	st := CartAddState{
		Phase:        c.phase,
		Quantity:     c.quantity,
		ToastVisible: c.toast,
		Flying:       c.flying,
	}
	if c.toast {
		st.ToastText = c.toastMsg
	}
	return st
}

func (c *AddToCartController) cancelPendingLocked() {
	for _, p := range c.pending {
		p.timer.Stop()
	}
	c.pending = nil
}

func (c *AddToCartController) dropPendingLocked(tr Transition) {
	for i, p := range c.pending {
		if p.transition == tr {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

func (c *AddToCartController) notify(st CartAddState) {
	if c.onChange != nil {
		c.onChange(st)
	}
}
