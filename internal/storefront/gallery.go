package storefront

import (
	"errors"
	"sync"
)

const (
	// ZoomBreakpoint 放大镜仅在桌面宽度启用
	ZoomBreakpoint = 1024.0
	// MagnifierFactor 放大倍率（背景尺寸 250%）
	MagnifierFactor = 2.5
	// MagnifierLensRadius 放大镜镜片半径（200px 圆形镜片）
	MagnifierLensRadius = 100.0
)

// ErrInvalidIndex 严格模式下越界选择图片
var ErrInvalidIndex = errors.New("gallery: invalid image index")

// ==================== 视图状态 ====================

// GalleryState 画廊视图状态快照
type GalleryState struct {
	Empty         bool     `json:"empty"`
	Images        []string `json:"images"`
	SelectedIndex int      `json:"selected_index"`
	SelectedImage string   `json:"selected_image"`
	ZoomActive    bool     `json:"zoom_active"`
	// PointerFraction 仅在 ZoomActive 时有效，否则为零值
	PointerFraction Point `json:"pointer_fraction"`
	// BackgroundPosition 放大镜背景定位（百分比）
	BackgroundPosition Point `json:"background_position"`
	// LensPosition 镜片左上角的视口坐标：原始指针坐标减去镜片半径，不做截断
	LensPosition  Point   `json:"lens_position"`
	Magnification float64 `json:"magnification"`
}

// ==================== GalleryController ====================

// GalleryController 商品详情页图片画廊 + 放大镜
// 图片列表在创建后不可变，切换商品需要新建实例
type GalleryController struct {
	mu sync.Mutex

	images     []string
	strict     bool
	breakpoint float64

	selected   int
	zoomActive bool
	pointer    Point
	client     Point
}

// GalleryOption 画廊配置项
type GalleryOption func(*GalleryController)

// WithStrictIndex 越界选择返回 ErrInvalidIndex 而不是静默忽略
func WithStrictIndex() GalleryOption {
	return func(g *GalleryController) { g.strict = true }
}

// WithZoomBreakpoint 覆盖放大镜启用的最小视口宽度
func WithZoomBreakpoint(px float64) GalleryOption {
	return func(g *GalleryController) {
		if px > 0 {
			g.breakpoint = px
		}
	}
}

// NewGalleryController 创建画廊控制器
func NewGalleryController(images []string, opts ...GalleryOption) *GalleryController {
	g := &GalleryController{
		images:     append([]string(nil), images...),
		breakpoint: ZoomBreakpoint,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Len 图片数量
func (g *GalleryController) Len() int {
	return len(g.images)
}

// Select 选中第 index 张图片
func (g *GalleryController) Select(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if index < 0 || index >= len(g.images) {
		if g.strict {
			return ErrInvalidIndex
		}
		return nil
	}
	g.selected = index
	return nil
}

// Next 下一张，末尾回绕到 0
func (g *GalleryController) Next() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if n := len(g.images); n > 0 {
		g.selected = (g.selected + 1) % n
	}
}

// Previous 上一张，开头回绕到末尾
func (g *GalleryController) Previous() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if n := len(g.images); n > 0 {
		g.selected = (g.selected - 1 + n) % n
	}
}

// UpdatePointer 根据指针坐标与图片容器包围盒计算相对位置
// 结果截断到 [0,1]，容器尺寸为零时忽略
func (g *GalleryController) UpdatePointer(clientX, clientY float64, bounds Rect) {
	if bounds.Empty() {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pointer = Point{
		X: clamp01((clientX - bounds.Left) / bounds.Width),
		Y: clamp01((clientY - bounds.Top) / bounds.Height),
	}
	g.client = Point{X: clientX, Y: clientY}
}

// SetZoomActive 开关放大镜，开启要求视口宽度达到断点
func (g *GalleryController) SetZoomActive(active bool, viewportWidth float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !active {
		g.zoomActive = false
		return
	}
	if len(g.images) == 0 || viewportWidth < g.breakpoint {
		return
	}
	g.zoomActive = true
}

// PointerLeave 指针离开图片区域
func (g *GalleryController) PointerLeave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.zoomActive = false
}

// State 返回当前视图状态
func (g *GalleryController) State() GalleryState {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := GalleryState{
		Empty:         len(g.images) == 0,
		Images:        append([]string(nil), g.images...),
		SelectedIndex: g.selected,
		ZoomActive:    g.zoomActive,
		Magnification: MagnifierFactor,
	}
	if !st.Empty {
		st.SelectedImage = g.images[g.selected]
	}
	if g.zoomActive {
		st.PointerFraction = g.pointer
		st.BackgroundPosition = Point{X: g.pointer.X * 100, Y: g.pointer.Y * 100}
		st.LensPosition = Point{X: g.client.X - MagnifierLensRadius, Y: g.client.Y - MagnifierLensRadius}
	}
	return st
}
