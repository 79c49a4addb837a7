package storefront

// Point 视口坐标（逻辑像素）
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect 元素包围盒，对应 getBoundingClientRect 的 left/top/width/height
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center 包围盒中心点
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Empty 宽或高不为正时视为空
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
