package dto

import (
	"time"

	"orient_store/internal/storefront"
)

// ==================== 请求 DTO ====================

// OpenSessionReq 打开商品详情页
type OpenSessionReq struct {
	ProductID string `json:"product_id" binding:"required"`
	CartID    string `json:"cart_id" binding:"omitempty,uuid"` // 为空时使用会话 ID
}

// SelectImageReq 点击缩略图
type SelectImageReq struct {
	Index *int `json:"index" binding:"required"`
}

// PointerReq 指针在主图上移动
type PointerReq struct {
	ClientX float64         `json:"client_x"`
	ClientY float64         `json:"client_y"`
	Bounds  storefront.Rect `json:"bounds"`
}

// ZoomReq 放大镜开关
type ZoomReq struct {
	Active        bool    `json:"active"`
	ViewportWidth float64 `json:"viewport_width"`
}

// QuantityReq 设置数量或增减
type QuantityReq struct {
	Quantity *int `json:"quantity"`
	Delta    int  `json:"delta" binding:"omitempty,oneof=-1 1"`
}

// AddToCartReq 点击加购
type AddToCartReq struct {
	Origin        storefront.Rect `json:"origin"`
	ViewportWidth float64         `json:"viewport_width" binding:"gte=0"`
}

// CarouselMeasureReq 轮播滚动尺寸上报
type CarouselMeasureReq struct {
	ScrollLeft  float64 `json:"scroll_left" binding:"gte=0"`
	ScrollWidth float64 `json:"scroll_width" binding:"gte=0"`
	ClientWidth float64 `json:"client_width" binding:"gte=0"`
}

// CarouselScrollReq 左右箭头
type CarouselScrollReq struct {
	Direction string `json:"direction" binding:"required,oneof=left right"`
}

// ==================== 响应 DTO ====================

// PageView 详情页完整视图状态
type PageView struct {
	SessionID string                   `json:"session_id"`
	Version   uint64                   `json:"version"`
	Product   ProductResp              `json:"product"`
	Gallery   storefront.GalleryState  `json:"gallery"`
	AddToCart storefront.CartAddState  `json:"add_to_cart"`
	Related   []ProductResp            `json:"related"`
	Carousel  storefront.CarouselState `json:"carousel"`
	CartCount int                      `json:"cart_count"`
	OpenedAt  time.Time                `json:"opened_at"`
}

// ScrollResp 滚动目标
type ScrollResp struct {
	Target float64  `json:"target"`
	View   PageView `json:"view"`
}
