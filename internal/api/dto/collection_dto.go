package dto

import (
	"time"

	"orient_store/internal/model"
)

// CreateCollectionReq 创建系列
type CreateCollectionReq struct {
	ID          string `json:"id" binding:"required,max=64"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Number      string `json:"number" binding:"max=10"`
	Active      *bool  `json:"active"` // 默认 true
}

// UpdateCollectionReq 部分更新
type UpdateCollectionReq struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Number      *string `json:"number" binding:"omitempty,max=10"`
	Active      *bool   `json:"active"`
}

// CollectionResp 系列（含商品数）
type CollectionResp struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	WatchCount  int64     `json:"watchCount"`
	Number      string    `json:"number"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToCollectionResp 模型转响应
func ToCollectionResp(c *model.Collection, watchCount int64) CollectionResp {
	return CollectionResp{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		WatchCount:  watchCount,
		Number:      c.Number,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
