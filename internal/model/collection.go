package model

import "time"

// Collection 腕表系列 (Sports / Classic / Contemporary ...)
// 主键使用 slug，如 "sports"
type Collection struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Name        string    `gorm:"size:100;not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"size:512"`
	Number      string    `gorm:"size:10"` // 展示编号 "01"
	Active      bool      `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Collection) TableName() string {
	return "collections"
}
