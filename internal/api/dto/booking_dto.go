package dto

import (
	"time"

	"orient_store/internal/model"
)

// CreateBookingReq 前台提交预约
type CreateBookingReq struct {
	Name     string `json:"name" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"required,max=32"`
	Email    string `json:"email" binding:"omitempty,email"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Time     string `json:"time" binding:"required,datetime=15:04"`
	Message  string `json:"message" binding:"max=2000"`
	Boutique string `json:"boutique" binding:"max=100"`
}

// UpdateBookingStatusReq 后台修改状态
type UpdateBookingStatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// BookingListReq 后台列表查询
type BookingListReq struct {
	Skip   int    `form:"skip" binding:"omitempty,gte=0"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=500"`
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
}

// BookingResp 预约
type BookingResp struct {
	ID            int64     `json:"id"`
	BookingNumber string    `json:"bookingNumber"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Message       string    `json:"message,omitempty"`
	Boutique      string    `json:"boutique"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookingStats 状态统计
type BookingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

// ToBookingResp 模型转响应
func ToBookingResp(b *model.Booking) BookingResp {
	return BookingResp{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		Name:          b.Name,
		Phone:         b.Phone,
		Email:         b.Email,
		Date:          b.Date,
		Time:          b.Time,
		Message:       b.Message,
		Boutique:      b.Boutique,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
