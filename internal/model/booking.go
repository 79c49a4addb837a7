package model

// BookingStatus 精品店预约状态
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid 是否为已知状态
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// BookingStatuses 全部状态，统计时按此顺序输出
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

// DefaultBoutique 未指定门店时的默认值
const DefaultBoutique = "Orient Ташкент"

// Booking 精品店到店预约
type Booking struct {
	BaseModel
	BookingNumber string        `gorm:"size:32;uniqueIndex;not null"` // BK + yyyymmdd + 4 位随机数
	Name          string        `gorm:"size:100;not null"`
	Phone         string        `gorm:"size:32;not null"`
	Email         string        `gorm:"size:100"`
	Date          string        `gorm:"size:10;not null"` // 2025-01-31
	Time          string        `gorm:"size:5;not null"`  // 14:30
	Message       string        `gorm:"type:text"`
	Boutique      string        `gorm:"size:100"`
	Status        BookingStatus `gorm:"size:20;index;default:'pending'"`
}

func (Booking) TableName() string {
	return "bookings"
}
