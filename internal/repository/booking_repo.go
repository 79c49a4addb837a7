package repository

import (
	"context"

	"gorm.io/gorm"

	"orient_store/internal/model"
)

// ==================== BookingRepository 预约仓库 ====================

// BookingRepository 预约仓库接口
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, filter BookingFilter) ([]model.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[model.BookingStatus]int64, error)
}

// BookingFilter 预约筛选条件 (skip/limit 风格)
type BookingFilter struct {
	Status model.BookingStatus
	Skip   int
	Limit  int
}

type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepository 创建预约仓库
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, b *model.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("booking_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

func (r *bookingRepo) List(ctx context.Context, filter BookingFilter) ([]model.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Booking{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}

	var bookings []model.Booking
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&bookings).Error
	return bookings, total, err
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Booking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepo) CountByStatus(ctx context.Context) (map[model.BookingStatus]int64, error) {
	type result struct {
		Status model.BookingStatus
		Count  int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[model.BookingStatus]int64, len(model.BookingStatuses))
	for _, s := range model.BookingStatuses {
		stats[s] = 0
	}
	for _, r := range results {
		stats[r.Status] = r.Count
	}
	return stats, nil
}
