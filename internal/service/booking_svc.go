package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/model"
	"orient_store/internal/repository"
)

const (
	DefaultBookingLimit = 50
	// 预约号生成的最大重试次数
	bookingNumberAttempts = 20
)

// ==================== BookingService 精品店预约服务 ====================

type BookingService struct {
	bookingRepo repository.BookingRepository
	log         *zap.Logger

	now    func() time.Time
	digits func() int // 0..9999
}

func NewBookingService(bookingRepo repository.BookingRepository, log *zap.Logger) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		log:         log.Named("booking"),
		now:         time.Now,
		digits:      func() int { return rand.IntN(10000) },
	}
}

// Create 前台提交预约
func (s *BookingService) Create(ctx context.Context, req *dto.CreateBookingReq) (*model.Booking, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: 姓名和电话不能为空", ErrValidation)
	}

	boutique := strings.TrimSpace(req.Boutique)
	if boutique == "" {
		boutique = model.DefaultBoutique
	}

	number, err := s.nextNumber(ctx)
	if err != nil {
		return nil, err
	}

	b := &model.Booking{
		BookingNumber: number,
		Name:          name,
		Phone:         phone,
		Email:         strings.TrimSpace(req.Email),
		Date:          req.Date,
		Time:          req.Time,
		Message:       req.Message,
		Boutique:      boutique,
		Status:        model.BookingPending,
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("创建预约失败: %w", err)
	}
	s.log.Info("新预约",
		zap.String("booking_number", b.BookingNumber),
		zap.String("boutique", b.Boutique),
		zap.String("date", b.Date))
	return b, nil
}

// nextNumber 生成唯一预约号：BK + yyyymmdd + 4 位数字
func (s *BookingService) nextNumber(ctx context.Context) (string, error) {
	day := s.now().Format("20060102")
	for i := 0; i < bookingNumberAttempts; i++ {
		number := fmt.Sprintf("BK%s%04d", day, s.digits())
		exists, err := s.bookingRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("%w: 预约号生成失败，请重试", ErrConflict)
}

// List 后台列表
func (s *BookingService) List(ctx context.Context, req dto.BookingListReq) ([]dto.BookingResp, int64, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultBookingLimit
	}
	bookings, total, err := s.bookingRepo.List(ctx, repository.BookingFilter{
		Status: model.BookingStatus(req.Status),
		Skip:   req.Skip,
		Limit:  limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("查询预约失败: %w", err)
	}

	list := make([]dto.BookingResp, len(bookings))
	for i := range bookings {
		list[i] = dto.ToBookingResp(&bookings[i])
	}
	return list, total, nil
}

func (s *BookingService) Get(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return b, nil
}

// UpdateStatus 修改预约状态
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Booking, error) {
	st := model.BookingStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: 未知状态 %q", ErrValidation, status)
	}
	if err := s.bookingRepo.UpdateStatus(ctx, id, st); err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return s.Get(ctx, id)
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrBookingNotFound)
	}
	return nil
}

// Stats 按状态统计
func (s *BookingService) Stats(ctx context.Context) (*dto.BookingStats, error) {
	counts, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats := &dto.BookingStats{
		Pending:   counts[model.BookingPending],
		Confirmed: counts[model.BookingConfirmed],
		Completed: counts[model.BookingCompleted],
		Cancelled: counts[model.BookingCancelled],
	}
	for _, c := range counts {
		stats.Total += c
	}
	return stats, nil
}
