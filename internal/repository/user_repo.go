package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"orient_store/internal/model"
)

// ==================== UserRepository 后台账号仓库 ====================

// UserRepository 后台账号仓库
// 邮箱统一按 NormalizeEmail 规范化后存储和查询，大小写不同的地址视为同一账号
type UserRepository interface {
	Create(ctx context.Context, user *model.SysUser) error
	GetByID(ctx context.Context, id int64) (*model.SysUser, error)
	GetByEmail(ctx context.Context, email string) (*model.SysUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	RecordLogin(ctx context.Context, id int64, at time.Time) error
}

// NormalizeEmail 去除首尾空白并转小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.SysUser) error {
	user.Email = NormalizeEmail(user.Email)
	if user.Email == "" {
		return errors.New("账号邮箱不能为空")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID 不存在时返回 nil, nil
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.SysUser, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetByEmail 不存在或邮箱为空时返回 nil, nil
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.SysUser, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	return r.first(r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SysUser{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.updateColumn(ctx, id, "password_hash", hashedPassword)
}

// RecordLogin 记录最近一次登录时间（由调用方提供时钟）
func (r *userRepository) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	return r.updateColumn(ctx, id, "last_login_at", at)
}

func (r *userRepository) first(q *gorm.DB) (*model.SysUser, error) {
	var user model.SysUser
	err := q.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) updateColumn(ctx context.Context, id int64, column string, value any) error {
	res := r.db.WithContext(ctx).
		Model(&model.SysUser{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
