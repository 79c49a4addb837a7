package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"orient_store/internal/api/dto"
	"orient_store/internal/middleware"
	"orient_store/internal/model"
	"orient_store/internal/repository"
)

// ==================== UserService 用户服务 ====================

// UserService 后台账号服务
type UserService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{userRepo: userRepo, log: log.Named("user")}
}

// ==================== 认证相关 ====================

// Login 用户登录
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 查找用户
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 生成 Token
	accessToken, err := middleware.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	// 更新最后登录时间
	if err := s.userRepo.RecordLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.Warn("更新登录时间失败", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   time.Now().Add(cfg.AccessTokenTTL),
		User:        s.toUserInfo(user),
	}, nil
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	// 验证旧密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// GetProfile 获取当前用户信息
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserInfo(user), nil
}

// EnsureAdmin 初始化管理员账号，已存在时不做修改
// 返回 true 表示新建了账号
func (s *UserService) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = repository.NormalizeEmail(email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if name == "" {
		name = "Administrator"
	}
	user := &model.SysUser{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Role:         model.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return false, err
	}
	s.log.Info("管理员账号已创建", zap.String("email", email))
	return true, nil
}

// ==================== 辅助方法 ====================

// toUserInfo 转换为 DTO
func (s *UserService) toUserInfo(user *model.SysUser) *dto.UserInfo {
	return &dto.UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
