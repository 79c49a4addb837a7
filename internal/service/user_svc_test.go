package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orient_store/internal/api/dto"
	"orient_store/internal/middleware"
	"orient_store/internal/model"
)

func TestUserService_EnsureAdminAndLogin(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewUserService(env.users, nil)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, " Admin@Orient.UZ ", "secret123", "")
	require.NoError(t, err)
	assert.True(t, created)

	// 已存在时不覆盖密码
	created, err = svc.EnsureAdmin(ctx, "admin@orient.uz", "other-password", "")
	require.NoError(t, err)
	assert.False(t, created)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "ADMIN@orient.uz", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)
	assert.Equal(t, "Administrator", resp.User.Name)

	claims, err := middleware.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	profile, err := svc.GetProfile(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, profile.LastLoginAt, "登录后记录时间")

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "admin@orient.uz", Password: "other-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@orient.uz", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_ChangePassword(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewUserService(env.users, nil)
	ctx := context.Background()

	_, err := svc.EnsureAdmin(ctx, "admin@orient.uz", "secret123", "Admin")
	require.NoError(t, err)
	user, err := env.users.GetByEmail(ctx, "admin@orient.uz")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{OldPassword: "wrong-one", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, ErrInvalidOldPassword)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "newsecret"}))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "admin@orient.uz", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "admin@orient.uz", Password: "newsecret"})
	assert.NoError(t, err)

	err = svc.ChangePassword(ctx, 99999, &dto.ChangePasswordRequest{OldPassword: "x", NewPassword: "y"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.GetProfile(ctx, 99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
