package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/middleware"
	"orient_store/internal/service"
)

// ==================== UserController 后台账号 ====================

// UserController 后台账号控制器
type UserController struct {
	userService *service.UserService
	log         *zap.Logger
}

// NewUserController 创建用户控制器
func NewUserController(userService *service.UserService, log *zap.Logger) *UserController {
	return &UserController{userService: userService, log: namedLogger(log, "user_ctl")}
}

// Login 后台登录
// @Summary 后台登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	resp, err := c.userService.Login(ctx.Request.Context(), &req)
	if err != nil {
		handleError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "登录成功",
		"data":    resp,
	})
}

// GetProfile 获取当前用户信息
// @Security BearerAuth
// @Router /api/auth/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user, err := c.userService.GetProfile(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		handleError(ctx, c.log, err)
		return
	}
	success(ctx, user)
}

// ChangePassword 修改密码
// @Security BearerAuth
// @Router /api/auth/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	if err := c.userService.ChangePassword(ctx.Request.Context(), middleware.GetUserID(ctx), &req); err != nil {
		handleError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "密码修改成功"})
}
