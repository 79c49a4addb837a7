package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orient_store/internal/service"
	"orient_store/internal/storefront"
)

// ==================== 统一响应 ====================
// 成功: {code: 0, message, data}；失败: HTTP 状态码与 code 一致

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}

func created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

func badRequest(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, "参数错误: "+err.Error())
}

// handleError 业务错误映射为 HTTP 状态码，未知错误记录日志后返回 500
func handleError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUnsupportedFileType),
		errors.Is(err, service.ErrInvalidOldPassword),
		errors.Is(err, storefront.ErrInvalidIndex):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		fail(c, http.StatusRequestEntityTooLarge, err.Error())
	case service.IsNotFound(err):
		fail(c, http.StatusNotFound, err.Error())
	case service.IsConflict(err):
		fail(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		log.Error("请求处理失败",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		fail(c, http.StatusInternalServerError, "服务器内部错误")
	}
}

// parseID 解析路径中的数字 ID
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "无效的 "+name)
		return 0, false
	}
	return id, true
}

func namedLogger(log *zap.Logger, name string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return log.Named(name)
}
