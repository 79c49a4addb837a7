package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orient_store/internal/task"
)

// SyncController 后台任务手动触发
type SyncController struct {
	taskManager *task.TaskManager
	log         *zap.Logger
}

// NewSyncController 创建同步控制器
func NewSyncController(taskManager *task.TaskManager, log *zap.Logger) *SyncController {
	return &SyncController{taskManager: taskManager, log: namedLogger(log, "sync_ctl")}
}

// ==================== Handler 实现 ====================

// SyncCatalog 立即同步外部目录
// POST /api/admin/sync/catalog
func (c *SyncController) SyncCatalog(ctx *gin.Context) {
	res, err := c.taskManager.TriggerCatalogSync(ctx.Request.Context())
	if err != nil {
		c.taskError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "目录同步完成",
		"data":    res,
	})
}

// ReapSessions 立即回收空闲会话
// POST /api/admin/sync/sessions/reap
func (c *SyncController) ReapSessions(ctx *gin.Context) {
	n, err := c.taskManager.TriggerReap()
	if err != nil {
		c.taskError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "空闲会话已回收",
		"data":    gin.H{"reaped": n},
	})
}

// Status 任务状态
// GET /api/admin/sync/status
func (c *SyncController) Status(ctx *gin.Context) {
	success(ctx, c.taskManager.Status())
}

func (c *SyncController) taskError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, task.ErrTaskDisabled):
		fail(ctx, http.StatusServiceUnavailable, "任务未启用")
	case errors.Is(err, task.ErrTaskRunning):
		fail(ctx, http.StatusConflict, "任务正在执行，请稍后再试")
	default:
		c.log.Warn("手动同步失败", zap.Error(err))
		fail(ctx, http.StatusBadGateway, err.Error())
	}
}
