package task

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台定时任务
// 管理范围：页面会话回收、外部目录同步
type TaskManager struct {
	reaperTask *SessionReaperTask
	feedTask   *CatalogFeedTask
	log        *zap.Logger
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	Sessions SessionReaper
	Limiter  LimiterPurger

	// Feed 为 nil 时不启用目录同步
	Feed        CatalogFeed
	Products    ProductImporter
	Collections CollectionImporter
	Home        HomeInvalidator

	Logger *zap.Logger
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	// 会话回收
	ReaperEnabled  bool
	ReaperSpec     string
	SessionMaxIdle time.Duration
	LimiterWindow  time.Duration

	// 目录同步
	FeedEnabled bool
	FeedSpec    string
	FeedTimeout time.Duration
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		ReaperEnabled:  true,
		ReaperSpec:     "0 */1 * * * *",
		SessionMaxIdle: 30 * time.Minute,
		LimiterWindow:  30 * time.Second,

		FeedEnabled: true,
		FeedSpec:    "0 0 */6 * * *",
		FeedTimeout: 10 * time.Minute,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	tm := &TaskManager{log: log.Named("task_manager")}

	if cfg.ReaperEnabled && deps.Sessions != nil {
		tm.reaperTask = NewSessionReaperTask(deps.Sessions, deps.Limiter, log)
		tm.reaperTask.SetSchedule(cfg.ReaperSpec, cfg.SessionMaxIdle, cfg.LimiterWindow)
	}

	if cfg.FeedEnabled && deps.Feed != nil && deps.Products != nil && deps.Collections != nil {
		tm.feedTask = NewCatalogFeedTask(deps.Feed, deps.Products, deps.Collections, deps.Home, log)
		tm.feedTask.SetSchedule(cfg.FeedSpec, cfg.FeedTimeout)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() error {
	tm.log.Info("正在启动后台任务...")

	if tm.reaperTask != nil {
		if err := tm.reaperTask.Start(); err != nil {
			return fmt.Errorf("启动会话回收任务失败: %w", err)
		}
	}
	if tm.feedTask != nil {
		if err := tm.feedTask.Start(); err != nil {
			tm.Stop()
			return fmt.Errorf("启动目录同步任务失败: %w", err)
		}
	}

	tm.log.Info("后台任务已全部启动")
	return nil
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	tm.log.Info("正在停止后台任务...")

	if tm.reaperTask != nil {
		tm.reaperTask.Stop()
	}
	if tm.feedTask != nil {
		tm.feedTask.Stop()
	}

	tm.log.Info("后台任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerReap 立即回收空闲会话
func (tm *TaskManager) TriggerReap() (int, error) {
	if tm.reaperTask == nil {
		return 0, ErrTaskDisabled
	}
	return tm.reaperTask.Execute(), nil
}

// TriggerCatalogSync 立即同步外部目录
func (tm *TaskManager) TriggerCatalogSync(ctx context.Context) (*FeedResult, error) {
	if tm.feedTask == nil {
		return nil, ErrTaskDisabled
	}
	return tm.feedTask.Execute(ctx)
}

// ==================== 状态查询 ====================

// TaskStatus 单个任务状态
type TaskStatus struct {
	Enabled   bool        `json:"enabled"`
	LastRun   *time.Time  `json:"lastRun,omitempty"`
	LastError string      `json:"lastError,omitempty"`
	Result    interface{} `json:"result,omitempty"`
}

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]TaskStatus {
	out := map[string]TaskStatus{
		"session_reaper": {Enabled: tm.reaperTask != nil},
		"catalog_feed":   {Enabled: tm.feedTask != nil},
	}

	if tm.reaperTask != nil {
		at, n := tm.reaperTask.LastRun()
		if !at.IsZero() {
			out["session_reaper"] = TaskStatus{Enabled: true, LastRun: &at, Result: map[string]int{"reaped": n}}
		}
	}
	if tm.feedTask != nil {
		res, err := tm.feedTask.Last()
		st := TaskStatus{Enabled: true}
		if res != nil {
			at := res.FinishedAt
			st.LastRun = &at
			st.Result = res
		}
		if err != nil {
			st.LastError = err.Error()
		}
		out["catalog_feed"] = st
	}
	return out
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
	ErrTaskRunning  TaskError = "task is already running"
)
