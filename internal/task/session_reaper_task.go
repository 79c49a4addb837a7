package task

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionReaper 页面会话回收
type SessionReaper interface {
	ReapIdle(maxIdle time.Duration) int
}

// LimiterPurger 提交冷却表清理
type LimiterPurger interface {
	Purge(interval time.Duration) int
}

// ==================== SessionReaperTask 空闲会话回收任务 ====================

// SessionReaperTask 定期关闭长时间无操作的页面会话（等价于页面卸载），
// 同时清理冷却已结束的限流条目
type SessionReaperTask struct {
	sessions SessionReaper
	limiter  LimiterPurger
	cron     *cron.Cron
	log      *zap.Logger

	spec          string
	maxIdle       time.Duration
	limiterWindow time.Duration

	mu        sync.Mutex
	lastRun   time.Time
	lastCount int
}

// NewSessionReaperTask 创建回收任务，limiter 可为 nil
func NewSessionReaperTask(sessions SessionReaper, limiter LimiterPurger, log *zap.Logger) *SessionReaperTask {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionReaperTask{
		sessions:      sessions,
		limiter:       limiter,
		cron:          cron.New(cron.WithSeconds()), // 支持秒级控制
		log:           log.Named("session_reaper"),
		spec:          "0 */1 * * * *",
		maxIdle:       30 * time.Minute,
		limiterWindow: 30 * time.Second,
	}
}

// SetSchedule 设置 cron 表达式与空闲阈值
func (t *SessionReaperTask) SetSchedule(spec string, maxIdle, limiterWindow time.Duration) {
	if spec != "" {
		t.spec = spec
	}
	if maxIdle > 0 {
		t.maxIdle = maxIdle
	}
	if limiterWindow > 0 {
		t.limiterWindow = limiterWindow
	}
}

// Start 启动定时任务
func (t *SessionReaperTask) Start() error {
	if _, err := t.cron.AddFunc(t.spec, func() { t.Execute() }); err != nil {
		return err
	}
	t.cron.Start()
	t.log.Info("已启动", zap.String("spec", t.spec), zap.Duration("max_idle", t.maxIdle))
	return nil
}

// Stop 停止任务，等待正在执行的回收结束
func (t *SessionReaperTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info("已停止")
}

// Execute 执行一次回收，返回关闭的会话数
func (t *SessionReaperTask) Execute() int {
	n := t.sessions.ReapIdle(t.maxIdle)
	purged := 0
	if t.limiter != nil {
		purged = t.limiter.Purge(t.limiterWindow)
	}

	t.mu.Lock()
	t.lastRun = time.Now()
	t.lastCount = n
	t.mu.Unlock()

	if n > 0 || purged > 0 {
		t.log.Debug("回收完成", zap.Int("sessions", n), zap.Int("limiter_entries", purged))
	}
	return n
}

// LastRun 上次执行时间与回收数量
func (t *SessionReaperTask) LastRun() (time.Time, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRun, t.lastCount
}
