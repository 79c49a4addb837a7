package middleware

import (
	"fmt"
	"sync"
	"time"
)

// ==================== CooldownLimiter 冷却限流器 ====================

// CooldownLimiter 按 key 记录上次放行时间，冷却期内拒绝
// 用于前台表单提交（预约）等低频写操作，防止重复提交和刷单
type CooldownLimiter struct {
	locks sync.Map // key -> *lockEntry
	now   func() time.Time
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewCooldownLimiter 创建限流器
func NewCooldownLimiter() *CooldownLimiter {
	return &CooldownLimiter{now: time.Now}
}

// WithClock 替换时钟（测试用）
func (r *CooldownLimiter) WithClock(now func() time.Time) *CooldownLimiter {
	r.now = now
	return r
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查并在放行时记录时间
func (r *CooldownLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	if !entry.lastTime.IsZero() {
		if elapsed := now.Sub(entry.lastTime); elapsed < interval {
			return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key
func (r *CooldownLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// Purge 清理冷却已结束的条目，返回清理数量
func (r *CooldownLimiter) Purge(interval time.Duration) int {
	now := r.now()
	n := 0
	r.locks.Range(func(k, v any) bool {
		entry := v.(*lockEntry)
		entry.mu.Lock()
		expired := now.Sub(entry.lastTime) >= interval
		entry.mu.Unlock()
		if expired {
			r.locks.Delete(k)
			n++
		}
		return true
	})
	return n
}

// ==================== Key 生成 ====================

// SubmitScope 提交类型
type SubmitScope string

const (
	ScopeBooking SubmitScope = "booking"
)

// DefaultIntervals 各提交类型的默认冷却时间
var DefaultIntervals = map[SubmitScope]time.Duration{
	ScopeBooking: 30 * time.Second,
}

// GetInterval 获取默认冷却时间
func GetInterval(scope SubmitScope) time.Duration {
	if interval, ok := DefaultIntervals[scope]; ok {
		return interval
	}
	return time.Minute
}

// ClientKey 按客户端 IP 生成 key
func ClientKey(scope SubmitScope, clientIP string) string {
	return fmt.Sprintf("%s:%s", scope, clientIP)
}
