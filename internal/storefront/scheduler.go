package storefront

import (
	"sort"
	"sync"
	"time"
)

// ==================== 调度器接口 ====================

// Timer 已调度任务的取消句柄
type Timer interface {
	// Stop 取消任务，任务已触发或已取消时返回 false
	Stop() bool
}

// Scheduler 延迟任务调度器
// 控制器只依赖该接口，测试中注入 VirtualScheduler 即可脱离真实时钟
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// ==================== 真实时钟 ====================

// RealScheduler 基于 time.AfterFunc 的调度器，回调在独立 goroutine 中执行
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// ==================== 虚拟时钟 ====================

// VirtualScheduler 虚拟时钟调度器
// 回调只在 Advance 中同步执行，按 (到期时间, 注册顺序) 排序
type VirtualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*virtualTask
}

type virtualTask struct {
	owner *VirtualScheduler
	due   time.Duration
	seq   uint64
	fn    func()
	done  bool
}

// NewVirtualScheduler 创建虚拟调度器，时钟从 0 开始
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{}
}

func (s *VirtualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &virtualTask{owner: s, due: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *virtualTask) Stop() bool {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	s.removeLocked(t)
	return true
}

// Now 当前虚拟时间（相对起点）
func (s *VirtualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending 尚未触发且未取消的任务数
func (s *VirtualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Advance 推进虚拟时钟并依次执行到期任务
// 回调执行期间不持有调度器锁，回调内可以继续注册或取消任务
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		next.done = true
		s.removeLocked(next)
		s.mu.Unlock()

		next.fn()
	}
}

// AdvanceTo 推进到指定的绝对虚拟时间，早于当前时间时不做任何事
func (s *VirtualScheduler) AdvanceTo(at time.Duration) {
	now := s.Now()
	if at <= now {
		return
	}
	s.Advance(at - now)
}

func (s *VirtualScheduler) nextDueLocked(limit time.Duration) *virtualTask {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if s.tasks[0].due > limit {
		return nil
	}
	return s.tasks[0]
}

func (s *VirtualScheduler) removeLocked(t *virtualTask) {
	for i, cur := range s.tasks {
		if cur == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}
