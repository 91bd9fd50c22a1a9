// Package timer 提供回合计时器：可注入时钟、单次回调、可重复取消的句柄
package timer

import (
	"sync"
	"time"
)

// Stopper 可停止的定时任务（*time.Timer 满足该接口）
type Stopper interface {
	Stop() bool
}

// Clock 时间源
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Stopper
}

// RealClock 使用系统时间
type RealClock struct{}

// Now 当前时间
func (RealClock) Now() time.Time { return time.Now() }

// AfterFunc 在 d 之后于独立 goroutine 中执行 f
func (RealClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Handle 一次计时的句柄
type Handle struct {
	mu       sync.Mutex
	stopper  Stopper
	deadline time.Time
	done     bool // 已触发或已取消
}

// Deadline 计时截止时间
func (h *Handle) Deadline() time.Time {
	return h.deadline
}

// Active 回调是否仍在等待触发
func (h *Handle) Active() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.done
}

// Cancel 阻止尚未触发的回调。对已触发、已取消或 nil 句柄调用是空操作
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done {
		return
	}
	h.done = true
	if h.stopper != nil {
		h.stopper.Stop()
	}
}

// fire 标记已触发，返回是否应执行回调
func (h *Handle) fire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done {
		return false
	}
	h.done = true
	return true
}

// Timer 基于 Clock 的回合计时器
type Timer struct {
	clock Clock
}

// New 创建计时器，clock 为 nil 时使用系统时钟
func New(clock Clock) *Timer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Timer{clock: clock}
}

// Now 当前时间
func (t *Timer) Now() time.Time {
	return t.clock.Now()
}

// Arm 在 d 之后调用 onExpire，返回句柄；立即返回，不阻塞调用方
func (t *Timer) Arm(d time.Duration, onExpire func()) *Handle {
	h := &Handle{deadline: t.clock.Now().Add(d)}

	// 持锁赋值，防止 d 很短时回调先于赋值执行
	h.mu.Lock()
	h.stopper = t.clock.AfterFunc(d, func() {
		if h.fire() {
			onExpire()
		}
	})
	h.mu.Unlock()

	return h
}

// Cancel 取消句柄，等价于 h.Cancel()
func (t *Timer) Cancel(h *Handle) {
	h.Cancel()
}
