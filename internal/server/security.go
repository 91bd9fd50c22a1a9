package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// 新建连接限制（每个 IP）
const (
	connectPerSecond = 2
	connectBurst     = 10

	limiterIdleTTL = 10 * time.Minute // 超过该时间未活动的记录会被清理
)

// keyedLimiter 按 key 维护令牌桶
type keyedLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	entries map[string]*limiterEntry
	now     func() time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
	strikes  int // 被拒绝次数
}

func newKeyedLimiter(perSecond float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		entries: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

// allow 消耗一个令牌，返回记录和是否允许
func (k *keyedLimiter) allow(key string) (entry limiterEntry, allowed bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	e, ok := k.entries[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(k.limit, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = now

	allowed = e.lim.AllowN(now, 1)
	if !allowed {
		e.strikes++
	}
	return *e, allowed
}

func (k *keyedLimiter) remove(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.entries, key)
}

// prune 清理长时间未活动的记录
func (k *keyedLimiter) prune() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	removed := 0
	for key, e := range k.entries {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(k.entries, key)
			removed++
		}
	}
	return removed
}

func (k *keyedLimiter) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

// --- 连接速率限制 ---

// RateLimiter 按 IP 限制新建连接的频率
type RateLimiter struct {
	limiter *keyedLimiter
}

// NewRateLimiter 创建连接速率限制器
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: newKeyedLimiter(perSecond, burst)}
}

// Allow 检查是否允许建立连接
func (rl *RateLimiter) Allow(ip string) bool {
	_, ok := rl.limiter.allow(ip)
	return ok
}

// --- 消息速率限制 ---

// MessageRateLimiter 已连接客户端的消息速率限制
type MessageRateLimiter struct {
	limiter *keyedLimiter
}

// NewMessageRateLimiter 创建消息速率限制器
func NewMessageRateLimiter(perSecond float64, burst int) *MessageRateLimiter {
	return &MessageRateLimiter{limiter: newKeyedLimiter(perSecond, burst)}
}

// AllowMessage 检查是否允许处理消息，返回累计超限次数
func (ml *MessageRateLimiter) AllowMessage(clientID string) (allowed bool, strikes int) {
	e, ok := ml.limiter.allow(clientID)
	return ok, e.strikes
}

// RemoveClient 移除客户端记录
func (ml *MessageRateLimiter) RemoveClient(clientID string) {
	ml.limiter.remove(clientID)
}

// --- 聊天速率限制 ---

// ChatRateLimiter 聊天/猜词速率限制，实现 types.ChatLimiter
type ChatRateLimiter struct {
	limiter *keyedLimiter
}

// NewChatRateLimiter 创建聊天速率限制器
func NewChatRateLimiter(perSecond float64, burst int) *ChatRateLimiter {
	return &ChatRateLimiter{limiter: newKeyedLimiter(perSecond, burst)}
}

// AllowChat 检查是否允许发送聊天消息
func (cl *ChatRateLimiter) AllowChat(clientID string) (allowed bool, reason string) {
	if _, ok := cl.limiter.allow(clientID); !ok {
		return false, fmt.Sprintf("发言过快，每秒最多 %.0f 条", float64(cl.limiter.limit))
	}
	return true, ""
}

// RemoveClient 移除客户端记录
func (cl *ChatRateLimiter) RemoveClient(clientID string) {
	cl.limiter.remove(clientID)
}

// --- 来源验证 ---

// OriginChecker 来源验证器
type OriginChecker struct {
	allowedOrigins map[string]bool
	allowAll       bool
}

// NewOriginChecker 创建来源验证器
func NewOriginChecker(origins []string) *OriginChecker {
	oc := &OriginChecker{
		allowedOrigins: make(map[string]bool),
	}

	for _, origin := range origins {
		if origin == "*" {
			oc.allowAll = true
			return oc
		}
		oc.allowedOrigins[strings.ToLower(origin)] = true
	}

	return oc
}

// Check 检查来源是否允许
func (oc *OriginChecker) Check(r *http.Request) bool {
	if oc.allowAll {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		// 没有 Origin 头，可能是同源请求或终端客户端
		return true
	}

	return oc.allowedOrigins[strings.ToLower(origin)]
}

// GetClientIP 获取客户端真实 IP
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// 取第一个 IP（最原始的客户端）
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
