package server

import (
	"context"
	"runtime"
	"time"

	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
)

const shutdownCheckInterval = time.Second

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats(ctx context.Context) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		l := logger.With("component", "monitor")
		l.Info().
			Int("online", s.GetOnlineCount()).
			Int("rooms", s.registry.Count()).
			Int("active_games", s.registry.ActiveGames()).
			Int("goroutines", runtime.NumGoroutine()).
			Int("connections", len(s.semaphore)).
			Int("max_connections", s.maxConnections).
			Float64("alloc_mb", float64(m.Alloc)/1024/1024).
			Msg("📊 服务器状态")
	}
}

// pruneLimiters 定期清理不活跃的限流记录
func (s *Server) pruneLimiters(ctx context.Context) {
	ticker := time.NewTicker(limiterPruneEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := s.rateLimiter.limiter.prune() + s.messageLimiter.limiter.prune() + s.chatLimiter.limiter.prune()
			if n > 0 {
				logger.Debugf("🧹 清理 %d 条限流记录", n)
			}
		}
	}
}

// EnterMaintenanceMode 进入维护模式，拒绝新连接
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	s.Broadcast(codec.MustNewMessage(protocol.MsgSystem, protocol.SystemPayload{
		Text: "👷🏻‍♂️ 服务器即将维护，当前对局结束后将关闭",
	}))

	logger.Infof("🔧 进入维护模式：停止接受新连接")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown 等待进行中的游戏结束后关闭服务器，ctx 到期时强制关闭
func (s *Server) GracefulShutdown(ctx context.Context) {
	s.EnterMaintenanceMode()

	ticker := time.NewTicker(shutdownCheckInterval)
	defer ticker.Stop()

wait:
	for {
		active := s.registry.ActiveGames()
		if active == 0 {
			logger.Infof("✅ 所有游戏已结束，开始关闭服务器")
			break
		}
		logger.Infof("⏳ 等待 %d 局游戏结束...", active)

		select {
		case <-ctx.Done():
			logger.Warnf("⚠️ 超时，仍有 %d 局游戏进行中，强制关闭", s.registry.ActiveGames())
			break wait
		case <-ticker.C:
		}
	}

	s.Shutdown(ctx)
}

// Shutdown 关闭所有房间和连接
func (s *Server) Shutdown(ctx context.Context) {
	s.cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			logger.Warnf("HTTP 服务器关闭失败: %v", err)
		}
	}

	// 房间先于连接关闭，玩家能收到关闭通知
	s.registry.Shutdown()

	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if s.redis != nil {
		_ = s.redis.Close()
	}

	logger.Infof("服务器已关闭")
}
