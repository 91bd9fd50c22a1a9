package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/draw-guess/internal/config"
	"github.com/palemoky/draw-guess/internal/game/room"
	"github.com/palemoky/draw-guess/internal/game/words"
	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/server/handler"
	"github.com/palemoky/draw-guess/internal/server/storage"
)

const (
	roomCleanupInterval = time.Minute      // 空闲房间扫描间隔
	limiterPruneEvery   = 5 * time.Minute  // 限流记录清理间隔
	statsInterval       = 30 * time.Second // 监控日志间隔
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 来源在升级前由 OriginChecker 校验
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	EnableCompression: false,
}

// Server WebSocket 服务器
type Server struct {
	config    *config.Config
	redis     *redis.Client // 未配置 Redis 时为 nil
	registry  *room.Registry
	handler   *handler.Handler
	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 安全组件
	rateLimiter    *RateLimiter
	originChecker  *OriginChecker
	messageLimiter *MessageRateLimiter
	chatLimiter    *ChatRateLimiter

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex

	mux        *http.ServeMux
	httpServer *http.Server
	cancel     context.CancelFunc
}

// NewServer 创建服务器实例，bank 为 nil 时使用内置词库
func NewServer(cfg *config.Config, bank *words.Bank) (*Server, error) {
	s := &Server{
		config:  cfg,
		clients: make(map[string]*Client),
		// 初始化安全组件
		rateLimiter:    NewRateLimiter(connectPerSecond, connectBurst),
		originChecker:  NewOriginChecker(cfg.Security.AllowedOrigins),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessageLimit.MaxPerSecond, cfg.Security.MessageLimit.Burst),
		chatLimiter:    NewChatRateLimiter(cfg.Security.ChatLimit.MaxPerSecond, cfg.Security.ChatLimit.Burst),
		// 初始化连接控制
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}

	// 账号服务是可选的外部协作方
	var auth handler.Authenticator
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis 连接失败: %w", err)
		}
		s.redis = rdb
		auth = storage.NewCredentialStore(rdb, storage.DefaultHasher())
	} else {
		logger.Warnf("⚠️  未配置 Redis，账号服务已禁用")
	}

	s.registry = room.NewRegistry(room.Options{
		Words:         bank,
		RoundDuration: cfg.Game.RoundDurationTime(),
		Cooldown:      cfg.Game.CooldownDuration(),
		MaxRounds:     cfg.Game.MaxRounds,
		MaxPlayers:    cfg.Game.MaxPlayers,
		RoomTimeout:   cfg.Game.RoomTimeoutDuration(),
	})

	// 初始化消息处理器
	s.handler = handler.NewHandler(handler.HandlerDeps{
		Registry:    s.registry,
		ChatLimiter: s.chatLimiter,
		Auth:        auth,
	})

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/health", s.handleHealth)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.registry.StartCleanup(ctx, roomCleanupInterval)
	go s.pruneLimiters(ctx)

	logger.Infof("🔒 安全配置: 消息限制=%.0f/s, 聊天限制=%.0f/s, 最大连接数=%d",
		cfg.Security.MessageLimit.MaxPerSecond, cfg.Security.ChatLimit.MaxPerSecond, cfg.Server.MaxConnections)

	return s, nil
}

// Handler 返回 HTTP 路由，测试中可直接交给 httptest
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Registry 房间注册表
func (s *Server) Registry() *room.Registry {
	return s.registry
}

// Start 启动服务器，阻塞直到服务器关闭
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	// 启动监控 goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.monitorStats(ctx)

	logger.Infof("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
