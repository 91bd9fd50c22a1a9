package handler

import (
	"context"

	"github.com/palemoky/draw-guess/internal/game/room"
	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/types"
)

// Authenticator 账号服务
type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
}

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Registry    *room.Registry
	ChatLimiter types.ChatLimiter
	Auth        Authenticator // 为 nil 时账号相关请求返回 ErrAuthDisabled
}

// Handler 消息处理器
type Handler struct {
	registry    *room.Registry
	chatLimiter types.ChatLimiter
	auth        Authenticator
	handlers    map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		registry:    deps.Registry,
		chatLimiter: deps.ChatLimiter,
		auth:        deps.Auth,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 账号
		protocol.MsgRegister: h.handleRegister,
		protocol.MsgLogin:    h.handleLogin,

		// 房间操作
		protocol.MsgCreateRoom:  h.handleCreateRoom,
		protocol.MsgJoinRoom:    h.handleJoinRoom,
		protocol.MsgLeaveRoom:   h.handleLeaveRoom,
		protocol.MsgGetRoomList: func(c types.ClientInterface, _ *protocol.Message) { h.handleGetRoomList(c) },

		// 游戏操作
		protocol.MsgStartGame: h.handleStartGame,
		protocol.MsgChatSend:  h.handleChat,

		// 转发
		protocol.MsgDrawStroke: h.handleDrawStroke,
		protocol.MsgCallSignal: h.handleCallSignal,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	logger.Warnf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s, Payload长度=%d bytes)",
		msg.Type, client.GetName(), client.GetID(), len(msg.Payload))
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// Disconnect 连接断开：视为离开所在的全部房间
func (h *Handler) Disconnect(client types.ClientInterface) {
	if n := h.registry.LeaveAll(client.GetID()); n > 0 {
		logger.Infof("📴 玩家 %s 断开，离开 %d 个房间", client.GetName(), n)
	}
	if h.chatLimiter != nil {
		h.chatLimiter.RemoveClient(client.GetID())
	}
}
