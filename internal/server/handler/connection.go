package handler

import (
	"context"
	"strings"
	"time"

	"github.com/palemoky/draw-guess/internal/apperrors"
	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/types"
)

const authTimeout = 5 * time.Second

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleRegister 处理注册
func (h *Handler) handleRegister(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.CredentialsPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if h.auth == nil {
		sendAck(client, protocol.MsgRegister, "", apperrors.ErrAuthDisabled)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	err = h.auth.Register(ctx, payload.Username, payload.Password)
	if err == nil {
		logger.Infof("📝 新用户注册: %s", strings.TrimSpace(payload.Username))
	}
	sendAck(client, protocol.MsgRegister, "", err)
}

// handleLogin 处理登录，成功后使用用户名作为昵称
func (h *Handler) handleLogin(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.CredentialsPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if h.auth == nil {
		sendAck(client, protocol.MsgLogin, "", apperrors.ErrAuthDisabled)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	if err := h.auth.Login(ctx, payload.Username, payload.Password); err != nil {
		sendAck(client, protocol.MsgLogin, "", err)
		return
	}

	client.SetName(strings.TrimSpace(payload.Username))
	logger.Infof("🔑 玩家 %s 登录", client.GetName())
	sendAck(client, protocol.MsgLogin, "", nil)
}
