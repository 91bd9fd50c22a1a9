package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/types"
)

const maxChatLength = 200 // 单条聊天最大字符数

// handleChat 处理聊天/猜词
func (h *Handler) handleChat(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ChatSendPayload](msg)
	if err != nil {
		return
	}

	// 只用去空白后的结果判断是否为空，广播和记录保留原文
	text := payload.Text
	if strings.TrimSpace(text) == "" {
		return
	}
	if utf8.RuneCountInString(text) > maxChatLength {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "消息过长"))
		return
	}

	// 聊天限流检查
	if h.chatLimiter != nil {
		allowed, reason := h.chatLimiter.AllowChat(client.GetID())
		if !allowed {
			client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeRateLimit, reason))
			return
		}
	}

	r, err := h.registry.Get(payload.RoomID)
	if err == nil {
		err = r.SubmitChat(client.GetID(), text)
	}
	if err != nil {
		sendError(client, err)
	}
}
