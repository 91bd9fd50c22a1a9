package handler

import (
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/types"
)

// handleDrawStroke 转发画笔数据，只有当前画手可以发送
func (h *Handler) handleDrawStroke(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.DrawStrokePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.registry.Get(payload.RoomID)
	if err == nil {
		err = r.RelayStroke(client.GetID(), payload.Data)
	}
	if err != nil {
		sendError(client, err)
	}
}

// handleCallSignal 在同房间玩家之间转发通话信令
func (h *Handler) handleCallSignal(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.CallSignalPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.registry.Get(payload.RoomID)
	if err == nil {
		err = r.RelaySignal(client.GetID(), payload.Target, payload.Data)
	}
	if err != nil {
		sendError(client, err)
	}
}
