package handler

import (
	"github.com/palemoky/draw-guess/internal/game/room"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.registry.Create(client, room.CreateParams{
		RoomID:     payload.RoomID,
		Language:   payload.Language,
		Category:   payload.Category,
		MaxPlayers: payload.MaxPlayers,
	})
	if err != nil {
		sendAck(client, protocol.MsgCreateRoom, payload.RoomID, err)
		return
	}
	sendAck(client, protocol.MsgCreateRoom, r.ID, nil)
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.RoomPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	_, err = h.registry.Join(client, payload.RoomID)
	sendAck(client, protocol.MsgJoinRoom, payload.RoomID, err)
}

// handleLeaveRoom 处理离开房间，不回复确认
func (h *Handler) handleLeaveRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.RoomPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.registry.Leave(client.GetID(), payload.RoomID)
}

// handleGetRoomList 处理获取房间列表
func (h *Handler) handleGetRoomList(client types.ClientInterface) {
	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomListResult, protocol.RoomListResultPayload{
		Rooms: h.registry.List(),
	}))
}

// handleStartGame 处理开始游戏
func (h *Handler) handleStartGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.RoomPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.registry.Get(payload.RoomID)
	if err == nil {
		err = r.StartGame(client.GetID())
	}
	sendAck(client, protocol.MsgStartGame, payload.RoomID, err)
}
