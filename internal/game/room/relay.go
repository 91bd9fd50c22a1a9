package room

import (
	"encoding/json"

	"github.com/palemoky/draw-guess/internal/apperrors"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
)

// RelayStroke 将画手的画笔数据原样转发给房间内其他玩家
func (r *Room) RelayStroke(senderID string, data json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return apperrors.ErrRoomNotFound
	}
	if _, ok := r.players[senderID]; !ok {
		return apperrors.ErrNotInRoom
	}
	if r.round == nil || r.round.drawerID != senderID {
		return apperrors.ErrNotDrawer
	}

	r.broadcastExceptLocked(senderID, codec.MustNewMessage(protocol.MsgDrawStroke, protocol.DrawStrokePayload{
		RoomID: r.ID,
		Data:   data,
	}))
	return nil
}

// RelaySignal 在同一房间的两名玩家之间转发通话信令
func (r *Room) RelaySignal(fromID, targetID string, data json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return apperrors.ErrRoomNotFound
	}
	if _, ok := r.players[fromID]; !ok {
		return apperrors.ErrNotInRoom
	}
	if _, ok := r.players[targetID]; !ok || targetID == fromID {
		return apperrors.ErrNotSameRoom
	}

	r.sendToLocked(targetID, codec.MustNewMessage(protocol.MsgCallSignal, protocol.CallSignalPayload{
		RoomID: r.ID,
		From:   fromID,
		Data:   data,
	}))
	return nil
}
