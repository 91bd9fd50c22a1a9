package room

import (
	"github.com/palemoky/draw-guess/internal/game/guess"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
)

// broadcastLocked 向房间内所有玩家发送消息
func (r *Room) broadcastLocked(msg *protocol.Message) {
	for _, id := range r.order {
		r.players[id].Client.SendMessage(msg)
	}
}

// broadcastExceptLocked 向除指定玩家外的所有玩家发送消息
func (r *Room) broadcastExceptLocked(exceptID string, msg *protocol.Message) {
	for _, id := range r.order {
		if id != exceptID {
			r.players[id].Client.SendMessage(msg)
		}
	}
}

// sendToLocked 向单个玩家发送消息
func (r *Room) sendToLocked(id string, msg *protocol.Message) {
	if p, ok := r.players[id]; ok {
		p.Client.SendMessage(msg)
	}
}

func (r *Room) systemLocked(text string) {
	r.broadcastLocked(codec.MustNewMessage(protocol.MsgSystem, protocol.SystemPayload{Text: text}))
}

func (r *Room) broadcastStateLocked() {
	r.broadcastLocked(codec.MustNewMessage(protocol.MsgRoomState, r.stateLocked()))
}

// stateLocked 构建房间完整状态
func (r *Room) stateLocked() protocol.RoomStatePayload {
	state := protocol.RoomStatePayload{
		RoomID:    r.ID,
		HostID:    r.hostID,
		Language:  r.Language,
		Category:  r.Category,
		Phase:     r.phase.String(),
		Round:     r.roundIndex,
		MaxRounds: r.MaxRounds,
		Players:   make([]protocol.PlayerInfo, 0, len(r.order)),
	}

	if r.round != nil {
		masked := guess.Mask(r.round.word)
		endsAt := r.round.deadline.UnixMilli()
		state.DrawerID = r.round.drawerID
		state.MaskedWord = &masked
		state.RoundEndsAt = &endsAt
	}

	for _, id := range r.order {
		p := r.players[id]
		state.Players = append(state.Players, protocol.PlayerInfo{
			ID:      id,
			Name:    p.Name,
			Score:   p.Score,
			Guessed: p.Guessed,
		})
	}
	return state
}

// State 房间完整状态快照
func (r *Room) State() protocol.RoomStatePayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// Info 房间列表项
func (r *Room) Info() protocol.RoomListItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return protocol.RoomListItem{
		RoomID:      r.ID,
		Language:    r.Language,
		Category:    r.Category,
		PlayerCount: len(r.players),
		MaxPlayers:  r.MaxPlayers,
		Phase:       r.phase.String(),
	}
}
