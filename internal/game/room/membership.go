package room

import (
	"fmt"

	"github.com/palemoky/draw-guess/internal/apperrors"
	"github.com/palemoky/draw-guess/internal/game/guess"
	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/types"
)

// addPlayerLocked 添加玩家，调用方已完成校验
func (r *Room) addPlayerLocked(client types.ClientInterface) {
	id := client.GetID()
	r.players[id] = &Player{Client: client, Name: client.GetName()}
	r.order = append(r.order, id)
	if r.hostID == "" {
		r.hostID = id
	}
	r.touchLocked()
}

// Join 加入房间，游戏进行中也可加入，并在下一轮轮换中排到队尾
func (r *Room) Join(client types.ClientInterface) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return apperrors.ErrRoomNotFound
	}

	id := client.GetID()
	if _, exists := r.players[id]; exists {
		// 重复加入只补发状态
		r.sendToLocked(id, codec.MustNewMessage(protocol.MsgRoomState, r.stateLocked()))
		return nil
	}
	if len(r.players) >= r.MaxPlayers {
		return apperrors.ErrRoomFull
	}

	r.addPlayerLocked(client)
	logger.Infof("👤 玩家 %s 加入房间 %s", client.GetName(), r.ID)

	r.systemLocked(fmt.Sprintf("%s 加入了房间", client.GetName()))
	r.broadcastStateLocked()

	// 中途加入的玩家需要当前回合信息才能参与猜词
	if r.round != nil {
		r.sendToLocked(id, codec.MustNewMessage(protocol.MsgRoundStart, protocol.RoundStartPayload{
			MaskedWord:  guess.Mask(r.round.word),
			DrawerID:    r.round.drawerID,
			Round:       r.roundIndex,
			MaxRounds:   r.MaxRounds,
			RoundEndsAt: r.round.deadline.UnixMilli(),
		}))
	}
	return nil
}

// Leave 移除玩家，返回房间是否因此变空。变空的房间被标记为关闭，由注册表移除
func (r *Room) Leave(id string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaveLocked(id)
}

// Evict 以 reason 通知玩家后按离开处理，房间同样只在最后一人离开时解散
func (r *Room) Evict(id, reason string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; ok && !r.closed {
		r.sendToLocked(id, codec.MustNewMessage(protocol.MsgSystem, protocol.SystemPayload{Text: reason}))
	}
	return r.leaveLocked(id)
}

func (r *Room) leaveLocked(id string) (empty bool) {
	if r.closed {
		return false
	}

	player, exists := r.players[id]
	if !exists {
		return false
	}

	delete(r.players, id)
	r.removeFromOrderLocked(id)
	r.touchLocked()
	logger.Infof("👋 玩家 %s 离开房间 %s", player.Name, r.ID)

	if len(r.players) == 0 {
		r.cancelPendingLocked()
		r.round = nil
		r.closed = true
		logger.Infof("🏠 房间 %s 已解散", r.ID)
		return true
	}

	if r.hostID == id {
		r.hostID = r.order[0]
	}

	r.systemLocked(fmt.Sprintf("%s 离开了房间", player.Name))

	if r.round != nil {
		if r.round.drawerID == id {
			r.endRoundLocked(protocol.EndReasonDrawerLeft)
			return false
		}
		if r.allGuessedLocked() {
			r.endRoundLocked(protocol.EndReasonAllGuessed)
			return false
		}
	}

	r.broadcastStateLocked()
	return false
}

// StartGame 房主开始游戏
func (r *Room) StartGame(requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return apperrors.ErrRoomNotFound
	}
	if _, ok := r.players[requesterID]; !ok {
		return apperrors.ErrNotInRoom
	}
	if r.hostID != requesterID {
		return apperrors.ErrNotHost
	}
	if r.roundIndex > 0 || r.phase != PhaseLobby {
		return apperrors.ErrAlreadyStarted
	}
	if len(r.players) < 2 {
		return apperrors.ErrInsufficientPlayers
	}

	logger.Infof("🎮 房间 %s 开始游戏，共 %d 名玩家", r.ID, len(r.players))
	r.startRoundLocked()
	return nil
}

// close 关闭房间并通知玩家，仅用于服务器关闭
func (r *Room) close(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.systemLocked(reason)
	r.cancelPendingLocked()
	r.round = nil
	r.closed = true
}
