package room

import (
	"sort"
	"time"

	"github.com/palemoky/draw-guess/internal/apperrors"
	"github.com/palemoky/draw-guess/internal/game/guess"
	"github.com/palemoky/draw-guess/internal/game/turn"
	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
)

// startRoundLocked 开始下一回合。回合数已满时不做任何事，
// 在场不足 2 人时提前结束游戏
func (r *Room) startRoundLocked() {
	if r.roundIndex >= r.MaxRounds {
		return
	}
	if len(r.players) < 2 {
		logger.Infof("⏹️ 房间 %s 人数不足，提前结束游戏", r.ID)
		r.roundIndex = r.MaxRounds
		r.finishGameLocked()
		return
	}

	drawerID, order := turn.NextDrawer(r.drawOrder, r.presentLocked())
	word, err := r.opts.Words.PickExcept(r.Language, r.Category, r.prevWord)
	if err != nil {
		// 创建时已校验过词库，不应发生
		logger.Errorf("❌ 房间 %s 选词失败: %v", r.ID, err)
		return
	}

	r.roundIndex++
	r.drawOrder = order
	for _, p := range r.players {
		p.Guessed = false
	}

	deadline := r.timer.Now().Add(r.opts.RoundDuration)
	r.round = &activeRound{word: word, drawerID: drawerID, deadline: deadline}
	r.phase = PhaseRoundActive
	r.armLocked(r.opts.RoundDuration, func() {
		r.endRoundLocked(protocol.EndReasonTime)
	})

	logger.Debugf("🖌️ 房间 %s 第 %d/%d 回合，画手 %s", r.ID, r.roundIndex, r.MaxRounds, drawerID)

	r.sendToLocked(drawerID, codec.MustNewMessage(protocol.MsgRoundStartDrawer, protocol.RoundStartDrawerPayload{
		Word:      word,
		Round:     r.roundIndex,
		MaxRounds: r.MaxRounds,
	}))
	r.broadcastExceptLocked(drawerID, codec.MustNewMessage(protocol.MsgRoundStart, protocol.RoundStartPayload{
		MaskedWord:  guess.Mask(word),
		DrawerID:    drawerID,
		Round:       r.roundIndex,
		MaxRounds:   r.MaxRounds,
		RoundEndsAt: deadline.UnixMilli(),
	}))
	r.broadcastStateLocked()
}

// endRoundLocked 结束当前回合并揭晓答案；没有进行中的回合时为空操作
func (r *Room) endRoundLocked(reason string) {
	if r.round == nil {
		return
	}
	r.cancelPendingLocked()

	word := r.round.word
	r.prevWord = word
	r.round = nil
	for _, p := range r.players {
		p.Guessed = false
	}

	logger.Debugf("🔔 房间 %s 第 %d 回合结束 (%s)，答案 %s", r.ID, r.roundIndex, reason, word)

	r.broadcastLocked(codec.MustNewMessage(protocol.MsgRoundEnd, protocol.RoundEndPayload{
		Reason: reason,
		Word:   word,
	}))

	if r.roundIndex >= r.MaxRounds {
		r.finishGameLocked()
		return
	}

	r.phase = PhaseRoundCooldown
	r.armLocked(r.opts.Cooldown, r.startRoundLocked)
	r.broadcastStateLocked()
}

// finishGameLocked 进入终局并广播最终排名，只会执行一次
func (r *Room) finishGameLocked() {
	if r.phase == PhaseGameOver {
		return
	}
	r.cancelPendingLocked()
	r.round = nil
	r.phase = PhaseGameOver

	results := r.standingsLocked()
	logger.Infof("🏁 房间 %s 游戏结束", r.ID)

	r.broadcastLocked(codec.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{Results: results}))
	r.broadcastStateLocked()
}

// standingsLocked 按分数降序排列，同分保持加入顺序
func (r *Room) standingsLocked() []protocol.ResultEntry {
	results := make([]protocol.ResultEntry, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		results = append(results, protocol.ResultEntry{Name: p.Name, Score: p.Score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// allGuessedLocked 至少有一名非画手，且所有非画手都已猜中
func (r *Room) allGuessedLocked() bool {
	if r.round == nil {
		return false
	}
	guessers := 0
	for id, p := range r.players {
		if id == r.round.drawerID {
			continue
		}
		guessers++
		if !p.Guessed {
			return false
		}
	}
	return guessers > 0
}

// awardLocked 计算猜中得分：基础分加剩余时间加成
func (r *Room) awardLocked() int {
	remaining := r.round.deadline.Sub(r.timer.Now())
	remaining = max(remaining, 0)
	return baseAward + int(timeBonus*remaining/r.opts.RoundDuration)
}

// SubmitChat 处理聊天消息：先记录并广播，再按猜词规则判定
func (r *Room) SubmitChat(id, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return apperrors.ErrRoomNotFound
	}
	sender, ok := r.players[id]
	if !ok {
		return apperrors.ErrNotInRoom
	}
	if text == "" {
		return nil
	}

	now := r.timer.Now()
	r.touchLocked()
	r.appendChatLocked(ChatEntry{SenderName: sender.Name, Text: text, Timestamp: now})
	r.broadcastLocked(codec.MustNewMessage(protocol.MsgChatNew, protocol.ChatNewPayload{
		From:      sender.Name,
		Text:      text,
		Timestamp: now.UnixMilli(),
	}))

	if r.round == nil || id == r.round.drawerID || sender.Guessed {
		return nil
	}

	if !guess.Matches(text, r.round.word, r.Language) {
		if guess.IsClose(text, r.round.word, r.Language) {
			r.sendToLocked(id, codec.MustNewMessage(protocol.MsgGuessClose, protocol.GuessClosePayload{Text: text}))
		}
		return nil
	}

	award := r.awardLocked()
	sender.Guessed = true
	sender.Score += award
	if drawer, ok := r.players[r.round.drawerID]; ok {
		drawer.Score += drawerBonus
	}

	logger.Debugf("🎯 房间 %s 玩家 %s 猜中，得 %d 分", r.ID, sender.Name, award)

	r.broadcastLocked(codec.MustNewMessage(protocol.MsgGuessCorrect, protocol.GuessCorrectPayload{
		By:    sender.Name,
		Award: award,
		Total: sender.Score,
	}))

	if r.allGuessedLocked() {
		r.endRoundLocked(protocol.EndReasonAllGuessed)
		return nil
	}
	r.broadcastStateLocked()
	return nil
}

func (r *Room) appendChatLocked(entry ChatEntry) {
	r.chatLog = append(r.chatLog, entry)
	if over := len(r.chatLog) - maxChatLog; over > 0 {
		r.chatLog = append(r.chatLog[:0:0], r.chatLog[over:]...)
	}
}

// RemainingTime 当前回合剩余时间
func (r *Room) RemainingTime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round == nil {
		return 0
	}
	return max(r.round.deadline.Sub(r.timer.Now()), 0)
}
