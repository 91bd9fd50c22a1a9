package handler

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/sound"
	"github.com/palemoky/draw-guess/internal/ui/model"
)

// handleMsgRoundStartDrawer 自己是画手，收到明文词
func handleMsgRoundStartDrawer(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoundStartDrawerPayload](msg)
	if err != nil {
		return nil
	}
	m.SetPhase(model.PhaseRoom)
	m.SetSecretWord(payload.Word)
	m.SetLastReveal("")
	m.AddChat(fmt.Sprintf("🖌️ 第 %d/%d 回合：轮到你画「%s」", payload.Round, payload.MaxRounds, payload.Word))
	m.PlaySound(sound.CueRoundStart)
	return nil
}

func handleMsgRoundStart(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoundStartPayload](msg)
	if err != nil {
		return nil
	}
	m.SetPhase(model.PhaseRoom)
	m.SetSecretWord("")
	m.SetLastReveal("")
	m.AddChat(fmt.Sprintf("🖌️ 第 %d/%d 回合：%s 作画，共 %d 个字",
		payload.Round, payload.MaxRounds, m.PlayerNameOf(payload.DrawerID), len([]rune(payload.MaskedWord))))
	m.PlaySound(sound.CueRoundStart)
	return nil
}

func handleMsgRoundEnd(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoundEndPayload](msg)
	if err != nil {
		return nil
	}
	m.SetSecretWord("")
	m.SetLastReveal(payload.Word)

	reason := map[string]string{
		protocol.EndReasonTime:       "时间到",
		protocol.EndReasonAllGuessed: "全部猜中",
		protocol.EndReasonDrawerLeft: "画手离开",
	}[payload.Reason]
	m.AddChat(fmt.Sprintf("🔔 回合结束（%s），答案是「%s」", reason, payload.Word))
	m.PlaySound(sound.CueRoundEnd)
	return nil
}

func handleMsgGameOver(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GameOverPayload](msg)
	if err != nil {
		return nil
	}
	m.SetResults(payload.Results)
	m.AddChat("🏁 游戏结束")
	m.PlaySound(sound.CueGameOver)
	return nil
}
