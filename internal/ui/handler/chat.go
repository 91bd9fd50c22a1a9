package handler

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/sound"
	"github.com/palemoky/draw-guess/internal/ui/common"
	"github.com/palemoky/draw-guess/internal/ui/model"
)

func handleMsgChatNew(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ChatNewPayload](msg)
	if err != nil {
		return nil
	}
	ts := time.UnixMilli(payload.Timestamp).Format("15:04")
	m.AddChat(fmt.Sprintf("%s %s: %s", common.MutedStyle.Render(ts), common.TruncateName(payload.From, 12), payload.Text))
	return nil
}

func handleMsgGuessCorrect(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GuessCorrectPayload](msg)
	if err != nil {
		return nil
	}
	m.AddChat(fmt.Sprintf("✅ %s 猜中了！+%d 分（共 %d 分）", payload.By, payload.Award, payload.Total))
	m.PlaySound(sound.CueCorrect)
	return nil
}

func handleMsgGuessClose(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GuessClosePayload](msg)
	if err != nil {
		return nil
	}
	m.PlaySound(sound.CueClose)
	return m.SetNotice(fmt.Sprintf("🤏 「%s」很接近了！", payload.Text))
}
