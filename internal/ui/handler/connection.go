package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/ui/model"
)

func handleMsgConnected(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ConnectedPayload](msg)
	if err != nil {
		return nil
	}
	m.SetPlayerInfo(payload.PlayerID, payload.PlayerName)
	return nil
}

func handleMsgPong(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.PongPayload](msg)
	if err != nil {
		return nil
	}
	m.SetLatency(m.Now().UnixMilli() - payload.ClientTimestamp)
	return nil
}

func handleMsgError(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return nil
	}
	return m.SetNotice("⚠️ " + payload.Message)
}

// handleMsgAck 请求确认
func handleMsgAck(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.AckPayload](msg)
	if err != nil {
		return nil
	}
	if !payload.OK {
		return m.SetNotice("⚠️ " + payload.Error)
	}

	switch payload.For {
	case protocol.MsgCreateRoom, protocol.MsgJoinRoom:
		m.EnterRoom(payload.RoomID)
		m.AddChat("🏠 已进入房间 " + payload.RoomID)
	case protocol.MsgLogin:
		m.CompleteLogin()
		return m.SetNotice("🔑 登录成功，欢迎 " + m.PlayerName())
	case protocol.MsgRegister:
		return m.SetNotice("📝 注册成功，请使用 /login 登录")
	}
	return nil
}
