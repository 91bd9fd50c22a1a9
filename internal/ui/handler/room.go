package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/ui/model"
)

func handleMsgRoomState(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoomStatePayload](msg)
	if err != nil {
		return nil
	}
	m.SetRoomState(payload)
	return nil
}

func handleMsgRoomListResult(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoomListResultPayload](msg)
	if err != nil {
		return nil
	}
	m.SetRooms(payload.Rooms)
	return nil
}

func handleMsgSystem(m *model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.SystemPayload](msg)
	if err != nil {
		return nil
	}
	if m.RoomID() == "" {
		return m.SetNotice("📢 " + payload.Text)
	}
	m.AddChat("📢 " + payload.Text)
	return nil
}
