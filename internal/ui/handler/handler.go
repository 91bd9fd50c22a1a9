// Package handler processes server messages.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/ui/model"
)

// messageHandler 消息处理函数类型
type messageHandler func(m *model.Model, msg *protocol.Message) tea.Cmd

// messageHandlers 消息处理器映射表
var messageHandlers = map[protocol.MessageType]messageHandler{
	// Connection
	protocol.MsgConnected: handleMsgConnected,
	protocol.MsgPong:      handleMsgPong,
	protocol.MsgAck:       handleMsgAck,
	protocol.MsgError:     handleMsgError,

	// Room
	protocol.MsgRoomState:      handleMsgRoomState,
	protocol.MsgRoomListResult: handleMsgRoomListResult,
	protocol.MsgSystem:         handleMsgSystem,

	// Round
	protocol.MsgRoundStartDrawer: handleMsgRoundStartDrawer,
	protocol.MsgRoundStart:       handleMsgRoundStart,
	protocol.MsgRoundEnd:         handleMsgRoundEnd,
	protocol.MsgGameOver:         handleMsgGameOver,

	// Chat & guesses
	protocol.MsgChatNew:      handleMsgChatNew,
	protocol.MsgGuessCorrect: handleMsgGuessCorrect,
	protocol.MsgGuessClose:   handleMsgGuessClose,
}

// HandleServerMessage dispatches server messages to appropriate handlers.
// 终端没有画布，画笔和通话信令直接忽略
func HandleServerMessage(m *model.Model, msg *protocol.Message) tea.Cmd {
	if handler, ok := messageHandlers[msg.Type]; ok {
		return handler(m, msg)
	}
	return nil
}
