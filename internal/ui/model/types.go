// Package model 终端客户端的状态与事件循环
package model

import (
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/sound"
)

// GamePhase 界面阶段
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseLobby
	PhaseRoom
	PhaseGameOver
)

// Actions 客户端可以发出的请求，由 transport.Client 实现
type Actions interface {
	Register(username, password string) error
	Login(username, password string) error
	CreateRoom(roomID, language, category string, maxPlayers int) error
	JoinRoom(roomID string) error
	LeaveRoom(roomID string) error
	GetRoomList() error
	StartGame(roomID string) error
	SendChat(roomID, text string) error
}

// SoundPlayer 播放提示音
type SoundPlayer interface {
	Play(cue sound.Cue)
}

// --- Tea Messages ---

// ServerMessage wraps a protocol message for tea.Msg.
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg indicates successful connection.
type ConnectedMsg struct{}

// ConnectionErrorMsg indicates a connection error.
type ConnectionErrorMsg struct {
	Err error
}

// TickMsg 每秒刷新倒计时
type TickMsg struct{}

// ClearNoticeMsg 清除临时提示，Seq 不匹配时忽略
type ClearNoticeMsg struct {
	Seq int
}
