package transport

import (
	"time"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
)

// --- 便捷方法 ---

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}

// Register 注册账号
func (c *Client) Register(username, password string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgRegister, protocol.CredentialsPayload{
		Username: username,
		Password: password,
	}))
}

// Login 登录
func (c *Client) Login(username, password string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgLogin, protocol.CredentialsPayload{
		Username: username,
		Password: password,
	}))
}

// CreateRoom 创建房间，roomID 为空时由服务器生成
func (c *Client) CreateRoom(roomID, language, category string, maxPlayers int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		RoomID:     roomID,
		Language:   language,
		Category:   category,
		MaxPlayers: maxPlayers,
	}))
}

// JoinRoom 加入房间
func (c *Client) JoinRoom(roomID string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgJoinRoom, protocol.RoomPayload{RoomID: roomID}))
}

// LeaveRoom 离开房间
func (c *Client) LeaveRoom(roomID string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgLeaveRoom, protocol.RoomPayload{RoomID: roomID}))
}

// GetRoomList 获取房间列表
func (c *Client) GetRoomList() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetRoomList, nil))
}

// StartGame 房主开始游戏
func (c *Client) StartGame(roomID string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgStartGame, protocol.RoomPayload{RoomID: roomID}))
}

// SendChat 发送聊天或猜词
func (c *Client) SendChat(roomID, text string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgChatSend, protocol.ChatSendPayload{
		RoomID: roomID,
		Text:   text,
	}))
}
