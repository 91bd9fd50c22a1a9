package types

import (
	"github.com/palemoky/draw-guess/internal/protocol"
)

// ClientInterface 定义客户端接口，房间通过它向单个连接投递消息。
// SendMessage 不能阻塞：房间在持锁状态下广播
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	SendMessage(msg *protocol.Message)
	Close()
}

// ChatLimiter 聊天速率限制器接口
type ChatLimiter interface {
	AllowChat(clientID string) (allowed bool, reason string)
	RemoveClient(clientID string)
}
