package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小，画笔数据比普通消息大
	maxMessageSize = 64 * 1024

	// 发送缓冲区大小
	sendBufferSize = 256

	// 超速次数达到该值后断开连接
	maxRateStrikes = 10
)

// outbound 待写出的一帧
type outbound struct {
	frameType int
	data      []byte
}

// Client 代表一个连接的玩家
type Client struct {
	ID string // 连接唯一 ID
	IP string // 客户端 IP 地址

	server *Server
	conn   *websocket.Conn
	send   chan outbound
	format atomic.Int32 // codec.Format，跟随客户端最近一次发送的帧类型

	mu     sync.RWMutex
	name   string
	closed bool
}

// NewClient 创建新客户端
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New().String(),
		name:   GenerateNickname(),
		server: s,
		conn:   conn,
		send:   make(chan outbound, sendBufferSize),
	}
}

// GetID 连接 ID
func (c *Client) GetID() string {
	return c.ID
}

// GetName 显示名
func (c *Client) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// SetName 修改显示名（登录后使用用户名）
func (c *Client) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// Format 当前使用的帧格式
func (c *Client) Format() codec.Format {
	return codec.Format(c.format.Load())
}

// ReadPump 从 WebSocket 读取消息
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.handleDisconnect()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		frameType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warnf("读取错误: %v", err)
			}
			return
		}

		// 消息速率限制检查
		allowed, strikes := c.server.messageLimiter.AllowMessage(c.ID)
		if !allowed {
			logger.Warnf("⚠️ 客户端 %s (IP: %s) 消息过于频繁", c.GetName(), c.IP)
			if strikes >= maxRateStrikes {
				logger.Warnf("🚫 客户端 %s 因多次超速被断开连接", c.GetName())
				return
			}
			c.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeRateLimit, "消息发送过于频繁"))
			continue
		}

		format := codec.FormatJSON
		if frameType == websocket.BinaryMessage {
			format = codec.FormatBinary
		}
		c.format.Store(int32(format))

		msg, err := codec.DecodeAs(format, data)
		if err != nil {
			logger.Debugf("消息解析错误: %v", err)
			c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		// 交给处理器处理
		c.server.handler.Handle(c, msg)
		codec.PutMessage(msg)
	}
}

// WritePump 向 WebSocket 写入消息
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(frame.frameType, frame.data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息给客户端，不会阻塞
func (c *Client) SendMessage(msg *protocol.Message) {
	format := c.Format()
	data, err := codec.EncodeAs(format, msg)
	if err != nil {
		logger.Errorf("消息编码错误: %v", err)
		return
	}
	frame := outbound{frameType: websocket.TextMessage, data: data}
	if format == codec.FormatBinary {
		frame.frameType = websocket.BinaryMessage
	}

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	select {
	case c.send <- frame:
		c.mu.RUnlock()
		return
	default:
	}
	c.mu.RUnlock()

	// 发送缓冲区已满，关闭连接
	logger.Warnf("客户端 %s 发送缓冲区已满", c.ID)
	c.Close()
}

// handleDisconnect 处理断开连接：离开所有房间并清理限流记录
func (c *Client) handleDisconnect() {
	c.server.handler.Disconnect(c)
	c.server.messageLimiter.RemoveClient(c.ID)
	c.server.unregisterClient(c)
	c.Close()
}

// Close 关闭发送通道，WritePump 随后关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
