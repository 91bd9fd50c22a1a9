package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 账号（外部协作方）
	MsgRegister MessageType = "auth.register" // 注册
	MsgLogin    MessageType = "auth.login"    // 登录

	// 房间操作
	MsgCreateRoom  MessageType = "room.create" // 创建房间
	MsgJoinRoom    MessageType = "room.join"   // 加入房间
	MsgLeaveRoom   MessageType = "room.leave"  // 离开房间
	MsgGetRoomList MessageType = "room.list"   // 获取房间列表

	// 游戏操作
	MsgStartGame MessageType = "game.start" // 房主开始游戏
	MsgChatSend  MessageType = "chat.send"  // 聊天/猜词

	// 转发
	MsgDrawStroke MessageType = "draw.stroke" // 画笔数据（画手 → 房间）
	MsgCallSignal MessageType = "call.signal" // 通话信令（点对点）
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong
	MsgAck       MessageType = "ack"       // 请求确认

	// 房间相关
	MsgRoomState      MessageType = "room.state"       // 房间完整状态
	MsgRoomListResult MessageType = "room.list.result" // 房间列表结果
	MsgSystem         MessageType = "system"           // 系统通知（加入/离开）

	// 回合流程
	MsgRoundStartDrawer MessageType = "round.start.drawer" // 回合开始（仅画手，含明文词）
	MsgRoundStart       MessageType = "round.start"        // 回合开始（其他玩家，遮罩词）
	MsgRoundEnd         MessageType = "round.end"          // 回合结束，揭晓答案
	MsgGameOver         MessageType = "game.over"          // 游戏结束

	// 猜词 / 聊天
	MsgGuessCorrect MessageType = "guess.correct" // 有人猜中
	MsgGuessClose   MessageType = "guess.close"   // 接近答案（仅发给猜的人）
	MsgChatNew      MessageType = "chat.new"      // 新聊天消息

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// 回合结束原因
const (
	EndReasonTime       = "time"
	EndReasonAllGuessed = "all-guessed"
	EndReasonDrawerLeft = "drawer-left"
)
