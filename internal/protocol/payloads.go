package protocol

import "encoding/json"

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CredentialsPayload 注册/登录请求
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	RoomID     string `json:"room_id,omitempty"` // 为空时由服务器生成
	Language   string `json:"language"`
	Category   string `json:"category"`
	MaxPlayers int    `json:"max_players"`
}

// RoomPayload 只携带房间号的请求（加入/离开/开始）
type RoomPayload struct {
	RoomID string `json:"room_id"`
}

// ChatSendPayload 聊天/猜词请求
type ChatSendPayload struct {
	RoomID string `json:"room_id"`
	Text   string `json:"text"`
}

// DrawStrokePayload 画笔数据，服务器不解析 Data，原样转发
type DrawStrokePayload struct {
	RoomID string          `json:"room_id"`
	Data   json.RawMessage `json:"data"`
}

// CallSignalPayload 通话信令
type CallSignalPayload struct {
	RoomID string          `json:"room_id,omitempty"`
	Target string          `json:"target,omitempty"` // 请求：目标连接 ID
	From   string          `json:"from,omitempty"`   // 转发：发送者连接 ID
	Data   json.RawMessage `json:"data"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// AckPayload 请求确认
type AckPayload struct {
	For    MessageType `json:"for"`
	OK     bool        `json:"ok"`
	RoomID string      `json:"room_id,omitempty"`
	Code   int         `json:"code,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Guessed bool   `json:"guessed"`
}

// RoomStatePayload 房间状态广播
type RoomStatePayload struct {
	RoomID      string       `json:"room_id"`
	HostID      string       `json:"host_id"`
	Language    string       `json:"language"`
	Category    string       `json:"category"`
	Phase       string       `json:"phase"`
	Round       int          `json:"round"`
	MaxRounds   int          `json:"max_rounds"`
	DrawerID    string       `json:"drawer_id,omitempty"`
	MaskedWord  *string      `json:"masked_word"`   // 无回合时为 null
	RoundEndsAt *int64       `json:"round_ends_at"` // 毫秒时间戳，无回合时为 null
	Players     []PlayerInfo `json:"players"`
}

// RoundStartDrawerPayload 画手收到的回合开始通知
type RoundStartDrawerPayload struct {
	Word      string `json:"word"`
	Round     int    `json:"round"`
	MaxRounds int    `json:"max_rounds"`
}

// RoundStartPayload 其他玩家收到的回合开始通知
type RoundStartPayload struct {
	MaskedWord  string `json:"masked_word"`
	DrawerID    string `json:"drawer_id"`
	Round       int    `json:"round"`
	MaxRounds   int    `json:"max_rounds"`
	RoundEndsAt int64  `json:"round_ends_at"`
}

// RoundEndPayload 回合结束通知
type RoundEndPayload struct {
	Reason string `json:"reason"` // time / all-guessed / drawer-left
	Word   string `json:"word"`
}

// ResultEntry 最终排名条目
type ResultEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	Results []ResultEntry `json:"results"` // 按分数降序
}

// GuessCorrectPayload 猜中通知
type GuessCorrectPayload struct {
	By    string `json:"by"`
	Award int    `json:"award"`
	Total int    `json:"total"`
}

// GuessClosePayload 接近答案提示
type GuessClosePayload struct {
	Text string `json:"text"`
}

// ChatNewPayload 聊天消息
type ChatNewPayload struct {
	From      string `json:"from"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // 毫秒
}

// SystemPayload 系统通知
type SystemPayload struct {
	Text string `json:"text"`
}

// RoomListItem 房间列表项
type RoomListItem struct {
	RoomID      string `json:"room_id"`
	Language    string `json:"language"`
	Category    string `json:"category"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Phase       string `json:"phase"`
}

// RoomListResultPayload 房间列表结果
type RoomListResultPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}
