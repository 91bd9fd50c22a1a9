package protocol

// 错误码
const (
	ErrCodeUnknown             = 1000
	ErrCodeInvalidMsg          = 1001
	ErrCodeRateLimit           = 1002 // 速率限制
	ErrCodeRoomNotFound        = 2001
	ErrCodeRoomFull            = 2002
	ErrCodeNotInRoom           = 2003
	ErrCodeDuplicateRoom       = 2004
	ErrCodeInvalidSelector     = 2005 // 语言/分类不存在
	ErrCodeNotHost             = 3001
	ErrCodeInsufficientPlayers = 3002
	ErrCodeAlreadyStarted      = 3003
	ErrCodeNotDrawer           = 3004
	ErrCodeNotSameRoom         = 3005
	ErrCodeUserExists          = 4001
	ErrCodeInvalidCredentials  = 4002
	ErrCodeAuthDisabled        = 4003
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:             "未知错误",
	ErrCodeInvalidMsg:          "无效的消息格式",
	ErrCodeRateLimit:           "请求过于频繁",
	ErrCodeRoomNotFound:        "房间不存在",
	ErrCodeRoomFull:            "房间已满",
	ErrCodeNotInRoom:           "您不在房间中",
	ErrCodeDuplicateRoom:       "房间号已存在",
	ErrCodeInvalidSelector:     "不支持的语言或词库分类",
	ErrCodeNotHost:             "只有房主可以开始游戏",
	ErrCodeInsufficientPlayers: "至少需要 2 名玩家",
	ErrCodeAlreadyStarted:      "游戏已开始",
	ErrCodeNotDrawer:           "只有当前画手可以作画",
	ErrCodeNotSameRoom:         "对方不在同一房间",
	ErrCodeUserExists:          "用户名已被注册",
	ErrCodeInvalidCredentials:  "用户名或密码错误",
	ErrCodeAuthDisabled:        "账号服务未启用",
}
