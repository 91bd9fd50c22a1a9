package apperrors

import (
	"errors"

	"github.com/palemoky/draw-guess/internal/protocol"
)

// GameError 游戏错误（房间、回合、账号共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrRoomNotFound        = newError(protocol.ErrCodeRoomNotFound)
	ErrDuplicateRoom       = newError(protocol.ErrCodeDuplicateRoom)
	ErrRoomFull            = newError(protocol.ErrCodeRoomFull)
	ErrInvalidSelector     = newError(protocol.ErrCodeInvalidSelector)
	ErrNotHost             = newError(protocol.ErrCodeNotHost)
	ErrInsufficientPlayers = newError(protocol.ErrCodeInsufficientPlayers)
	ErrAlreadyStarted      = newError(protocol.ErrCodeAlreadyStarted)
	ErrNotInRoom           = newError(protocol.ErrCodeNotInRoom)
	ErrNotDrawer           = newError(protocol.ErrCodeNotDrawer)
	ErrNotSameRoom         = newError(protocol.ErrCodeNotSameRoom)
	ErrUserExists          = newError(protocol.ErrCodeUserExists)
	ErrInvalidCredentials  = newError(protocol.ErrCodeInvalidCredentials)
	ErrAuthDisabled        = newError(protocol.ErrCodeAuthDisabled)
)

// Code 提取错误码，非 GameError 返回 ErrCodeUnknown
func Code(err error) int {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	return protocol.ErrCodeUnknown
}
