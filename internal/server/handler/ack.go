package handler

import (
	"github.com/palemoky/draw-guess/internal/apperrors"
	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/types"
)

// sendAck 回复请求确认，err 不为 nil 时 ok=false
func sendAck(client types.ClientInterface, forType protocol.MessageType, roomID string, err error) {
	payload := protocol.AckPayload{For: forType, OK: err == nil, RoomID: roomID}
	if err != nil {
		payload.Code = apperrors.Code(err)
		payload.Error = errorText(err)
	}
	client.SendMessage(codec.MustNewMessage(protocol.MsgAck, payload))
}

// sendError 发送错误消息（无需确认的请求）
func sendError(client types.ClientInterface, err error) {
	client.SendMessage(codec.NewErrorMessageWithText(apperrors.Code(err), errorText(err)))
}

// errorText 业务错误原样返回，内部错误只记录日志
func errorText(err error) string {
	if apperrors.Code(err) == protocol.ErrCodeUnknown {
		logger.Errorf("❌ 处理请求失败: %v", err)
		return protocol.ErrorMessages[protocol.ErrCodeUnknown]
	}
	return err.Error()
}
