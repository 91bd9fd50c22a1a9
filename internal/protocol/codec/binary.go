package codec

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/draw-guess/internal/protocol"
)

// 二进制帧字段号，与 JSON 的 type/payload 一一对应
const (
	fieldType    protowire.Number = 1
	fieldPayload protowire.Number = 2
)

// Format 帧格式
type Format int

const (
	FormatJSON   Format = iota // WebSocket 文本帧
	FormatBinary               // WebSocket 二进制帧（protobuf wire）
)

var errMissingType = errors.New("codec: message type missing")

// EncodeBinary 将消息编码为 protobuf wire 格式
func EncodeBinary(m *protocol.Message) []byte {
	b := make([]byte, 0, len(m.Type)+len(m.Payload)+8)
	b = protowire.AppendTag(b, fieldType, protowire.BytesType)
	b = protowire.AppendString(b, string(m.Type))
	if len(m.Payload) > 0 {
		b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Payload)
	}
	return b
}

// DecodeBinary 从 protobuf wire 字节解码消息，未知字段会被跳过
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func DecodeBinary(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	fail := func(err error) (*protocol.Message, error) {
		PutMessage(msg)
		return nil, err
	}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fail(protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldType && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return fail(protowire.ParseError(n))
			}
			msg.Type = protocol.MessageType(v)
			data = data[n:]
		case num == fieldPayload && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fail(protowire.ParseError(n))
			}
			// 复制 payload 避免引用读缓冲区
			msg.Payload = append([]byte(nil), v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fail(protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	if msg.Type == "" {
		return fail(errMissingType)
	}
	return msg, nil
}

// EncodeAs 按帧格式编码
func EncodeAs(format Format, m *protocol.Message) ([]byte, error) {
	if format == FormatBinary {
		return EncodeBinary(m), nil
	}
	return Encode(m)
}

// DecodeAs 按帧格式解码
func DecodeAs(format Format, data []byte) (*protocol.Message, error) {
	if format == FormatBinary {
		return DecodeBinary(data)
	}
	return Decode(data)
}
