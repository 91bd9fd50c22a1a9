package codec

import (
	"bytes"
	"sync"

	"github.com/palemoky/draw-guess/internal/protocol"
)

// maxPooledBuffer 超过单帧上限的缓冲区不回收，避免一次大笔画长期占用内存
const maxPooledBuffer = 64 << 10

// pool 带类型的 sync.Pool
type pool[T any] struct {
	p     sync.Pool
	reset func(*T) bool // 返回 false 表示丢弃
}

func newPool[T any](reset func(*T) bool) *pool[T] {
	return &pool[T]{
		p:     sync.Pool{New: func() any { return new(T) }},
		reset: reset,
	}
}

func (p *pool[T]) get() *T {
	return p.p.Get().(*T)
}

func (p *pool[T]) put(v *T) {
	if v == nil || !p.reset(v) {
		return
	}
	p.p.Put(v)
}

// 画笔数据是最高频的消息，信封和编码缓冲区都走池
var (
	messages = newPool(func(m *protocol.Message) bool {
		m.Type = ""
		m.Payload = nil
		return true
	})

	buffers = newPool(func(b *bytes.Buffer) bool {
		if b.Cap() > maxPooledBuffer {
			return false
		}
		b.Reset()
		return true
	})
)

// GetMessage 从池中取一个空消息
func GetMessage() *protocol.Message { return messages.get() }

// PutMessage 归还消息，调用后不得再使用 msg 及其 Payload
func PutMessage(msg *protocol.Message) { messages.put(msg) }

// GetBuffer 从池中取一个空缓冲区
func GetBuffer() *bytes.Buffer { return buffers.get() }

// PutBuffer 归还缓冲区
func PutBuffer(buf *bytes.Buffer) { buffers.put(buf) }
