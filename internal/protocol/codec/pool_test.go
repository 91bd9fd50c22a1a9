package codec

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessagePool_GetPut(t *testing.T) {
	t.Parallel()

	msg := GetMessage()
	assert.NotNil(t, msg)

	msg.Type = "test"
	msg.Payload = []byte("data")
	PutMessage(msg)

	// 取回的对象必须是干净的
	msg2 := GetMessage()
	assert.NotNil(t, msg2)
	assert.Empty(t, msg2.Type)
	assert.Nil(t, msg2.Payload)
}

func TestMessagePool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutMessage(nil)
	})
}

func TestBufferPool_GetPut(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	assert.NotNil(t, buf)
	assert.Equal(t, 0, buf.Len())

	buf.WriteString("hello")
	PutBuffer(buf)

	buf2 := GetBuffer()
	assert.Equal(t, 0, buf2.Len())
	PutBuffer(buf2)
}

func TestBufferPool_OversizeDropped(t *testing.T) {
	t.Parallel()

	big := bytes.NewBuffer(make([]byte, 0, maxPooledBuffer+1))
	big.WriteString("stroke")
	assert.NotPanics(t, func() { PutBuffer(big) })
	// 被丢弃的缓冲区保持原样
	assert.Equal(t, "stroke", big.String())
	assert.NotPanics(t, func() { PutBuffer(nil) })
}

func TestPools_Concurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			msg := GetMessage()
			msg.Type = "x"
			PutMessage(msg)

			buf := GetBuffer()
			buf.WriteString("y")
			PutBuffer(buf)
		})
	}
	wg.Wait()
}
