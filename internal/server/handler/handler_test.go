package handler

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/draw-guess/internal/game/room"
	"github.com/palemoky/draw-guess/internal/game/timer"
	"github.com/palemoky/draw-guess/internal/game/words"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/testutil"
)

func newTestHandler(t *testing.T, deps HandlerDeps) (*Handler, *timer.FakeClock) {
	t.Helper()

	clock := timer.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	deps.Registry = room.NewRegistry(room.Options{
		Words: words.New(words.Lists{"tr": {"esyalar": {"masa"}}}, rand.New(rand.NewPCG(1, 1))),
		Clock: clock,
		Rand:  rand.New(rand.NewPCG(3, 4)),
	})
	return NewHandler(deps), clock
}

func msgOf(t protocol.MessageType, payload any) *protocol.Message {
	return codec.MustNewMessage(t, payload)
}

func lastAck(t *testing.T, c *testutil.SimpleClient) *protocol.AckPayload {
	t.Helper()
	ack := testutil.LastPayload[protocol.AckPayload](c, protocol.MsgAck)
	require.NotNil(t, ack, "expected an ack")
	return ack
}

// createAndJoin 创建房间并让其他客户端加入，返回房间号
func createAndJoin(t *testing.T, h *Handler, host *testutil.SimpleClient, others ...*testutil.SimpleClient) string {
	t.Helper()

	h.Handle(host, msgOf(protocol.MsgCreateRoom, protocol.CreateRoomPayload{Language: "tr", Category: "esyalar", MaxPlayers: 4}))
	ack := lastAck(t, host)
	require.True(t, ack.OK)

	for _, c := range others {
		h.Handle(c, msgOf(protocol.MsgJoinRoom, protocol.RoomPayload{RoomID: ack.RoomID}))
		require.True(t, lastAck(t, c).OK)
	}
	return ack.RoomID
}

func TestHandler_UnknownType(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, HandlerDeps{})
	c := testutil.NewSimpleClient("p1", "P1")

	h.Handle(c, &protocol.Message{Type: "bogus"})

	errMsg := testutil.LastPayload[protocol.ErrorPayload](c, protocol.MsgError)
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errMsg.Code)
}

func TestHandler_Ping(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, HandlerDeps{})
	c := testutil.NewSimpleClient("p1", "P1")

	h.Handle(c, msgOf(protocol.MsgPing, protocol.PingPayload{Timestamp: 42}))

	pong := testutil.LastPayload[protocol.PongPayload](c, protocol.MsgPong)
	require.NotNil(t, pong)
	assert.Equal(t, int64(42), pong.ClientTimestamp)
	assert.Positive(t, pong.ServerTimestamp)
}

func TestHandler_CreateRoom(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, HandlerDeps{})
	c := testutil.NewSimpleClient("p1", "P1")

	h.Handle(c, msgOf(protocol.MsgCreateRoom, protocol.CreateRoomPayload{RoomID: "fun", Language: "tr", Category: "esyalar"}))
	ack := lastAck(t, c)
	assert.Equal(t, protocol.AckPayload{For: protocol.MsgCreateRoom, OK: true, RoomID: "fun"}, *ack)
	assert.NotNil(t, c.Last(protocol.MsgRoomState))

	other := testutil.NewSimpleClient("p2", "P2")
	h.Handle(other, msgOf(protocol.MsgCreateRoom, protocol.CreateRoomPayload{RoomID: "fun", Language: "tr", Category: "esyalar"}))
	ack = lastAck(t, other)
	assert.False(t, ack.OK)
	assert.Equal(t, protocol.ErrCodeDuplicateRoom, ack.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeDuplicateRoom], ack.Error)

	h.Handle(other, msgOf(protocol.MsgCreateRoom, protocol.CreateRoomPayload{Language: "xx", Category: "yy"}))
	ack = lastAck(t, other)
	assert.False(t, ack.OK)
	assert.Equal(t, protocol.ErrCodeInvalidSelector, ack.Code)
}

func TestHandler_InvalidPayload(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, HandlerDeps{})
	c := testutil.NewSimpleClient("p1", "P1")

	h.Handle(c, &protocol.Message{Type: protocol.MsgJoinRoom, Payload: []byte(`"not an object"`)})

	errMsg := testutil.LastPayload[protocol.ErrorPayload](c, protocol.MsgError)
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errMsg.Code)
	assert.Nil(t, c.Last(protocol.MsgAck))
}

func TestHandler_JoinAndStart(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, HandlerDeps{})
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")

	h.Handle(b, msgOf(protocol.MsgJoinRoom, protocol.RoomPayload{RoomID: "missing"}))
	ack := lastAck(t, b)
	assert.False(t, ack.OK)
	assert.Equal(t, protocol.ErrCodeRoomNotFound, ack.Code)

	roomID := createAndJoin(t, h, a, b)

	h.Handle(b, msgOf(protocol.MsgStartGame, protocol.RoomPayload{RoomID: roomID}))
	ack = lastAck(t, b)
	assert.False(t, ack.OK)
	assert.Equal(t, protocol.ErrCodeNotHost, ack.Code)

	h.Handle(a, msgOf(protocol.MsgStartGame, protocol.RoomPayload{RoomID: roomID}))
	assert.True(t, lastAck(t, a).OK)

	drawer := testutil.LastPayload[protocol.RoundStartDrawerPayload](a, protocol.MsgRoundStartDrawer)
	require.NotNil(t, drawer)
	assert.Equal(t, "masa", drawer.Word)

	h.Handle(a, msgOf(protocol.MsgStartGame, protocol.RoomPayload{RoomID: roomID}))
	assert.Equal(t, protocol.ErrCodeAlreadyStarted, lastAck(t, a).Code)
}

func TestHandler_ChatGuess(t *testing.T) {
	t.Parallel()

	limiter := new(testutil.MockChatLimiter)
	limiter.On("AllowChat", mock.Anything).Return(true, "")

	h, _ := newTestHandler(t, HandlerDeps{ChatLimiter: limiter})
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")
	roomID := createAndJoin(t, h, a, b)
	h.Handle(a, msgOf(protocol.MsgStartGame, protocol.RoomPayload{RoomID: roomID}))

	h.Handle(b, msgOf(protocol.MsgChatSend, protocol.ChatSendPayload{RoomID: roomID, Text: "  MASA "}))

	chat := testutil.LastPayload[protocol.ChatNewPayload](a, protocol.MsgChatNew)
	require.NotNil(t, chat)
	assert.Equal(t, "  MASA ", chat.Text, "chat is broadcast verbatim")

	r, err := h.registry.Get(roomID)
	require.NoError(t, err)
	entries := r.ChatLog()
	require.NotEmpty(t, entries)
	assert.Equal(t, "  MASA ", entries[len(entries)-1].Text)

	correct := testutil.LastPayload[protocol.GuessCorrectPayload](a, protocol.MsgGuessCorrect)
	require.NotNil(t, correct)
	assert.Equal(t, "B", correct.By)
	assert.Equal(t, 15, correct.Award)

	end := testutil.LastPayload[protocol.RoundEndPayload](b, protocol.MsgRoundEnd)
	require.NotNil(t, end)
	assert.Equal(t, protocol.EndReasonAllGuessed, end.Reason)

	limiter.AssertNumberOfCalls(t, "AllowChat", 1)
}

func TestHandler_ChatRateLimited(t *testing.T) {
	t.Parallel()

	limiter := new(testutil.MockChatLimiter)
	limiter.On("AllowChat", "a").Return(false, "发言过快")

	h, _ := newTestHandler(t, HandlerDeps{ChatLimiter: limiter})
	a := testutil.NewSimpleClient("a", "A")
	roomID := createAndJoin(t, h, a)

	h.Handle(a, msgOf(protocol.MsgChatSend, protocol.ChatSendPayload{RoomID: roomID, Text: "hello"}))

	errMsg := testutil.LastPayload[protocol.ErrorPayload](a, protocol.MsgError)
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.ErrCodeRateLimit, errMsg.Code)
	assert.Equal(t, "发言过快", errMsg.Message)
	assert.Nil(t, a.Last(protocol.MsgChatNew))
	limiter.AssertExpectations(t)
}

func TestHandler_ChatErrors(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, HandlerDeps{})
	a := testutil.NewSimpleClient("a", "A")
	outsider := testutil.NewSimpleClient("x", "X")
	roomID := createAndJoin(t, h, a)

	h.Handle(outsider, msgOf(protocol.MsgChatSend, protocol.ChatSendPayload{RoomID: roomID, Text: "hi"}))
	errMsg := testutil.LastPayload[protocol.ErrorPayload](outsider, protocol.MsgError)
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.ErrCodeNotInRoom, errMsg.Code)

	h.Handle(a, msgOf(protocol.MsgChatSend, protocol.ChatSendPayload{RoomID: "nope", Text: "hi"}))
	errMsg = testutil.LastPayload[protocol.ErrorPayload](a, protocol.MsgError)
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.ErrCodeRoomNotFound, errMsg.Code)

	// 空白消息被忽略
	a.Reset()
	h.Handle(a, msgOf(protocol.MsgChatSend, protocol.ChatSendPayload{RoomID: roomID, Text: "   "}))
	assert.Empty(t, a.Messages())

	// 超长消息整条拒绝，不做截断
	h.Handle(a, msgOf(protocol.MsgChatSend, protocol.ChatSendPayload{RoomID: roomID, Text: strings.Repeat("ş", maxChatLength+1)}))
	errMsg = testutil.LastPayload[protocol.ErrorPayload](a, protocol.MsgError)
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errMsg.Code)
	assert.Nil(t, a.Last(protocol.MsgChatNew))
}

func TestHandler_LeaveAndList(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, HandlerDeps{})
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")
	roomID := createAndJoin(t, h, a, b)

	h.Handle(a, msgOf(protocol.MsgGetRoomList, nil))
	list := testutil.LastPayload[protocol.RoomListResultPayload](a, protocol.MsgRoomListResult)
	require.NotNil(t, list)
	require.Len(t, list.Rooms, 1)
	assert.Equal(t, 2, list.Rooms[0].PlayerCount)

	h.Handle(a, msgOf(protocol.MsgLeaveRoom, protocol.RoomPayload{RoomID: roomID}))

	state := testutil.LastPayload[protocol.RoomStatePayload](b, protocol.MsgRoomState)
	require.NotNil(t, state)
	assert.Equal(t, "b", state.HostID)
	assert.Len(t, state.Players, 1)

	h.Disconnect(b)
	h.Handle(a, msgOf(protocol.MsgGetRoomList, nil))
	list = testutil.LastPayload[protocol.RoomListResultPayload](a, protocol.MsgRoomListResult)
	require.NotNil(t, list)
	assert.Empty(t, list.Rooms)
}

func TestHandler_DisconnectRemovesLimiterState(t *testing.T) {
	t.Parallel()

	limiter := new(testutil.MockChatLimiter)
	limiter.On("RemoveClient", "a").Return()

	h, _ := newTestHandler(t, HandlerDeps{ChatLimiter: limiter})
	a := testutil.NewSimpleClient("a", "A")
	createAndJoin(t, h, a)

	h.Disconnect(a)
	limiter.AssertExpectations(t)
}

func TestHandler_DrawStroke(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, HandlerDeps{})
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")
	roomID := createAndJoin(t, h, a, b)
	h.Handle(a, msgOf(protocol.MsgStartGame, protocol.RoomPayload{RoomID: roomID}))

	h.Handle(b, msgOf(protocol.MsgDrawStroke, protocol.DrawStrokePayload{RoomID: roomID, Data: json.RawMessage(`9`)}))
	errMsg := testutil.LastPayload[protocol.ErrorPayload](b, protocol.MsgError)
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.ErrCodeNotDrawer, errMsg.Code)
	assert.Nil(t, a.Last(protocol.MsgDrawStroke))

	// 客户端发来的原始 JSON 对象，不经过结构体编码
	raw := `{"room_id":"` + roomID + `","data":{"x":1,"y":2,"tool":"pen","points":[[0,0],[4,5]]}}`
	h.Handle(a, &protocol.Message{Type: protocol.MsgDrawStroke, Payload: json.RawMessage(raw)})
	assert.Nil(t, a.Last(protocol.MsgError))

	forwarded := b.Last(protocol.MsgDrawStroke)
	require.NotNil(t, forwarded)
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(forwarded.Payload, &envelope))
	assert.Equal(t, `{"x":1,"y":2,"tool":"pen","points":[[0,0],[4,5]]}`, string(envelope.Data))
}

func TestHandler_CallSignal(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, HandlerDeps{})
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")
	roomID := createAndJoin(t, h, a, b)

	h.Handle(a, msgOf(protocol.MsgCallSignal, protocol.CallSignalPayload{RoomID: roomID, Target: "b", Data: json.RawMessage(`{"type":"offer","sdp":"v=0"}`)}))
	sig := testutil.LastPayload[protocol.CallSignalPayload](b, protocol.MsgCallSignal)
	require.NotNil(t, sig)
	assert.Equal(t, "a", sig.From)
	assert.Empty(t, sig.Target)
	assert.JSONEq(t, `{"type":"offer","sdp":"v=0"}`, string(sig.Data))

	h.Handle(a, msgOf(protocol.MsgCallSignal, protocol.CallSignalPayload{RoomID: roomID, Target: "zz"}))
	errMsg := testutil.LastPayload[protocol.ErrorPayload](a, protocol.MsgError)
	require.NotNil(t, errMsg)
	assert.Equal(t, protocol.ErrCodeNotSameRoom, errMsg.Code)
}
