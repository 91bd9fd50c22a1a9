package room

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/draw-guess/internal/apperrors"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/testutil"
)

func TestRegistry_Create(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	a := testutil.NewSimpleClient("a", "A")

	room, err := reg.Create(a, trObjects(4))
	require.NoError(t, err)

	assert.Len(t, room.ID, roomCodeLength)
	assert.Regexp(t, `^[0-9]{6}$`, room.ID)
	assert.Equal(t, "a", room.HostID())
	assert.Equal(t, PhaseLobby, room.Phase())
	assert.Equal(t, 4, room.MaxPlayers)
	assert.Equal(t, 1, room.PlayerCount())

	state := testutil.LastPayload[protocol.RoomStatePayload](a, protocol.MsgRoomState)
	require.NotNil(t, state)
	assert.Equal(t, room.ID, state.RoomID)
	assert.Nil(t, state.MaskedWord)
	assert.Nil(t, state.RoundEndsAt)

	got, err := reg.Get(room.ID)
	require.NoError(t, err)
	assert.Same(t, room, got)
}

func TestRegistry_CreateDefaultsMaxPlayers(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t, func(o *Options) { o.MaxPlayers = 5 })
	room, err := reg.Create(testutil.NewSimpleClient("a", "A"), CreateParams{Language: "en", Category: "objects"})
	require.NoError(t, err)
	assert.Equal(t, 5, room.MaxPlayers)
}

func TestRegistry_CreateErrors(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")

	_, err := reg.Create(a, CreateParams{RoomID: "party", Language: "tr", Category: "esyalar"})
	require.NoError(t, err)

	_, err = reg.Create(b, CreateParams{RoomID: "party", Language: "tr", Category: "esyalar"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRoom)

	_, err = reg.Create(b, CreateParams{RoomID: "other", Language: "xx", Category: "esyalar"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSelector)

	_, err = reg.Create(b, CreateParams{Language: "tr", Category: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSelector)

	assert.Equal(t, 1, reg.Count())
	room, err := reg.Get("party")
	require.NoError(t, err)
	assert.Equal(t, 1, room.PlayerCount(), "failed create must not touch the existing room")
}

func TestRegistry_JoinErrors(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")
	c := testutil.NewSimpleClient("c", "C")

	_, err := reg.Join(a, "nope")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)

	room := setupRoom(t, reg, trObjects(2), a, b)
	_, err = reg.Join(c, room.ID)
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)
	assert.Equal(t, 2, room.PlayerCount())

	// 重复加入不报错也不重复计数
	_, err = reg.Join(b, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, room.PlayerCount())
}

func TestRegistry_JoinBroadcastsRoster(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")
	setupRoom(t, reg, trObjects(4), a, b)

	state := testutil.LastPayload[protocol.RoomStatePayload](a, protocol.MsgRoomState)
	require.NotNil(t, state)
	require.Len(t, state.Players, 2)
	assert.Equal(t, "a", state.Players[0].ID)
	assert.Equal(t, "b", state.Players[1].ID)

	notice := testutil.LastPayload[protocol.SystemPayload](a, protocol.MsgSystem)
	require.NotNil(t, notice)
	assert.Contains(t, notice.Text, "B")
}

func TestRegistry_RoomDestroyedWhenEmpty(t *testing.T) {
	t.Parallel()

	reg, clock := newTestRegistry(t)
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")
	room := setupRoom(t, reg, trObjects(4), a, b)
	require.NoError(t, room.StartGame("a"))

	reg.Leave("b", room.ID)
	assert.Equal(t, 1, reg.Count())

	reg.Leave("a", room.ID)
	assert.Equal(t, 0, reg.Count())
	assert.Equal(t, 0, clock.Pending(), "timers of a destroyed room are cancelled")

	_, err := reg.Get(room.ID)
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)

	// 仍持有旧引用的调用方看到的是不存在的房间
	assert.ErrorIs(t, room.Join(testutil.NewSimpleClient("c", "C")), apperrors.ErrRoomNotFound)
	assert.ErrorIs(t, room.StartGame("a"), apperrors.ErrRoomNotFound)

	// 房间号可以重新使用
	_, err = reg.Create(a, CreateParams{RoomID: room.ID, Language: "tr", Category: "esyalar"})
	require.NoError(t, err)
}

func TestRegistry_LeaveUnknownIsNoop(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	a := testutil.NewSimpleClient("a", "A")
	room := setupRoom(t, reg, trObjects(4), a)

	reg.Leave("ghost", room.ID)
	reg.Leave("a", "missing")
	assert.Equal(t, 1, room.PlayerCount())
	assert.Equal(t, 0, reg.LeaveAll("ghost"))
}

func TestRegistry_LeaveAllMultipleRooms(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")

	r1 := setupRoom(t, reg, trObjects(4), a, b)
	r2 := setupRoom(t, reg, CreateParams{Language: "en", Category: "objects"}, b)

	assert.ElementsMatch(t, []string{r1.ID, r2.ID}, reg.RoomsOf("b"))

	assert.Equal(t, 2, reg.LeaveAll("b"))
	assert.Equal(t, 1, reg.Count(), "r2 became empty and was removed")
	assert.False(t, r1.HasMember("b"))
	assert.Empty(t, reg.RoomsOf("b"))
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	setupRoom(t, reg, CreateParams{RoomID: "b-room", Language: "tr", Category: "esyalar", MaxPlayers: 3},
		testutil.NewSimpleClient("a", "A"), testutil.NewSimpleClient("b", "B"))
	setupRoom(t, reg, CreateParams{RoomID: "a-room", Language: "en", Category: "objects"},
		testutil.NewSimpleClient("c", "C"))

	rooms := reg.List()
	require.Len(t, rooms, 2)
	assert.Equal(t, "a-room", rooms[0].RoomID)
	assert.Equal(t, protocol.RoomListItem{
		RoomID:      "b-room",
		Language:    "tr",
		Category:    "esyalar",
		PlayerCount: 2,
		MaxPlayers:  3,
		Phase:       "lobby",
	}, rooms[1])
}

func TestRegistry_ActiveGames(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	room := setupRoom(t, reg, trObjects(4), testutil.NewSimpleClient("a", "A"), testutil.NewSimpleClient("b", "B"))
	setupRoom(t, reg, trObjects(4), testutil.NewSimpleClient("c", "C"))

	assert.Equal(t, 0, reg.ActiveGames())
	require.NoError(t, room.StartGame("a"))
	assert.Equal(t, 1, reg.ActiveGames())
}

func TestRegistry_CleanupIdleEvictsPlayers(t *testing.T) {
	t.Parallel()

	reg, clock := newTestRegistry(t, func(o *Options) { o.RoundDuration = time.Hour })
	a := testutil.NewSimpleClient("a", "A")
	b := testutil.NewSimpleClient("b", "B")
	idleRoom := setupRoom(t, reg, trObjects(4), a, b)

	busy := setupRoom(t, reg, trObjects(4), testutil.NewSimpleClient("c", "C"), testutil.NewSimpleClient("d", "D"))
	require.NoError(t, busy.StartGame("c"))

	clock.Advance(9 * time.Minute)
	assert.Equal(t, 0, reg.cleanupIdle())
	assert.Equal(t, 2, idleRoom.PlayerCount())

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, reg.cleanupIdle())

	// 房间在最后一人离开时解散，没有玩家被留在已删除的房间里
	_, err := reg.Get(idleRoom.ID)
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
	assert.Zero(t, idleRoom.PlayerCount())
	assert.Empty(t, reg.RoomsOf("a"))
	assert.Empty(t, reg.RoomsOf("b"))

	for _, c := range []*testutil.SimpleClient{a, b} {
		notice := testutil.LastPayload[protocol.SystemPayload](c, protocol.MsgSystem)
		require.NotNil(t, notice)
		assert.Equal(t, idleEvictNotice, notice.Text)
	}

	_, err = reg.Get(busy.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, busy.PlayerCount())

	// 被移出的玩家可以重新创建房间
	_, err = reg.Create(a, trObjects(4))
	assert.NoError(t, err)
}

func TestRegistry_EvictKeepsRoomWhileMembersRemain(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	room := setupRoom(t, reg, trObjects(4), testutil.NewSimpleClient("a", "A"), testutil.NewSimpleClient("b", "B"))

	assert.False(t, room.Evict("a", idleEvictNotice))
	assert.Equal(t, "b", room.HostID())

	got, err := reg.Get(room.ID)
	require.NoError(t, err)
	assert.Same(t, room, got)
}

func TestRegistry_CleanupDisabled(t *testing.T) {
	t.Parallel()

	reg, clock := newTestRegistry(t, func(o *Options) { o.RoomTimeout = 0 })
	setupRoom(t, reg, trObjects(4), testutil.NewSimpleClient("a", "A"))

	clock.Advance(time.Hour)
	assert.Equal(t, 0, reg.cleanupIdle())
	assert.Equal(t, 1, reg.Count())
}

func TestRegistry_ChatKeepsLobbyAlive(t *testing.T) {
	t.Parallel()

	reg, clock := newTestRegistry(t)
	room := setupRoom(t, reg, trObjects(4), testutil.NewSimpleClient("a", "A"))

	clock.Advance(9 * time.Minute)
	require.NoError(t, room.SubmitChat("a", "anyone?"))
	clock.Advance(9 * time.Minute)

	assert.Equal(t, 0, reg.cleanupIdle())
}

func TestRegistry_Shutdown(t *testing.T) {
	t.Parallel()

	reg, clock := newTestRegistry(t)
	room := setupRoom(t, reg, trObjects(4), testutil.NewSimpleClient("a", "A"), testutil.NewSimpleClient("b", "B"))
	require.NoError(t, room.StartGame("a"))

	reg.Shutdown()
	assert.Equal(t, 0, reg.Count())
	assert.Equal(t, 0, clock.Pending())
}

func TestRegistry_ConcurrentRooms(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			host := testutil.NewSimpleClient(fmt.Sprintf("h%d", i), "host")
			guest := testutil.NewSimpleClient(fmt.Sprintf("g%d", i), "guest")

			room, err := reg.Create(host, trObjects(4))
			if !assert.NoError(t, err) {
				return
			}
			_, err = reg.Join(guest, room.ID)
			assert.NoError(t, err)
			assert.NoError(t, room.StartGame(host.ID))
			_ = room.SubmitChat(guest.ID, room.Word())

			reg.LeaveAll(guest.ID)
			reg.LeaveAll(host.ID)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Count())
}
