package room

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/draw-guess/internal/game/timer"
	"github.com/palemoky/draw-guess/internal/game/words"
	"github.com/palemoky/draw-guess/internal/testutil"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testBank() *words.Bank {
	return words.New(words.Lists{
		"tr": {"esyalar": {"masa", "sandalye"}, "tek": {"sandalye"}},
		"en": {"objects": {"ice cream", "lamp"}},
	}, rand.New(rand.NewPCG(7, 11)))
}

// newTestRegistry 使用假时钟和固定随机源的注册表
func newTestRegistry(t *testing.T, mutate ...func(*Options)) (*Registry, *timer.FakeClock) {
	t.Helper()

	clock := timer.NewFakeClock(epoch)
	opts := Options{
		Words:         testBank(),
		Clock:         clock,
		Rand:          rand.New(rand.NewPCG(1, 2)),
		RoundDuration: 80 * time.Second,
		Cooldown:      2500 * time.Millisecond,
		MaxRounds:     3,
		MaxPlayers:    8,
		RoomTimeout:   10 * time.Minute,
	}
	for _, m := range mutate {
		m(&opts)
	}
	return NewRegistry(opts), clock
}

// setupRoom 创建房间，第一个客户端为房主，其余依次加入
func setupRoom(t *testing.T, reg *Registry, params CreateParams, clients ...*testutil.SimpleClient) *Room {
	t.Helper()
	require.NotEmpty(t, clients)

	room, err := reg.Create(clients[0], params)
	require.NoError(t, err)
	for _, c := range clients[1:] {
		_, err := reg.Join(c, room.ID)
		require.NoError(t, err)
	}
	return room
}

func trObjects(maxPlayers int) CreateParams {
	return CreateParams{Language: "tr", Category: "esyalar", MaxPlayers: maxPlayers}
}

// assertRoundConsistent 回合字段要么全部存在要么全部为空
func assertRoundConsistent(t *testing.T, room *Room) {
	t.Helper()

	st := room.State()
	if st.DrawerID == "" {
		assert.Nil(t, st.MaskedWord)
		assert.Nil(t, st.RoundEndsAt)
		assert.Empty(t, room.Word())
		return
	}
	assert.NotNil(t, st.MaskedWord)
	assert.NotNil(t, st.RoundEndsAt)
	assert.NotEmpty(t, room.Word())
	assert.True(t, room.HasMember(st.DrawerID))
}
