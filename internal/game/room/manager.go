package room

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/palemoky/draw-guess/internal/apperrors"
	"github.com/palemoky/draw-guess/internal/game/timer"
	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/types"
)

const idleEvictNotice = "房间长时间无活动，你已被移出房间"

// CreateParams 创建房间参数
type CreateParams struct {
	RoomID     string // 为空时生成 6 位数字房间号
	Language   string
	Category   string
	MaxPlayers int // <= 0 时使用默认值
}

// Registry 房间注册表：房间号 → 房间。
// 锁顺序固定为先 Registry 后 Room，持有房间锁时不会再获取注册表锁
type Registry struct {
	opts  *Options
	timer *timer.Timer
	rooms map[string]*Room

	rngMu sync.Mutex
	mu    sync.RWMutex
}

// NewRegistry 创建房间注册表
func NewRegistry(opts Options) *Registry {
	opts.applyDefaults()
	return &Registry{
		opts:  &opts,
		timer: timer.New(opts.Clock),
		rooms: make(map[string]*Room),
	}
}

// Create 创建房间，创建者成为房主和第一名玩家
func (reg *Registry) Create(client types.ClientInterface, params CreateParams) (*Room, error) {
	if !reg.opts.Words.Has(params.Language, params.Category) {
		return nil, apperrors.ErrInvalidSelector
	}

	maxPlayers := params.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = reg.opts.MaxPlayers
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := strings.TrimSpace(params.RoomID)
	if id == "" {
		id = reg.generateRoomCode()
	} else if existing, ok := reg.rooms[id]; ok && !existing.isClosed() {
		return nil, apperrors.ErrDuplicateRoom
	}

	room := newRoom(id, params.Language, params.Category, maxPlayers, reg.opts, reg.timer)

	// 房间尚未对外可见，仍按规则持锁
	room.mu.Lock()
	room.addPlayerLocked(client)
	room.broadcastStateLocked()
	room.mu.Unlock()

	reg.rooms[id] = room
	logger.Infof("🏠 房间 %s 已创建 (%s/%s)，玩家 %s", id, params.Language, params.Category, client.GetName())

	return room, nil
}

// Get 获取房间
func (reg *Registry) Get(id string) (*Room, error) {
	reg.mu.RLock()
	room, ok := reg.rooms[id]
	reg.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

// Join 加入房间
func (reg *Registry) Join(client types.ClientInterface, id string) (*Room, error) {
	room, err := reg.Get(id)
	if err != nil {
		return nil, err
	}
	if err := room.Join(client); err != nil {
		return nil, err
	}
	return room, nil
}

// Leave 离开房间，房间变空时移除
func (reg *Registry) Leave(clientID, id string) {
	room, err := reg.Get(id)
	if err != nil {
		return
	}
	if room.Leave(clientID) {
		reg.removeIfClosed(room)
	}
}

// LeaveAll 让连接离开所在的全部房间（断线处理），返回离开的房间数
func (reg *Registry) LeaveAll(clientID string) int {
	reg.mu.RLock()
	var joined []*Room
	for _, room := range reg.rooms {
		if room.HasMember(clientID) {
			joined = append(joined, room)
		}
	}
	reg.mu.RUnlock()

	for _, room := range joined {
		if room.Leave(clientID) {
			reg.removeIfClosed(room)
		}
	}
	return len(joined)
}

// RoomsOf 返回连接所在的房间号
func (reg *Registry) RoomsOf(clientID string) []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	var ids []string
	for id, room := range reg.rooms {
		if room.HasMember(clientID) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// removeIfClosed 仅在注册表中仍是同一个已关闭房间时才删除
func (reg *Registry) removeIfClosed(room *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if current, ok := reg.rooms[room.ID]; ok && current == room && room.isClosed() {
		delete(reg.rooms, room.ID)
	}
}

// List 返回房间列表，按房间号排序
func (reg *Registry) List() []protocol.RoomListItem {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rooms := make([]protocol.RoomListItem, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room.Info())
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomID < rooms[j].RoomID })
	return rooms
}

// Count 房间数量
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// ActiveGames 进行中的游戏数量
func (reg *Registry) ActiveGames() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	count := 0
	for _, room := range reg.rooms {
		switch room.Phase() {
		case PhaseRoundActive, PhaseRoundCooldown:
			count++
		}
	}
	return count
}

// generateRoomCode 生成未被占用的房间号，调用方持有写锁
func (reg *Registry) generateRoomCode() string {
	reg.rngMu.Lock()
	defer reg.rngMu.Unlock()

	for {
		var b strings.Builder
		for range roomCodeLength {
			b.WriteByte(roomCodeChars[reg.opts.Rand.IntN(len(roomCodeChars))])
		}
		code := b.String()
		if existing, ok := reg.rooms[code]; !ok || existing.isClosed() {
			return code
		}
	}
}

// StartCleanup 启动空闲房间清理协程，ctx 结束时退出
func (reg *Registry) StartCleanup(ctx context.Context, interval time.Duration) {
	if reg.opts.RoomTimeout <= 0 {
		return
	}
	go reg.cleanupLoop(ctx, interval)
}

func (reg *Registry) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.cleanupIdle()
		}
	}
}

// cleanupIdle 将长时间无活动的大厅或已结束房间里的玩家移出。
// 房间只在最后一名玩家离开时解散，返回因此解散的房间数
func (reg *Registry) cleanupIdle() int {
	if reg.opts.RoomTimeout <= 0 {
		return 0
	}
	now := reg.timer.Now()

	reg.mu.RLock()
	var idle []*Room
	for _, room := range reg.rooms {
		if room.idleSince(now, reg.opts.RoomTimeout) {
			idle = append(idle, room)
		}
	}
	reg.mu.RUnlock()

	removed := 0
	for _, room := range idle {
		for _, id := range room.members() {
			if room.Evict(id, idleEvictNotice) {
				reg.removeIfClosed(room)
				removed++
			}
		}
		logger.Infof("🧹 房间 %s 长时间无活动，已移出全部玩家", room.ID)
	}
	return removed
}

// Shutdown 取消所有房间的计时器并清空注册表
func (reg *Registry) Shutdown() {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for id, room := range reg.rooms {
		room.close("服务器正在关闭")
		delete(reg.rooms, id)
	}
}
