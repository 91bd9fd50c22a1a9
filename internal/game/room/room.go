package room

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/draw-guess/internal/game/timer"
	"github.com/palemoky/draw-guess/internal/game/words"
	"github.com/palemoky/draw-guess/internal/types"
)

const (
	roomCodeLength = 6            // 房间号长度
	roomCodeChars  = "0123456789" // 房间号字符集

	baseAward   = 10  // 猜中基础分
	timeBonus   = 5   // 时间加成上限
	drawerBonus = 3   // 每有一人猜中，画手得分
	maxChatLog  = 200 // 聊天记录上限
)

// Options 房间和注册表共用的依赖与参数
type Options struct {
	Words *words.Bank
	Clock timer.Clock // 为 nil 时使用系统时钟
	Rand  *rand.Rand  // 房间号随机源，为 nil 时随机种子

	RoundDuration time.Duration
	Cooldown      time.Duration
	MaxRounds     int
	MaxPlayers    int           // 创建时未指定人数的默认上限
	RoomTimeout   time.Duration // 大厅空闲超时，0 表示不清理
}

func (o *Options) applyDefaults() {
	if o.Words == nil {
		o.Words = words.NewDefault(nil)
	}
	if o.Clock == nil {
		o.Clock = timer.RealClock{}
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.RoundDuration <= 0 {
		o.RoundDuration = 80 * time.Second
	}
	if o.Cooldown <= 0 {
		o.Cooldown = 2500 * time.Millisecond
	}
	if o.MaxRounds <= 0 {
		o.MaxRounds = 3
	}
	if o.MaxPlayers <= 0 {
		o.MaxPlayers = 8
	}
}

// Player 房间中的玩家
type Player struct {
	Client  types.ClientInterface
	Name    string
	Score   int
	Guessed bool // 本回合是否已猜中
}

// ChatEntry 聊天记录
type ChatEntry struct {
	SenderName string
	Text       string
	Timestamp  time.Time
}

// activeRound 进行中的回合；三个字段总是一起设置、一起清空
type activeRound struct {
	word     string
	drawerID string
	deadline time.Time
}

// Room 一个游戏房间的状态机，所有状态受 mu 保护
type Room struct {
	ID         string
	Language   string
	Category   string
	MaxPlayers int
	MaxRounds  int
	CreatedAt  time.Time

	opts  *Options
	timer *timer.Timer

	hostID     string
	players    map[string]*Player
	order      []string // 加入顺序
	phase      Phase
	roundIndex int
	drawOrder  []string
	round      *activeRound // nil 表示没有进行中的回合
	prevWord   string
	chatLog    []ChatEntry
	lastActive time.Time

	pending *timer.Handle // 回合计时或回合间隔，至多一个
	token   uint64        // 每次布置或取消计时器递增，用于识别过期回调
	closed  bool          // 已从注册表移除，不再接受任何操作

	mu sync.Mutex
}

func newRoom(id, language, category string, maxPlayers int, opts *Options, tm *timer.Timer) *Room {
	now := tm.Now()
	return &Room{
		ID:         id,
		Language:   language,
		Category:   category,
		MaxPlayers: maxPlayers,
		MaxRounds:  opts.MaxRounds,
		CreatedAt:  now,
		opts:       opts,
		timer:      tm,
		players:    make(map[string]*Player),
		phase:      PhaseLobby,
		lastActive: now,
	}
}

// presentLocked 按加入顺序返回在场玩家 ID
func (r *Room) presentLocked() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// members 按加入顺序返回玩家 ID
func (r *Room) members() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presentLocked()
}

func (r *Room) removeFromOrderLocked(id string) {
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// cancelPendingLocked 取消当前计时器并使所有已排队的回调失效
func (r *Room) cancelPendingLocked() {
	r.pending.Cancel()
	r.pending = nil
	r.token++
}

// armLocked 布置新的计时器，fn 在房间锁内执行，过期回调自动忽略
func (r *Room) armLocked(d time.Duration, fn func()) {
	r.cancelPendingLocked()
	token := r.token
	r.pending = r.timer.Arm(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.token != token {
			return
		}
		r.pending = nil
		fn()
	})
}

func (r *Room) touchLocked() {
	r.lastActive = r.timer.Now()
}

// --- 只读访问 ---

// Phase 当前阶段
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Round 当前回合序号（从 1 开始，大厅为 0）
func (r *Room) Round() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roundIndex
}

// HostID 房主连接 ID
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// DrawerID 当前画手，没有进行中的回合时为空
func (r *Room) DrawerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round == nil {
		return ""
	}
	return r.round.drawerID
}

// Word 当前答案，没有进行中的回合时为空
func (r *Room) Word() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round == nil {
		return ""
	}
	return r.round.word
}

// Deadline 当前回合截止时间，没有进行中的回合时返回 false
func (r *Room) Deadline() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round == nil {
		return time.Time{}, false
	}
	return r.round.deadline, true
}

// HasMember 判断连接是否在房间中
func (r *Room) HasMember(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.players[id]
	return ok
}

// PlayerCount 当前人数
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Score 玩家分数，不在房间时返回 -1
func (r *Room) Score(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[id]; ok {
		return p.Score
	}
	return -1
}

// ChatLog 聊天记录副本
func (r *Room) ChatLog() []ChatEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ChatEntry, len(r.chatLog))
	copy(out, r.chatLog)
	return out
}

func (r *Room) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// idleSince 大厅或已结束的房间超过 timeout 没有活动
func (r *Room) idleSince(now time.Time, timeout time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseLobby && r.phase != PhaseGameOver {
		return false
	}
	return now.Sub(r.lastActive) >= timeout
}
