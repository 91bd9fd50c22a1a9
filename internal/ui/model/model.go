package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/protocol/codec"
	"github.com/palemoky/draw-guess/internal/sound"
	"github.com/palemoky/draw-guess/internal/transport"
	"github.com/palemoky/draw-guess/internal/ui/common"
)

const (
	maxChatLines  = 100             // 本地保留的聊天行数
	noticeTimeout = 3 * time.Second // 临时提示显示时长
	chatHeight    = 12
	chatWidth     = 48
)

// Model 终端客户端主模型
type Model struct {
	client  *transport.Client // 测试中可以为 nil
	actions Actions
	sound   SoundPlayer

	phase GamePhase
	error string

	// Player info
	playerID     string
	playerName   string
	pendingLogin string // 等待确认的登录用户名

	latency int64

	// 房间信息
	roomID     string
	room       *protocol.RoomStatePayload
	rooms      []protocol.RoomListItem
	secretWord string // 仅画手可见
	lastReveal string
	results    []protocol.ResultEntry

	chat      []string
	notice    string
	noticeSeq int

	input    textinput.Model
	chatView viewport.Model
	width    int
	height   int
	now      func() time.Time

	// View renderer (injected to break circular import)
	viewRenderer func(*Model) string

	// Server message handler (injected to break circular import)
	serverMessageHandler func(*Model, *protocol.Message) tea.Cmd
}

// New 创建模型，actions/player 为 nil 时仅用于渲染和测试
func New(actions Actions, player SoundPlayer) *Model {
	ti := textinput.New()
	ti.Placeholder = "输入 /help 查看命令"
	ti.CharLimit = 200
	ti.Width = chatWidth
	ti.Focus()

	return &Model{
		actions:  actions,
		sound:    player,
		phase:    PhaseConnecting,
		input:    ti,
		chatView: viewport.New(chatWidth, chatHeight),
		now:      time.Now,
	}
}

// NewOnlineModel 创建连接到服务器的模型
func NewOnlineModel(serverURL string, format codec.Format) *Model {
	c := transport.NewClient(serverURL)
	c.Format = format
	sm := sound.NewSoundManager()
	m := New(c, sm)
	m.client = c
	return m
}

func (m *Model) Init() tea.Cmd {
	if sm, ok := m.sound.(*sound.SoundManager); ok {
		go func() {
			_ = sm.Init()
		}()
	}

	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
	)
}

func (m *Model) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return ConnectionErrorMsg{Err: transport.ErrClosed}
		}
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TickMsg{} })
}

// --- 访问器 ---

func (m *Model) Phase() GamePhase                 { return m.phase }
func (m *Model) SetPhase(phase GamePhase)         { m.phase = phase }
func (m *Model) PlayerID() string                 { return m.playerID }
func (m *Model) PlayerName() string               { return m.playerName }
func (m *Model) Error() string                    { return m.error }
func (m *Model) Latency() int64                   { return m.latency }
func (m *Model) SetLatency(l int64)               { m.latency = l }
func (m *Model) RoomID() string                   { return m.roomID }
func (m *Model) Room() *protocol.RoomStatePayload { return m.room }
func (m *Model) Rooms() []protocol.RoomListItem   { return m.rooms }
func (m *Model) SecretWord() string               { return m.secretWord }
func (m *Model) SetSecretWord(w string)           { m.secretWord = w }
func (m *Model) LastReveal() string               { return m.lastReveal }
func (m *Model) SetLastReveal(w string)           { m.lastReveal = w }
func (m *Model) Results() []protocol.ResultEntry  { return m.results }
func (m *Model) Chat() []string                   { return m.chat }
func (m *Model) Notice() string                   { return m.notice }
func (m *Model) Input() *textinput.Model          { return &m.input }
func (m *Model) ChatView() *viewport.Model        { return &m.chatView }
func (m *Model) Width() int                       { return m.width }
func (m *Model) Height() int                      { return m.height }
func (m *Model) Now() time.Time                   { return m.now() }
func (m *Model) SetClock(now func() time.Time)    { m.now = now }
func (m *Model) PendingLogin() string             { return m.pendingLogin }

func (m *Model) SetPlayerInfo(id, name string) {
	m.playerID = id
	m.playerName = name
}

// CompleteLogin 登录成功后使用用户名
func (m *Model) CompleteLogin() {
	if m.pendingLogin != "" {
		m.playerName = m.pendingLogin
		m.pendingLogin = ""
	}
}

// EnterRoom 进入房间界面
func (m *Model) EnterRoom(roomID string) {
	m.roomID = roomID
	m.phase = PhaseRoom
	m.results = nil
	m.secretWord = ""
	m.lastReveal = ""
	m.chat = nil
	m.refreshChat()
}

// EnterLobby 回到大厅并清理房间状态
func (m *Model) EnterLobby() {
	m.phase = PhaseLobby
	m.error = ""
	m.roomID = ""
	m.room = nil
	m.secretWord = ""
	m.lastReveal = ""
	m.results = nil
	m.chat = nil
	m.refreshChat()
}

// SetRoomState 更新房间状态，只接受当前房间的状态
func (m *Model) SetRoomState(state *protocol.RoomStatePayload) {
	if m.roomID != "" && state.RoomID != m.roomID {
		return
	}
	m.room = state
}

func (m *Model) SetRooms(rooms []protocol.RoomListItem) { m.rooms = rooms }

// SetResults 游戏结束排名
func (m *Model) SetResults(results []protocol.ResultEntry) {
	m.results = results
	m.phase = PhaseGameOver
}

// IsDrawer 当前玩家是否为画手
func (m *Model) IsDrawer() bool {
	return m.room != nil && m.playerID != "" && m.room.DrawerID == m.playerID
}

// IsHost 当前玩家是否为房主
func (m *Model) IsHost() bool {
	return m.room != nil && m.playerID != "" && m.room.HostID == m.playerID
}

// Remaining 本回合剩余时间，无回合时返回 false
func (m *Model) Remaining() (time.Duration, bool) {
	if m.room == nil || m.room.RoundEndsAt == nil {
		return 0, false
	}
	return time.UnixMilli(*m.room.RoundEndsAt).Sub(m.now()), true
}

// PlayerNameOf 按 ID 查找玩家名
func (m *Model) PlayerNameOf(id string) string {
	if m.room != nil {
		for _, p := range m.room.Players {
			if p.ID == id {
				return p.Name
			}
		}
	}
	return id
}

// AddChat 追加聊天行
func (m *Model) AddChat(line string) {
	m.chat = append(m.chat, line)
	if len(m.chat) > maxChatLines {
		m.chat = m.chat[len(m.chat)-maxChatLines:]
	}
	m.refreshChat()
}

func (m *Model) refreshChat() {
	m.chatView.SetContent(strings.Join(m.chat, "\n"))
	m.chatView.GotoBottom()
}

// SetNotice 显示临时提示，3 秒后清除
func (m *Model) SetNotice(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg { return ClearNoticeMsg{Seq: seq} })
}

// PlaySound 播放提示音
func (m *Model) PlaySound(cue sound.Cue) {
	if m.sound != nil {
		m.sound.Play(cue)
	}
}

// Update handles tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ConnectedMsg:
		m.EnterLobby()
		m.playerID = m.client.PlayerID
		m.playerName = m.client.PlayerName
		m.client.StartHeartbeat()
		_ = m.actions.GetRoomList()
		cmds = append(cmds, m.listenForMessages(), tick())

	case ConnectionErrorMsg:
		m.error = fmt.Sprintf("无法连接到服务器: %v\n\n按 ESC 退出", msg.Err)
		m.phase = PhaseConnecting

	case ClearNoticeMsg:
		if msg.Seq == m.noticeSeq {
			m.notice = ""
		}

	case TickMsg:
		// 倒计时靠重新渲染刷新
		cmds = append(cmds, tick())

	case ServerMessage:
		if m.serverMessageHandler != nil {
			if cmd := m.serverMessageHandler(m, msg.Msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		if m.client != nil && m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.shutdown()
			return m, tea.Quit
		case tea.KeyEsc:
			if m.phase == PhaseRoom || m.phase == PhaseGameOver {
				cmds = append(cmds, m.Submit("/leave"))
				return m, tea.Batch(cmds...)
			}
			m.shutdown()
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			cmds = append(cmds, m.Submit(line))
			return m, tea.Batch(cmds...)
		case tea.KeyPgUp, tea.KeyPgDown:
			m.chatView, cmd = m.chatView.Update(msg)
			return m, cmd
		}
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) shutdown() {
	if m.client != nil {
		m.client.Close()
	}
	if sm, ok := m.sound.(*sound.SoundManager); ok {
		sm.Close()
	}
}

// View renders the model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch {
	case m.phase == PhaseConnecting:
		content = m.connectingView()
	case m.viewRenderer != nil:
		content = m.viewRenderer(m)
	default:
		content = "View renderer not initialized"
	}
	return common.DocStyle.Render(content)
}

// SetViewRenderer sets the view rendering function.
func (m *Model) SetViewRenderer(fn func(*Model) string) {
	m.viewRenderer = fn
}

// SetServerMessageHandler sets the server message handler function.
func (m *Model) SetServerMessageHandler(fn func(*Model, *protocol.Message) tea.Cmd) {
	m.serverMessageHandler = fn
}

func (m *Model) connectingView() string {
	text := "正在连接服务器..."
	if m.error != "" {
		text = common.ErrorStyle.Render(m.error)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}
