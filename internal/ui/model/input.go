package model

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// HelpText 命令说明
const HelpText = `/create <语言> <分类> [人数] [房间号]  创建房间
/join <房间号>                      加入房间
/list                               刷新房间列表
/start                              开始游戏（房主）
/leave                              离开房间
/register <用户名> <密码>           注册
/login <用户名> <密码>              登录
其他输入在房间内作为聊天/猜词发送`

var (
	errNotConnected = errors.New("尚未连接服务器")
	errNotInRoom    = errors.New("请先加入房间")
	errUsage        = errors.New("参数错误，输入 /help 查看用法")
	errUnknownCmd   = errors.New("未知命令，输入 /help 查看用法")
)

// Command 解析后的输入命令
type Command struct {
	Name string
	Args []string
}

// ParseCommand 解析以 / 开头的命令，普通文本返回 false
func ParseCommand(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Command{}, false
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}, true
}

// Submit 处理一行输入，出错时以临时提示显示
func (m *Model) Submit(line string) tea.Cmd {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if err := m.execute(line); err != nil {
		return m.SetNotice("⚠️ " + err.Error())
	}
	return nil
}

func (m *Model) execute(line string) error {
	cmd, isCmd := ParseCommand(line)
	if isCmd && cmd.Name == "help" {
		for _, l := range strings.Split(HelpText, "\n") {
			m.AddChat(l)
		}
		return nil
	}
	if m.actions == nil {
		return errNotConnected
	}

	if !isCmd {
		// 大厅里直接输入房间号即加入
		if m.roomID == "" {
			if _, err := strconv.Atoi(line); err == nil {
				return m.actions.JoinRoom(line)
			}
			return errNotInRoom
		}
		return m.actions.SendChat(m.roomID, line)
	}

	switch cmd.Name {
	case "create":
		return m.createRoom(cmd.Args)
	case "join":
		if len(cmd.Args) != 1 {
			return errUsage
		}
		return m.actions.JoinRoom(cmd.Args[0])
	case "list":
		return m.actions.GetRoomList()
	case "start":
		if m.roomID == "" {
			return errNotInRoom
		}
		return m.actions.StartGame(m.roomID)
	case "leave":
		if m.roomID == "" {
			return errNotInRoom
		}
		err := m.actions.LeaveRoom(m.roomID)
		m.EnterLobby()
		_ = m.actions.GetRoomList()
		return err
	case "register":
		if len(cmd.Args) != 2 {
			return errUsage
		}
		return m.actions.Register(cmd.Args[0], cmd.Args[1])
	case "login":
		if len(cmd.Args) != 2 {
			return errUsage
		}
		m.pendingLogin = cmd.Args[0]
		return m.actions.Login(cmd.Args[0], cmd.Args[1])
	default:
		return errUnknownCmd
	}
}

func (m *Model) createRoom(args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return errUsage
	}
	maxPlayers := 0
	if len(args) >= 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 2 {
			return errUsage
		}
		maxPlayers = n
	}
	roomID := ""
	if len(args) == 4 {
		roomID = args[3]
	}
	return m.actions.CreateRoom(roomID, args[0], args[1], maxPlayers)
}
