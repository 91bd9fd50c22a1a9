package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/ui/common"
	"github.com/palemoky/draw-guess/internal/ui/model"
)

// LobbyView renders the lobby view.
func LobbyView(m *model.Model) string {
	width := m.Width()
	var sb strings.Builder

	sb.WriteString(center(width, common.TitleStyle("🎨 你画我猜")))
	sb.WriteString("\n\n")

	if m.PlayerName() != "" {
		welcome := fmt.Sprintf("欢迎, %s!", m.PlayerName())
		if latency := m.Latency(); latency > 0 {
			welcome += common.MutedStyle.Render(fmt.Sprintf("  (%dms)", latency))
		}
		sb.WriteString(center(width, welcome))
		sb.WriteString("\n\n")
	}

	sb.WriteString(center(width, renderRoomList(m.Rooms())))
	sb.WriteString("\n")
	sb.WriteString(center(width, common.MutedStyle.Render("输入房间号加入，/create <语言> <分类> 创建，/help 查看全部命令")))
	sb.WriteString("\n")

	if lines := m.Chat(); len(lines) > 0 {
		sb.WriteString(center(width, common.BoxStyle.Render(m.ChatView().View())))
		sb.WriteString("\n")
	}

	sb.WriteString(center(width, renderFooter(m)))
	return sb.String()
}

func renderRoomList(rooms []protocol.RoomListItem) string {
	if len(rooms) == 0 {
		return common.BoxStyle.Render("暂无房间，快来创建一个吧")
	}

	lines := []string{fmt.Sprintf("%-8s %-6s %-12s %-6s %s", "房间号", "语言", "分类", "人数", "状态")}
	for _, r := range rooms {
		lines = append(lines, fmt.Sprintf("%-8s %-6s %-12s %-6s %s",
			r.RoomID,
			r.Language,
			common.TruncateName(r.Category, 12),
			fmt.Sprintf("%d/%d", r.PlayerCount, r.MaxPlayers),
			phaseLabel(r.Phase),
		))
	}
	return common.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func phaseLabel(phase string) string {
	switch phase {
	case "lobby":
		return "等待中"
	case "round_active", "round_cooldown":
		return "游戏中"
	case "game_over":
		return "已结束"
	default:
		return phase
	}
}
