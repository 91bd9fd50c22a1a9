package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/draw-guess/internal/protocol"
	"github.com/palemoky/draw-guess/internal/ui/common"
	"github.com/palemoky/draw-guess/internal/ui/model"
)

// RoomView 房间界面：词板、玩家列表、聊天
func RoomView(m *model.Model) string {
	width := m.Width()
	state := m.Room()

	var sb strings.Builder
	sb.WriteString(center(width, common.TitleStyle(fmt.Sprintf("🏠 房间: %s", m.RoomID()))))
	sb.WriteString("\n\n")

	if state == nil {
		sb.WriteString(center(width, common.MutedStyle.Render("正在同步房间状态...")))
		sb.WriteString("\n")
		sb.WriteString(center(width, renderFooter(m)))
		return sb.String()
	}

	sb.WriteString(center(width, renderWordBoard(m, state)))
	sb.WriteString("\n")

	players := renderPlayers(state, m.PlayerID())
	chat := common.BoxStyle.Render(m.ChatView().View())
	sb.WriteString(center(width, lipgloss.JoinHorizontal(lipgloss.Top, players, " ", chat)))
	sb.WriteString("\n")

	sb.WriteString(center(width, renderFooter(m)))
	return sb.String()
}

// renderWordBoard 画手看到明文，其他人看到遮罩
func renderWordBoard(m *model.Model, state *protocol.RoomStatePayload) string {
	var lines []string

	switch {
	case state.Round == 0:
		hint := fmt.Sprintf("%s · %s · 等待房主开始", state.Language, state.Category)
		lines = append(lines, hint)
		if m.IsHost() {
			lines = append(lines, common.MutedStyle.Render("输入 /start 开始游戏"))
		}
	default:
		lines = append(lines, fmt.Sprintf("第 %d/%d 回合 · 画手: %s %s",
			state.Round, state.MaxRounds, common.DrawerIcon, m.PlayerNameOf(state.DrawerID)))

		switch {
		case m.SecretWord() != "":
			lines = append(lines, "你的词: "+common.WordStyle.Render(m.SecretWord()))
		case state.MaskedWord != nil:
			lines = append(lines, common.MaskStyle.Render(common.SpaceOut(*state.MaskedWord)))
		case m.LastReveal() != "":
			lines = append(lines, "答案: "+common.WordStyle.Render(m.LastReveal()))
		}

		if remaining, ok := m.Remaining(); ok {
			lines = append(lines, "⏳ "+common.FormatCountdown(remaining))
		}
	}

	return common.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func renderPlayers(state *protocol.RoomStatePayload, myID string) string {
	lines := []string{"玩家"}
	for _, p := range state.Players {
		var icons []string
		if p.ID == state.HostID {
			icons = append(icons, common.HostIcon)
		}
		if p.ID == state.DrawerID {
			icons = append(icons, common.DrawerIcon)
		}
		if p.Guessed {
			icons = append(icons, common.GuessedIcon)
		}

		name := common.TruncateName(p.Name, 12)
		if p.ID == myID {
			name += " (你)"
		}
		lines = append(lines, fmt.Sprintf("%-18s %4d %s", name, p.Score, strings.Join(icons, "")))
	}
	return common.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
