// Package view provides UI rendering functions.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/draw-guess/internal/ui/common"
	"github.com/palemoky/draw-guess/internal/ui/model"
)

// Render 按界面阶段渲染，注入到 model.Model
func Render(m *model.Model) string {
	switch m.Phase() {
	case model.PhaseLobby:
		return LobbyView(m)
	case model.PhaseRoom:
		return RoomView(m)
	case model.PhaseGameOver:
		return GameOverView(m)
	default:
		return "Unknown phase"
	}
}

// renderFooter 临时提示 + 输入框
func renderFooter(m *model.Model) string {
	var sb strings.Builder
	if notice := m.Notice(); notice != "" {
		sb.WriteString(common.NoticeStyle.Render(notice))
	}
	sb.WriteString("\n")
	sb.WriteString(m.Input().View())
	return common.PromptStyle.Render(sb.String())
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
