package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/draw-guess/internal/ui/common"
	"github.com/palemoky/draw-guess/internal/ui/model"
)

var medals = []string{"🥇", "🥈", "🥉"}

// GameOverView renders the game over view.
func GameOverView(m *model.Model) string {
	width := m.Width()

	var sb strings.Builder
	sb.WriteString("🏁 游戏结束!\n\n")
	for i, r := range m.Results() {
		rank := fmt.Sprintf("%2d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&sb, "%s %-14s %4d 分\n", rank, common.TruncateName(r.Name, 12), r.Score)
	}
	sb.WriteString("\n按 ESC 或输入 /leave 返回大厅")

	board := common.BoxStyle.Render(sb.String())
	return lipgloss.JoinVertical(lipgloss.Left,
		center(width, board),
		center(width, renderFooter(m)),
	)
}
