// Package common provides shared styles and utilities for the UI.
package common

import "github.com/charmbracelet/lipgloss"

// Icon constants
const (
	HostIcon    = "👑"
	DrawerIcon  = "✏️"
	GuessedIcon = "✅"
)

// Lipgloss Styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	WordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	MaskStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
)
