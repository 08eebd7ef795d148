package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Cyan for service names, amber for advisories, slate for secondary
	// detail.
	colorService  = lipgloss.AdaptiveColor{Light: "#0e7490", Dark: "#22d3ee"}
	colorAdvisory = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}
	colorBright   = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim      = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorRedacted = lipgloss.AdaptiveColor{Light: "#be123c", Dark: "#fb7185"}
)

var (
	styleServiceName = lipgloss.NewStyle().Foreground(colorService).Bold(true)
	styleLabel       = lipgloss.NewStyle().Foreground(colorDim).Bold(true)
	styleValue       = lipgloss.NewStyle().Foreground(colorBright)
	styleMeta        = lipgloss.NewStyle().Foreground(colorDim)
	styleRedacted    = lipgloss.NewStyle().Foreground(colorRedacted)
	styleAdvisory    = lipgloss.NewStyle().Foreground(colorAdvisory)
	styleSeparator   = lipgloss.NewStyle().Foreground(colorDim)
)
