// Package ui provides styling and output helpers for the strex CLI and shell.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// ErrorStyle is the style for error messages
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	// SuccessStyle is the style for success messages
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))

	// InfoStyle is the style for informational messages
	InfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0099FF"))

	// WarningStyle is the style for warning messages
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))

	// DimStyle is the style for dimmed text
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// BoldStyle is the style for bold text
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// DirStyle is the style for directory names in listings
	DirStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5F87FF"))

	// PathStyle is the style for the current path banner
	PathStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))

	// KeyStyle is the style for key hints in the interactive browser
	KeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00")).Bold(true)

	// FolderIcon marks directories
	FolderIcon = "📁"

	// FileIcon marks files
	FileIcon = "📄"

	// ParentIcon marks the parent pseudo-entry
	ParentIcon = "⬆️"

	// CursorIcon marks the selected row in the interactive browser
	CursorIcon = "›"

	// SearchIcon marks search output
	SearchIcon = "🔍"

	// SuccessIcon is the icon for success messages
	SuccessIcon = "✅"

	// ErrorIcon is the icon for error messages
	ErrorIcon = "❌"

	// InfoIcon is the icon for informational messages
	InfoIcon = "ⓘ"

	// WarningIcon is the icon for warning messages
	WarningIcon = "⚠️"
)
