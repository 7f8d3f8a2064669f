package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable creates a table with consistent styling writing to the current output
func NewTable(headers ...interface{}) table.Table {
	tbl := table.New(headers...)

	// Header formatters break the width calculation; only the first column is styled.
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	})

	tbl.WithPadding(2)

	// lipgloss.Width ignores ANSI escapes when measuring cells
	tbl.WithWidthFunc(lipgloss.Width)

	tbl.WithWriter(Stdout())

	return tbl
}

// PrintSectionHeader prints a consistent section header
func PrintSectionHeader(icon string, title string, count int) {
	Output("\n%s %s (%d)", icon, title, count)
}
