package bubbletea

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// tabStop is the column multiple a tab advances to in story text.
const tabStop = 4

// printable prepares one line of service-provided text for the terminal.
// Tabs advance to the next tab stop and other control characters, including
// escape sequences' ESC, are dropped so story text cannot move the cursor or
// change colors.
func printable(line string) string {
	if strings.IndexFunc(line, unicode.IsControl) < 0 {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		switch {
		case r == '\t':
			n := tabStop - col%tabStop
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case unicode.IsControl(r):
		default:
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
		}
	}
	return sb.String()
}
