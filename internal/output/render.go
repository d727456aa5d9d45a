package output

import (
	"fmt"
	"strings"
)

// renderWidth is the target terminal width; sections leave a margin
// inside it for indentation.
var renderWidth = 80

const sectionMargin = 14

// SetWidth sets the terminal width used by section rules. Widths below
// 40 are ignored to keep output legible.
func SetWidth(w int) {
	if w >= 40 {
		renderWidth = w
	}
}

// Bar renders a proportional activity bar for a value against a maximum.
// Example: "██████░░░░ 42"
func Bar(value, max float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	if max > 0 {
		filled = int((value / max) * float64(width))
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := StyleSuccess.Render(strings.Repeat("█", filled)) +
		StyleMuted.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %s", bar, StyleMuted.Render(fmt.Sprintf("%.0f", value)))
}

// Money formats a dollar amount the way the dashboard shows costs.
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
func TrendArrow(delta float64) string {
	switch {
	case delta > 0:
		return StyleSuccess.Render(fmt.Sprintf("▲ +%.0f", delta))
	case delta < 0:
		return StyleError.Render(fmt.Sprintf("▼ %.0f", delta))
	default:
		return StyleMuted.Render("─")
	}
}

// Severity returns a styled severity label for struggle indicators.
func Severity(level string) string {
	switch level {
	case "high":
		return StyleError.Render(level)
	case "medium":
		return StyleWarning.Render(level)
	default:
		return StyleMuted.Render(level)
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", renderWidth-sectionMargin))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
