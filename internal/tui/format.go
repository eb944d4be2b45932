package tui

import (
	"fmt"
	"strconv"
	"time"
)

// formatCurrency renders a USD amount with thousands grouping and no
// decimals, matching the dashboard's single en-US formatter. A nil amount
// renders as a dash.
func formatCurrency(symbol string, amount *float64) string {
	if amount == nil {
		return "—"
	}
	return symbol + groupThousands(int64(*amount+0.5))
}

func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// formatDate renders an opportunity creation date; zero times render as a
// dash rather than the epoch.
func formatDate(layout string, t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(layout)
}

// formatScore renders a lead score as a percentage-of-100 priority.
func formatScore(score int) string {
	return fmt.Sprintf("%d%%", score)
}

// sourceGlyph maps a lead source tag to display metadata. The source set is
// open; unknown tags get the fallback entry.
func sourceGlyph(source string) string {
	switch source {
	case "website":
		return "⊕ web"
	case "email":
		return "✉ email"
	case "phone":
		return "✆ phone"
	case "referral":
		return "⇄ referral"
	case "social":
		return "❋ social"
	case "event":
		return "◈ event"
	default:
		return "• " + source
	}
}
