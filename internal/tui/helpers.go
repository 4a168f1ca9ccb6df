package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nemesisgroup/jobportal/pkg/domain"
)

// formatTime renders a relative timestamp for application lists.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// oneLine collapses newlines and runs of whitespace.
func oneLine(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// cellString renders a generic admin row value.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return "-"
		}
		return oneLine(x)
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case bool:
		if x {
			return "yes"
		}
		return "no"
	default:
		return oneLine(fmt.Sprint(x))
	}
}

// preferredColumns are shown first, in this order, when present.
var preferredColumns = []string{"id", "name", "title", "email", "phone", "company", "location", "role", "status", "created_at"}

// rowColumns picks display columns for generic rows: preferred keys first,
// then the rest alphabetically, capped at limit.
func rowColumns(rows []domain.Row, limit int) []string {
	present := make(map[string]bool)
	for _, r := range rows {
		for k := range r {
			present[k] = true
		}
	}
	var cols []string
	for _, k := range preferredColumns {
		if present[k] {
			cols = append(cols, k)
			delete(present, k)
		}
	}
	var rest []string
	for k := range present {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	cols = append(cols, rest...)
	if limit > 0 && len(cols) > limit {
		cols = cols[:limit]
	}
	return cols
}
