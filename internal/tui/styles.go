package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the NEMESIS wordmark.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "N E M E S I S" as a flowing wave of blue light.
// Deep navy (#0B3B7E) -> sky (#7CC4FF).
func renderShimmerLogo(frame int) string {
	const text = "NEMESIS"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(11 + b*(124-11))
		g := clampByte(59 + b*(196-59))
		bl := clampByte(126 + b*(255-126))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e8f4")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c8dc"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505a70"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505a70"))

	// Search / accent
	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e8f4")).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#93b4e0")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f9a8b4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	goldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	salaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86efac"))

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#13264a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7088b0")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#60a5fa")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3a4560"))

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	fieldFocusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	// Chat styles (community widget)
	chatSelfNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e4e8f4")).
				Bold(true)

	chatNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c8dc")).
			Bold(true)

	chatTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8b0c4"))

	chatPendingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#505a70")).
				Italic(true)

	chatSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#404a60"))

	activeRoomStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#061433")).
			Background(lipgloss.Color("#e4e8f4")).
			Bold(true)

	liveDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	// Card frame used by dashboard tiles and the widget.
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	borderColor = lipgloss.Color("#24345a")

	// Role colors for navbar badges.
	roleColors = map[string]lipgloss.Color{
		"candidate": lipgloss.Color("#60a5fa"),
		"employer":  lipgloss.Color("#f0944a"),
		"admin":     lipgloss.Color("#c084e0"),
	}

	// Application status colors.
	statusColors = map[string]lipgloss.Color{
		"applied":     lipgloss.Color("#60a5fa"),
		"shortlisted": lipgloss.Color("#d4a844"),
		"interview":   lipgloss.Color("#3ecce4"),
		"hired":       lipgloss.Color("#4ade80"),
		"rejected":    lipgloss.Color("#e06060"),
		"open":        lipgloss.Color("#4ade80"),
		"closed":      lipgloss.Color("#8890a0"),
	}
)

// RoleStyle returns a bold style colored for the given role.
func RoleStyle(role string) lipgloss.Style {
	if c, ok := roleColors[strings.ToLower(role)]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
}

// RoleBadge returns a short colored badge, e.g. "[employer]".
func RoleBadge(role string) string {
	if role == "" {
		return ""
	}
	return RoleStyle(role).Render("[" + role + "]")
}

// StatusStyle returns the style for an application or job status.
func StatusStyle(status string) lipgloss.Style {
	if c, ok := statusColors[strings.ToLower(status)]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries with the standard gap.
func helpBar(entries ...string) string {
	return " " + strings.Join(entries, "  ")
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	path  string
}

var helpItems = []helpItem{
	{"Contact Us", "/contact"},
	{"Terms & Conditions", "/terms"},
	{"Privacy Policy", "/privacy"},
	{"Website", "/"},
}

// helpView renders the help overlay with a cursor. Links open siteURL+path
// in the system browser.
func helpView(cursor int, siteURL string) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("N E M E S I S   G R O U P")

	quote := taglineStyle.Render(`"Right people. Right roles. Right now."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	linkSelected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"jobportal", "Open the portal (interactive TUI)"},
		{"jobportal open PATH", "Start at a page, e.g. /jobs"},
		{"jobportal logout", "Clear the saved session"},
		{"jobportal version", "Show version"},
	}
	keys := []struct{ key, desc string }{
		{"1-6", "Home, Jobs, About, Services, Employers, Candidates"},
		{"g", "Go to a path"},
		{"l / o", "Login / logout"},
		{"d", "Your dashboard"},
		{"esc", "Back"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, quote)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", k.key)), descStyle.Render(k.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-22s", item.label))
		prefix := "    "
		if i == cursor {
			label = linkSelected.Render(fmt.Sprintf("%-22s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(siteLink(siteURL, item.path)))
	}
	return b.String()
}

// siteLink joins the public site URL and a path.
func siteLink(siteURL, path string) string {
	return strings.TrimRight(siteURL, "/") + path
}
