package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/domain"
)

// heroHeight is the number of lines the hero block uses above the widget.
const heroHeight = 7

type homeModel struct {
	session   domain.Session
	community communityModel
	width     int
	height    int
}

func newHomeModel(c *client.Client, current domain.Session, rotate time.Duration) homeModel {
	return homeModel{session: current, community: newCommunityModel(c, rotate)}
}

func (m homeModel) Init() tea.Cmd {
	return m.community.Init()
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-heroHeight, 8)}
		m.community, _ = m.community.Update(inner)
		return m, nil
	case sessionChangedMsg:
		m.session = msg.session
		return m, nil
	}
	var cmd tea.Cmd
	m.community, cmd = m.community.Update(msg)
	return m, cmd
}

func (m homeModel) editing() bool { return m.community.editing() }

func (m homeModel) helpKeys() string { return m.community.helpKeys() }

func (m homeModel) View() string {
	var b strings.Builder

	greeting := "Find your next role with Nemesis Group"
	if m.session.Authenticated() {
		greeting = "Welcome back, " + m.session.User.DisplayName()
	}
	b.WriteString(" " + titleStyle.Render(greeting) + "\n")
	b.WriteString(" " + taglineStyle.Render("Jobs, staffing and HR services for India's growing teams.") + "\n\n")

	cta := []string{
		accentStyle.Render("2") + " " + normalStyle.Render("Find jobs"),
		accentStyle.Render("4") + " " + normalStyle.Render("Our services"),
		accentStyle.Render("5") + " " + normalStyle.Render("Hire talent"),
	}
	b.WriteString(" " + strings.Join(cta, chatSepStyle.Render("  ·  ")) + "\n\n")

	w := m.width - 2
	if w < 40 {
		w = 40
	}
	b.WriteString(cardStyle.Width(w - 2).Render(strings.TrimRight(m.community.View(), "\n")))
	b.WriteString("\n")
	return lipgloss.NewStyle().MaxWidth(max(m.width, 40)).Render(b.String())
}
