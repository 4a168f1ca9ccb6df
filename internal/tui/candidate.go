package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nemesisgroup/jobportal/internal/router"
	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/domain"
)

// candidateTab is a sub-page of the candidate shell.
type candidateTab int

const (
	candidateHome candidateTab = iota
	candidateProfile
	candidateApplications
)

var candidateTabs = []struct {
	tab  candidateTab
	name string
	path string
}{
	{candidateHome, "Overview", "/candidate"},
	{candidateProfile, "Profile", "/candidate/profile"},
	{candidateApplications, "Applications", "/candidate/applications"},
}

func candidateTabFor(p router.Page) candidateTab {
	switch p {
	case router.PageCandidateProfile:
		return candidateProfile
	case router.PageCandidateApps:
		return candidateApplications
	default:
		return candidateHome
	}
}

// applicationsLoadedMsg carries the candidate's applications.
type applicationsLoadedMsg struct {
	apps []domain.Application
	err  error
}

// candidateModel is the candidate dashboard shell with three tabs sharing
// one frame.
type candidateModel struct {
	client  *client.Client
	session domain.Session
	tab     candidateTab
	apps    []domain.Application
	loading bool
	err     string
	width   int
}

func newCandidateModel(c *client.Client, current domain.Session, tab candidateTab) candidateModel {
	return candidateModel{client: c, session: current, tab: tab, loading: tab == candidateApplications}
}

func (m candidateModel) Init() tea.Cmd {
	if m.tab != candidateApplications || m.client == nil || !m.session.Authenticated() {
		return nil
	}
	c := m.client
	return func() tea.Msg {
		apps, err := c.CandidateApplications(context.Background())
		return applicationsLoadedMsg{apps: apps, err: err}
	}
}

func (m candidateModel) Update(msg tea.Msg) (candidateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case sessionChangedMsg:
		m.session = msg.session
	case applicationsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "Failed to load applications"
			m.apps = nil
		} else {
			m.apps = msg.apps
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right":
			next := candidateTabs[(int(m.tab)+1)%len(candidateTabs)]
			return m, navigate(next.path)
		case "shift+tab", "left":
			prev := candidateTabs[(int(m.tab)-1+len(candidateTabs))%len(candidateTabs)]
			return m, navigate(prev.path)
		}
	}
	return m, nil
}

func (m candidateModel) helpKeys() string {
	return helpBar(helpEntry("tab", "next section"), helpEntry("esc", "back"))
}

func (m candidateModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Candidate Dashboard") + "\n ")
	for _, t := range candidateTabs {
		if t.tab == m.tab {
			b.WriteString(accentStyle.Render("▸ ") + selectedStyle.Underline(true).Render(t.name) + "   ")
		} else {
			b.WriteString("  " + dimStyle.Render(t.name) + "   ")
		}
	}
	b.WriteString("\n\n")

	if !m.session.Authenticated() {
		b.WriteString(" " + dimStyle.Render("You are not signed in.") + " " + accentStyle.Render("l") + " " + dimStyle.Render("to log in as a candidate.") + "\n")
		return b.String()
	}

	switch m.tab {
	case candidateProfile:
		b.WriteString(m.viewProfile())
	case candidateApplications:
		b.WriteString(m.viewApplications())
	default:
		b.WriteString(m.viewHome())
	}
	return b.String()
}

func (m candidateModel) viewHome() string {
	u := m.session.User
	var b strings.Builder
	b.WriteString(" " + normalStyle.Render("Hello, ") + selectedStyle.Render(u.DisplayName()) + normalStyle.Render("!") + "\n")
	b.WriteString(" " + dimStyle.Render("Track your applications and keep your profile up to date.") + "\n\n")
	b.WriteString(" " + accentStyle.Render("2") + " " + normalStyle.Render("Browse jobs") + "   " +
		accentStyle.Render("tab") + " " + normalStyle.Render("Profile and applications") + "\n")
	return b.String()
}

func (m candidateModel) viewProfile() string {
	u := m.session.User
	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		b.WriteString(" " + fieldLabelStyle.Render(fmt.Sprintf("%-8s", label)) + normalStyle.Render(value) + "\n")
	}
	row("Name", u.Name)
	row("Email", u.Email)
	row("Role", string(u.Role))
	row("ID", u.ID.String())
	return b.String()
}

func (m candidateModel) viewApplications() string {
	if m.loading {
		return " " + dimStyle.Render("Loading applications...") + "\n"
	}
	if m.err != "" {
		return " " + errorStyle.Render(m.err) + "\n"
	}
	if len(m.apps) == 0 {
		return " " + dimStyle.Render("No applications yet.") + "\n"
	}
	var b strings.Builder
	for _, a := range m.apps {
		title := a.JobTitle
		if title == "" {
			title = "Job #" + a.JobID.String()
		}
		line := " " + normalStyle.Render(truncStr(title, 40))
		if a.Company != "" {
			line += "  " + dimStyle.Render(a.Company)
		}
		line += "  " + StatusStyle(a.Status).Render(a.Status) + "  " + metaStyle.Render(formatTime(a.AppliedAt.Time))
		b.WriteString(line + "\n")
	}
	return b.String()
}
