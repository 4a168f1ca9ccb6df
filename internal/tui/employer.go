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

// employerJobsMsg carries the employer's posted jobs.
type employerJobsMsg struct {
	jobs []domain.Job
	err  error
}

// employerModel is the employer dashboard: the jobs this employer posted.
type employerModel struct {
	client  *client.Client
	session domain.Session
	jobs    []domain.Job
	cursor  int
	loading bool
	err     string
	width   int
}

func newEmployerModel(c *client.Client, current domain.Session) employerModel {
	return employerModel{client: c, session: current, loading: current.Authenticated()}
}

func (m employerModel) Init() tea.Cmd {
	if m.client == nil || !m.session.Authenticated() {
		return nil
	}
	c := m.client
	return func() tea.Msg {
		jobs, err := c.EmployerJobs(context.Background())
		return employerJobsMsg{jobs: jobs, err: err}
	}
}

func (m employerModel) Update(msg tea.Msg) (employerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case sessionChangedMsg:
		m.session = msg.session
	case employerJobsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "Failed to load your jobs"
			m.jobs = nil
		} else {
			m.jobs = msg.jobs
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.jobs)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.jobs) {
				return m, navigate(router.JobPath(m.jobs[m.cursor].ID.String()))
			}
		}
	}
	return m, nil
}

func (m employerModel) helpKeys() string {
	return helpBar(helpEntry("j/k", "nav"), helpEntry("enter", "open"), helpEntry("esc", "back"))
}

func (m employerModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Employer Dashboard") + "  " + taglineStyle.Render("Post jobs and review applicants.") + "\n\n")

	if !m.session.Authenticated() {
		b.WriteString(" " + dimStyle.Render("You are not signed in.") + " " + accentStyle.Render("l") + " " + dimStyle.Render("to log in as an employer.") + "\n")
		return b.String()
	}
	if m.session.Role() != domain.RoleEmployer {
		b.WriteString(" " + dimStyle.Render("Signed in as a "+string(m.session.Role())+"; employer tools need an employer account.") + "\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("Loading your jobs...") + "\n")
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	case len(m.jobs) == 0:
		b.WriteString(" " + dimStyle.Render("No jobs posted yet.") + "\n")
	default:
		b.WriteString(" " + sectionHeaderStyle.Render(fmt.Sprintf("Your jobs (%d)", len(m.jobs))) + "\n")
		for i, j := range m.jobs {
			cursor := "  "
			ts := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸") + " "
				ts = selectedStyle
			}
			line := cursor + ts.Render(truncStr(oneLine(j.Title), 40)) + "  " + dimStyle.Render(j.Location) + "  " + metaStyle.Render(j.Type)
			if j.Status != "" {
				line += "  " + StatusStyle(j.Status).Render(j.Status)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
