package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nemesisgroup/jobportal/internal/router"
	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/domain"
)

// jobLoadedMsg carries one job for the detail page.
type jobLoadedMsg struct {
	id  string
	job *domain.Job
	err error
}

type jobDetailModel struct {
	client    *client.Client
	siteURL   string
	id        string
	job       *domain.Job
	loading   bool
	err       string
	statusMsg string
	width     int
}

func newJobDetailModel(c *client.Client, siteURL, id string) jobDetailModel {
	return jobDetailModel{client: c, siteURL: siteURL, id: id, loading: true}
}

func (m jobDetailModel) Init() tea.Cmd {
	c, id := m.client, m.id
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		job, err := c.GetJob(context.Background(), id)
		return jobLoadedMsg{id: id, job: job, err: err}
	}
}

func (m jobDetailModel) Update(msg tea.Msg) (jobDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case jobLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if client.IsStatus(msg.err, 404) {
				m.err = "Job not found"
			} else {
				m.err = "Failed to load job"
			}
			return m, nil
		}
		m.job = msg.job
	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "link copied!"
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		m.statusMsg = ""
		switch msg.String() {
		case "c":
			return m, copyCmd(siteLink(m.siteURL, router.JobPath(m.id)))
		case "a":
			return m, navigate(router.PathAuth)
		}
	}
	return m, nil
}

func (m jobDetailModel) helpKeys() string {
	return helpBar(helpEntry("c", "copy link"), helpEntry("a", "login to apply"), helpEntry("esc", "back"))
}

func (m jobDetailModel) View() string {
	var b strings.Builder
	if m.loading {
		return " " + dimStyle.Render("Loading job...") + "\n"
	}
	if m.err != "" {
		return " " + errorStyle.Render(m.err) + "\n"
	}
	if m.job == nil {
		return " " + errorStyle.Render("Job not found") + "\n"
	}
	j := m.job
	b.WriteString(" " + titleStyle.Render(oneLine(j.Title)) + "\n")
	sub := []string{}
	if j.Company != "" {
		sub = append(sub, j.Company)
	}
	if j.Location != "" {
		sub = append(sub, j.Location)
	}
	b.WriteString(" " + dimStyle.Render(strings.Join(sub, " · ")) + "\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(" " + fieldLabelStyle.Render(fmt.Sprintf("%-12s", label)) + normalStyle.Render(value) + "\n")
	}
	row("Type", j.Type)
	row("Experience", j.Experience)
	if sal := j.SalaryLabel(); sal != "" {
		b.WriteString(" " + fieldLabelStyle.Render(fmt.Sprintf("%-12s", "Salary")) + salaryStyle.Render(sal) + "\n")
	}
	if j.Status != "" {
		b.WriteString(" " + fieldLabelStyle.Render(fmt.Sprintf("%-12s", "Status")) + StatusStyle(j.Status).Render(j.Status) + "\n")
	}

	if j.Description != "" {
		w := m.width - 4
		if w < 30 {
			w = 30
		}
		b.WriteString("\n " + sectionHeaderStyle.Render("Description") + "\n")
		desc := lipgloss.NewStyle().Width(w).Render(j.Description)
		for _, l := range strings.Split(desc, "\n") {
			b.WriteString(" " + normalStyle.Render(l) + "\n")
		}
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
