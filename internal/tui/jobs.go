package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nemesisgroup/jobportal/internal/router"
	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/domain"
	"github.com/nemesisgroup/jobportal/pkg/logger"
)

// jobsLoadedMsg carries the board's job list.
type jobsLoadedMsg struct {
	jobs []domain.Job
	err  error
}

// copyResultMsg carries the outcome of a clipboard write.
type copyResultMsg struct{ err error }

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: clipboardWrite(text)}
	}
}

// jobsModel is the job board: fetch once, filter locally.
type jobsModel struct {
	client    *client.Client
	siteURL   string
	jobs      []domain.Job
	filter    domain.JobFilter
	cursor    int
	searching bool
	loading   bool
	err       string
	statusMsg string
	width     int
	height    int
}

func newJobsModel(c *client.Client, siteURL string) jobsModel {
	return jobsModel{
		client:  c,
		siteURL: siteURL,
		loading: true,
		filter:  domain.JobFilter{Type: domain.FilterAll, Experience: domain.FilterAll},
	}
}

func (m jobsModel) Init() tea.Cmd {
	return m.load()
}

func (m jobsModel) load() tea.Cmd {
	c := m.client
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		if err := c.Ping(ctx); err != nil {
			return jobsLoadedMsg{err: err}
		}
		jobs, err := c.ListJobs(ctx)
		return jobsLoadedMsg{jobs: jobs, err: err}
	}
}

// visible is the filtered view, recomputed from the full set every time.
func (m jobsModel) visible() []domain.Job {
	return domain.FilterJobs(m.jobs, m.filter)
}

func (m jobsModel) Update(msg tea.Msg) (jobsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case jobsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			lg := logger.Get()
			lg.Warn().Err(msg.err).Msg("load jobs")
			m.err = "Failed to load jobs"
			m.jobs = nil
		} else {
			m.err = ""
			m.jobs = msg.jobs
		}
		m.clampCursor()
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "link copied!"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *jobsModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m jobsModel) updateSearch(msg tea.KeyMsg) (jobsModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
	case "esc":
		m.searching = false
		m.filter.Query = ""
	default:
		m.filter.Query = editRune(m.filter.Query, msg.String())
	}
	m.clampCursor()
	return m, nil
}

func (m jobsModel) updateList(msg tea.KeyMsg) (jobsModel, tea.Cmd) {
	visible := m.visible()
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.searching = true
	case "t":
		m.filter.Type = cycleOption(domain.JobTypes, m.filter.Type)
		m.cursor = 0
	case "e":
		m.filter.Experience = cycleOption(domain.ExperienceOptions(m.jobs), m.filter.Experience)
		m.cursor = 0
	case "x":
		m.filter = domain.JobFilter{Type: domain.FilterAll, Experience: domain.FilterAll}
		m.cursor = 0
	case "enter":
		if m.cursor < len(visible) {
			return m, navigate(router.JobPath(visible[m.cursor].ID.String()))
		}
	case "c":
		if m.cursor < len(visible) {
			return m, copyCmd(siteLink(m.siteURL, router.JobPath(visible[m.cursor].ID.String())))
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

// cycleOption returns the option after current, wrapping around.
func cycleOption(opts []string, current string) string {
	if len(opts) == 0 {
		return current
	}
	for i, o := range opts {
		if o == current {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}

func (m jobsModel) editing() bool { return m.searching }

func (m jobsModel) helpKeys() string {
	if m.searching {
		return helpBar(helpEntry("enter", "apply"), helpEntry("esc", "clear"))
	}
	return helpBar(helpEntry("j/k", "nav"), helpEntry("/", "search"), helpEntry("t", "type"), helpEntry("e", "experience"),
		helpEntry("x", "reset"), helpEntry("enter", "open"), helpEntry("c", "copy link"), helpEntry("r", "reload"))
}

func (m jobsModel) View() string {
	var b strings.Builder

	live := ""
	if !m.loading {
		live = "  " + metaStyle.Render("(Live API)")
	}
	b.WriteString(" " + titleStyle.Render("Jobs") + "  " + taglineStyle.Render("Apply, track application status, follow companies.") + live + "\n")
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}

	// Filter bar
	switch {
	case m.searching:
		b.WriteString(" " + searchStyle.Render("/ "+m.filter.Query+"█"))
	case m.filter.Query != "":
		b.WriteString(" " + searchStyle.Render("/ "+m.filter.Query))
	default:
		b.WriteString(" " + dimStyle.Render("/ Search jobs, city, keyword..."))
	}
	b.WriteString("   " + dimStyle.Render("type ") + selectedStyle.Render(m.filter.Type) + " " + helpKeyStyle.Render("t"))
	b.WriteString("   " + dimStyle.Render("exp ") + selectedStyle.Render(m.filter.Experience) + " " + helpKeyStyle.Render("e"))
	b.WriteString("\n")

	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}

	list := m.viewList()
	if m.width >= 90 {
		listW := m.width * 2 / 3
		list = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(listW).Render(list),
			m.viewCompanies())
	} else {
		list += "\n" + m.viewCompanies()
	}
	b.WriteString(list)
	return b.String()
}

func (m jobsModel) viewList() string {
	var b strings.Builder
	visible := m.visible()

	count := "Loading..."
	if !m.loading {
		count = fmt.Sprintf("%d results", len(visible))
	}
	b.WriteString(" " + sectionHeaderStyle.Render("Recommended Jobs") + "  " + dimStyle.Render(count) + "\n")

	if m.loading {
		b.WriteString(" " + dimStyle.Render("Loading jobs…") + "\n")
		return b.String()
	}
	if len(visible) == 0 {
		b.WriteString(" " + dimStyle.Render("No jobs found.") + "\n")
		return b.String()
	}

	maxVisible := (m.height - 8) / 2
	if maxVisible < 3 {
		maxVisible = 3
	}
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}

	width := m.width
	if m.width >= 90 {
		width = m.width * 2 / 3
	}
	for i := start; i < len(visible) && i < start+maxVisible; i++ {
		j := visible[i]
		cursor := "  "
		ts := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			ts = selectedStyle
		}
		title := truncStr(oneLine(j.Title), max(width-30, 12))
		line := cursor + ts.Render(title) + "  " + dimStyle.Render(j.Location)
		meta := "    " + metaStyle.Render(j.Type+" · "+j.Experience)
		if sal := j.SalaryLabel(); sal != "" {
			meta += metaStyle.Render(" · ") + salaryStyle.Render(sal)
		}
		if i == m.cursor {
			line = selectedRowBg.Render(line + strings.Repeat(" ", max(width-lipgloss.Width(line)-1, 0)))
		}
		b.WriteString(line + "\n" + meta + "\n")
	}
	return b.String()
}

func (m jobsModel) viewCompanies() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Top Companies") + "\n")
	b.WriteString(dimStyle.Render("Follow for job alerts & updates.") + "\n")
	for _, c := range domain.TopCompanies {
		name := normalStyle.Render(c.Name)
		if c.Verified {
			name += " " + goldStyle.Render("✓")
		}
		b.WriteString(name + "\n" + metaStyle.Render(c.Industry+" · "+c.Location) + "\n")
	}
	return b.String()
}
