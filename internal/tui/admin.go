package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nemesisgroup/jobportal/internal/router"
	"github.com/nemesisgroup/jobportal/internal/session"
	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/domain"
)

// adminNav is the admin sidebar, in order.
var adminNav = []struct {
	page  router.Page
	label string
	path  string
}{
	{router.PageAdminDashboard, "Dashboard", "/admin/dashboard"},
	{router.PageAdminCustomers, "Customers", "/admin/customers"},
	{router.PageAdminEmployees, "Employees", "/admin/employees"},
	{router.PageAdminJobs, "Jobs", "/admin/jobs"},
	{router.PageAdminApplications, "Applications", "/admin/applications"},
}

// adminResourceFor maps an admin page to its backend resource.
func adminResourceFor(p router.Page) string {
	switch p {
	case router.PageAdminCustomers:
		return "customers"
	case router.PageAdminEmployees:
		return "employees"
	case router.PageAdminJobs:
		return "jobs"
	case router.PageAdminApplications:
		return "applications"
	}
	return ""
}

// --- Login ---

// adminLoginMsg carries the outcome of an admin sign-in. On success the
// token is already stored.
type adminLoginMsg struct {
	err error
}

type adminLoginModel struct {
	client     *client.Client
	sess       *session.Context
	form       form
	submitting bool
	err        string
}

func newAdminLoginModel(c *client.Client, sess *session.Context) adminLoginModel {
	return adminLoginModel{
		client: c,
		sess:   sess,
		form: newForm(
			formField{key: "Email", label: "Email", placeholder: "admin@nemesisgroup.in"},
			formField{key: "Password", label: "Password", secret: true},
		),
	}
}

func (m adminLoginModel) Init() tea.Cmd { return nil }

func (m adminLoginModel) submit() (adminLoginModel, tea.Cmd) {
	req := client.AdminLoginRequest{
		Email:    strings.TrimSpace(m.form.value("Email")),
		Password: m.form.value("Password"),
	}
	if err := validate.Struct(req); err != nil {
		m.err = validationMessage(err, m.form.labelsOf())
		return m, nil
	}
	if m.client == nil {
		return m, nil
	}
	m.err = ""
	m.submitting = true
	c, sess := m.client, m.sess
	return m, func() tea.Msg {
		ctx := context.Background()
		token, err := c.AdminLogin(ctx, req)
		if err != nil {
			return adminLoginMsg{err: err}
		}
		if sess != nil {
			if err := sess.SignInAdmin(ctx, token); err != nil {
				return adminLoginMsg{err: err}
			}
		}
		return adminLoginMsg{}
	}
}

func (m adminLoginModel) Update(msg tea.Msg) (adminLoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adminLoginMsg:
		m.submitting = false
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				m.err = "Invalid admin credentials"
			} else {
				m.err = msg.err.Error()
			}
			return m, nil
		}
		m.form = m.form.reset()
		return m, navigate(router.PathAdminDashboard)
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if msg.String() == "esc" {
			return m, navigate(router.PathHome)
		}
		var submit bool
		m.form, submit = m.form.handleKey(msg.String())
		if submit {
			return m.submit()
		}
	}
	return m, nil
}

func (m adminLoginModel) editing() bool { return true }

func (m adminLoginModel) helpKeys() string {
	return helpBar(helpEntry("tab", "next"), helpEntry("enter", "sign in"), helpEntry("esc", "leave"))
}

func (m adminLoginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + RoleStyle("admin").Render("ADMIN CONSOLE") + "\n")
	b.WriteString(" " + dimStyle.Render("Sign in with your administrator account.") + "\n\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("Signing in...") + "\n")
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

// --- Dashboard ---

// adminSummaryMsg carries the dashboard summary.
type adminSummaryMsg struct {
	summary *domain.DashSummary
	err     error
}

type adminDashboardModel struct {
	client  *client.Client
	summary *domain.DashSummary
	err     string
	width   int
}

func newAdminDashboardModel(c *client.Client) adminDashboardModel {
	return adminDashboardModel{client: c}
}

func (m adminDashboardModel) Init() tea.Cmd {
	c := m.client
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := c.AdminSummary(context.Background())
		return adminSummaryMsg{summary: s, err: err}
	}
}

func (m adminDashboardModel) Update(msg tea.Msg) (adminDashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case adminSummaryMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			if m.err == "" {
				m.err = "Failed to load summary"
			}
			return m, nil
		}
		m.err = ""
		m.summary = msg.summary
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.Init()
		}
	}
	return m, nil
}

func (m adminDashboardModel) helpKeys() string {
	return helpBar(helpEntry("r", "reload"))
}

func dashCard(title string, value int, sub string, width int) string {
	body := metaStyle.Render(strings.ToUpper(title)) + "\n" +
		titleStyle.Render(fmt.Sprintf("%d", value)) + "\n" +
		dimStyle.Render(sub)
	return cardStyle.Width(width).Render(body)
}

func (m adminDashboardModel) View() string {
	if m.err != "" {
		return " " + errorStyle.Render(m.err) + "\n"
	}
	if m.summary == nil {
		return " " + dimStyle.Render("Loading...") + "\n"
	}
	s := m.summary
	cardW := 20
	if m.width >= 100 {
		cardW = (m.width - 12) / 4
	}
	cards := []string{
		dashCard("Customers", s.Totals.Customers, fmt.Sprintf("Today: %d", s.TodayCustomers()), cardW),
		dashCard("Employees", s.Totals.Employees, fmt.Sprintf("Today: %d", s.TodayEmployees()), cardW),
		dashCard("Jobs", s.Totals.Jobs, "Active: "+s.ActiveJobsLabel(), cardW),
		dashCard("Applications", s.Totals.Applications, fmt.Sprintf("Today: %d", s.Today.NewApplications), cardW),
	}
	var grid string
	if m.width > 0 && m.width < 4*(cardW+2) {
		grid = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3]))
	} else {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	return " " + titleStyle.Render("Dashboard") + "\n\n" + grid + "\n"
}

// --- Resource tables ---

// adminRowsMsg carries rows for one admin resource.
type adminRowsMsg struct {
	resource string
	rows     []domain.Row
	err      error
}

type adminTableModel struct {
	client   *client.Client
	resource string
	rows     []domain.Row
	loading  bool
	err      string
	cursor   int
	width    int
	height   int
}

func newAdminTableModel(c *client.Client, resource string) adminTableModel {
	return adminTableModel{client: c, resource: resource, loading: true}
}

func (m adminTableModel) Init() tea.Cmd {
	c, res := m.client, m.resource
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		rows, err := c.AdminList(context.Background(), res)
		return adminRowsMsg{resource: res, rows: rows, err: err}
	}
}

func (m adminTableModel) Update(msg tea.Msg) (adminTableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case adminRowsMsg:
		if msg.resource != m.resource {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = "Failed to load " + m.resource
			m.rows = nil
			return m, nil
		}
		m.err = ""
		m.rows = msg.rows
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			return m, m.Init()
		}
	}
	return m, nil
}

func (m adminTableModel) helpKeys() string {
	return helpBar(helpEntry("j/k", "nav"), helpEntry("r", "reload"))
}

func (m adminTableModel) View() string {
	var b strings.Builder
	title := m.resource
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	b.WriteString(" " + titleStyle.Render(title))
	if !m.loading && m.err == "" {
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%d records", len(m.rows))))
	}
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("Loading...") + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
		return b.String()
	case len(m.rows) == 0:
		b.WriteString(" " + dimStyle.Render("No records.") + "\n")
		return b.String()
	}

	cols := rowColumns(m.rows, 6)
	colW := 16
	if m.width > 0 && len(cols) > 0 {
		colW = max((m.width-4)/len(cols)-1, 8)
	}
	var header strings.Builder
	for _, c := range cols {
		header.WriteString(fmt.Sprintf("%-*s ", colW, truncStr(c, colW)))
	}
	b.WriteString("   " + sectionHeaderStyle.Render(header.String()) + "\n")

	maxRows := m.height - 6
	if maxRows < 5 {
		maxRows = 5
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	for i := start; i < len(m.rows) && i < start+maxRows; i++ {
		var line strings.Builder
		for _, c := range cols {
			line.WriteString(fmt.Sprintf("%-*s ", colW, truncStr(cellString(m.rows[i][c]), colW)))
		}
		if i == m.cursor {
			b.WriteString(" " + accentStyle.Render("▸") + " " + selectedRowBg.Render(selectedStyle.Render(line.String())) + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(line.String()) + "\n")
		}
	}
	return b.String()
}

// adminSidebar renders the admin layout's navigation column.
func adminSidebar(active router.Page) string {
	var b strings.Builder
	b.WriteString(RoleStyle("admin").Render("ADMIN") + "\n\n")
	for i, n := range adminNav {
		key := metaStyle.Render(fmt.Sprintf("%d ", i+1))
		if n.page == active {
			b.WriteString(key + selectedStyle.Render(n.label) + "\n")
		} else {
			b.WriteString(key + dimStyle.Render(n.label) + "\n")
		}
	}
	b.WriteString("\n" + metaStyle.Render("x ") + dimStyle.Render("Logout") + "\n")
	return lipgloss.NewStyle().
		Width(18).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(borderColor).
		Render(b.String())
}
