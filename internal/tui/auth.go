package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nemesisgroup/jobportal/internal/router"
	"github.com/nemesisgroup/jobportal/internal/session"
	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/domain"
)

// authResultMsg carries the outcome of a login attempt. On success the
// session is already persisted.
type authResultMsg struct {
	session *domain.Session
	err     error
}

// authModel is the candidate/employer sign-in page.
type authModel struct {
	client     *client.Client
	sess       *session.Context
	current    domain.Session
	form       form
	submitting bool
	err        string
	width      int
}

func newAuthModel(c *client.Client, sess *session.Context, current domain.Session) authModel {
	return authModel{
		client:  c,
		sess:    sess,
		current: current,
		form: newForm(
			formField{key: "Email", label: "Email", placeholder: "you@example.com"},
			formField{key: "Password", label: "Password", placeholder: "at least 6 characters", secret: true},
			formField{key: "Role", label: "I am a", options: []string{string(domain.RoleCandidate), string(domain.RoleEmployer)}},
		),
	}
}

func (m authModel) Init() tea.Cmd { return nil }

func (m authModel) request() client.LoginRequest {
	return client.LoginRequest{
		Email:    strings.TrimSpace(m.form.value("Email")),
		Password: m.form.value("Password"),
		Role:     domain.Role(m.form.value("Role")),
	}
}

func (m authModel) submit() (authModel, tea.Cmd) {
	req := m.request()
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
		s, err := c.Login(ctx, req)
		if err != nil {
			return authResultMsg{err: err}
		}
		if sess != nil {
			if err := sess.SignIn(ctx, *s); err != nil {
				return authResultMsg{err: err}
			}
		}
		return authResultMsg{session: s}
	}
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case sessionChangedMsg:
		m.current = msg.session
	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				m.err = "Invalid email or password"
			} else {
				m.err = msg.err.Error()
			}
			return m, nil
		}
		m.form = m.form.reset()
		return m, navigate(msg.session.Role().DashboardPath())
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, goBack
		case "ctrl+f":
			return m, navigate("/forgot-password")
		}
		var submit bool
		m.form, submit = m.form.handleKey(msg.String())
		if submit {
			return m.submit()
		}
	}
	return m, nil
}

// editing is always true: every printable key goes to a field.
func (m authModel) editing() bool { return true }

func (m authModel) helpKeys() string {
	return helpBar(helpEntry("tab", "next"), helpEntry("←/→", "role"), helpEntry("enter", "sign in"), helpEntry("ctrl+f", "forgot password"), helpEntry("esc", "back"))
}

func (m authModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Login") + "  " + taglineStyle.Render("Candidates and employers sign in here.") + "\n\n")

	if m.current.Authenticated() {
		b.WriteString(" " + dimStyle.Render("Signed in as ") + selectedStyle.Render(m.current.User.DisplayName()) +
			" " + RoleBadge(string(m.current.Role())) + dimStyle.Render("; signing in again replaces this session.") + "\n\n")
	}

	b.WriteString(m.form.view())
	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("Signing in...") + "\n")
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	b.WriteString(" " + metaStyle.Render("Forgot password? ctrl+f") + "\n")
	return b.String()
}

// logoutCmd clears the session and routes to the auth page.
func logoutCmd(sess *session.Context) tea.Cmd {
	return func() tea.Msg {
		if sess != nil {
			sess.SignOut(context.Background()) //nolint:errcheck // the keys are gone or unreachable either way
		}
		return navigateMsg{path: router.PathAuth}
	}
}
