package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nemesisgroup/jobportal/pkg/domain"
)

// navigateMsg asks the App to route to path.
type navigateMsg struct {
	path string
}

// navigate returns a command that routes to path.
func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

// sessionChangedMsg carries a session broadcast from the session context.
type sessionChangedMsg struct {
	session domain.Session
}

// page is a mounted route view as the App sees it.
type page interface {
	Init() tea.Cmd
	Update(tea.Msg) (page, tea.Cmd)
	View() string
	// capturing reports whether the page is consuming raw keystrokes
	// (a focused text field), which disables global shortcuts.
	capturing() bool
	help() string
}

// model is what each concrete view implements. Views keep the usual
// value-receiver Update returning their own type; mount adapts them.
type model[M any] interface {
	Init() tea.Cmd
	Update(tea.Msg) (M, tea.Cmd)
	View() string
}

type mounted[M model[M]] struct {
	m M
}

func mount[M model[M]](m M) page { return mounted[M]{m: m} }

func (p mounted[M]) Init() tea.Cmd { return p.m.Init() }

func (p mounted[M]) Update(msg tea.Msg) (page, tea.Cmd) {
	m, cmd := p.m.Update(msg)
	return mounted[M]{m: m}, cmd
}

func (p mounted[M]) View() string { return p.m.View() }

func (p mounted[M]) capturing() bool {
	if c, ok := any(p.m).(interface{ editing() bool }); ok {
		return c.editing()
	}
	return false
}

func (p mounted[M]) help() string {
	if h, ok := any(p.m).(interface{ helpKeys() string }); ok {
		return h.helpKeys()
	}
	return ""
}

// backMsg asks the App to return to the previous page.
type backMsg struct{}

func goBack() tea.Msg { return backMsg{} }
