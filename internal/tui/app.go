package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nemesisgroup/jobportal/internal/browser"
	"github.com/nemesisgroup/jobportal/internal/router"
	"github.com/nemesisgroup/jobportal/internal/session"
	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/domain"
	"github.com/nemesisgroup/jobportal/pkg/logger"
)

// openURL is swapped in tests.
var openURL = browser.Open

// Options configures the App.
type Options struct {
	Client         *client.Client
	Session        *session.Context
	Router         *router.Router
	StartPath      string
	SiteURL        string
	RotateInterval time.Duration
}

// navTab is an entry of the public navbar.
type navTab struct {
	key   string
	name  string
	path  string
	pages []router.Page
}

var navTabs = []navTab{
	{"1", "Home", "/", []router.Page{router.PageHome}},
	{"2", "Jobs", "/jobs", []router.Page{router.PageJobs, router.PageJobDetail}},
	{"3", "About", "/about", []router.Page{router.PageAbout, router.PageNemesis}},
	{"4", "Services ▾", "", []router.Page{router.PageServices, router.PageService}},
	{"5", "Employers", "/employer", []router.Page{router.PageEmployer}},
	{"6", "Candidates", "/candidate", []router.Page{router.PageCandidateHome, router.PageCandidateProfile, router.PageCandidateApps}},
}

// menuKind is the dropdown currently open over the page.
type menuKind int

const (
	menuNone menuKind = iota
	menuServices
	menuProfile
)

// App is the root Bubbletea model: route shell, navbar, footer and the
// admin layout around whichever page is mounted.
type App struct {
	client  *client.Client
	sess    *session.Context
	router  *router.Router
	siteURL string
	rotate  time.Duration

	subCh <-chan domain.Session
	unsub func()

	current domain.Session
	match   router.Match
	page    page
	history []string

	menu       menuKind
	menuCursor int
	helpOpen   bool
	helpCursor int
	gotoOpen   bool
	gotoInput  string

	width  int
	height int
	frame  int
}

// NewApp builds the App and mounts the page for opts.StartPath.
func NewApp(opts Options) App {
	a := App{
		client:  opts.Client,
		sess:    opts.Session,
		router:  opts.Router,
		siteURL: opts.SiteURL,
		rotate:  opts.RotateInterval,
	}
	if a.router == nil {
		var guard router.Guard
		if a.sess != nil {
			guard = session.NewAdminGuard(a.sess.Store())
		}
		a.router = router.New(guard)
	}
	if a.sess != nil {
		a.subCh, a.unsub = a.sess.Subscribe()
		a.current = a.sess.Current()
	}
	start := opts.StartPath
	if start == "" {
		start = router.PathHome
	}
	a.match = a.router.Resolve(context.Background(), start)
	a.page = a.buildPage(a.match)
	return a
}

// Close releases the session subscription.
func (a App) Close() {
	if a.unsub != nil {
		a.unsub()
	}
}

// Match returns the resolved route of the mounted page.
func (a App) Match() router.Match { return a.match }

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.waitSession(), a.page.Init())
}

// waitSession delivers the next session broadcast as a message.
func (a App) waitSession() tea.Cmd {
	ch := a.subCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return sessionChangedMsg{session: s}
	}
}

// userClient is the backend client bound to the signed-in user's token.
func (a App) userClient() *client.Client {
	if a.client == nil {
		return nil
	}
	return a.client.WithToken(a.current.Token)
}

// adminClient is the backend client bound to the admin console token.
func (a App) adminClient() *client.Client {
	if a.client == nil {
		return nil
	}
	token := ""
	if a.sess != nil {
		token = a.sess.AdminToken()
	}
	return a.client.WithToken(token)
}

// buildPage mounts the view for m.
func (a App) buildPage(m router.Match) page {
	uc := a.userClient()
	switch m.Page {
	case router.PageJobs:
		return mount(newJobsModel(uc, a.siteURL))
	case router.PageJobDetail:
		return mount(newJobDetailModel(uc, a.siteURL, m.Param("id")))
	case router.PageAuth:
		return mount(newAuthModel(uc, a.sess, a.current))
	case router.PageContact:
		return mount(newContactModel())
	case router.PageTerms:
		return mount(newTermsModel())
	case router.PagePrivacy:
		return mount(newPrivacyModel())
	case router.PageAbout:
		return mount(newAboutModel())
	case router.PageNemesis:
		return mount(newNemesisModel())
	case router.PageServices:
		return mount(newServicesModel())
	case router.PageService:
		return mount(newServiceModel(m.Param("slug")))
	case router.PageForgotPassword:
		return mount(newForgotPasswordModel())
	case router.PageCandidateHome, router.PageCandidateProfile, router.PageCandidateApps:
		return mount(newCandidateModel(uc, a.current, candidateTabFor(m.Page)))
	case router.PageEmployer:
		return mount(newEmployerModel(uc, a.current))
	case router.PageAdminLogin:
		return mount(newAdminLoginModel(a.client, a.sess))
	case router.PageAdminDashboard:
		return mount(newAdminDashboardModel(a.adminClient()))
	case router.PageAdminCustomers, router.PageAdminEmployees, router.PageAdminJobs, router.PageAdminApplications:
		return mount(newAdminTableModel(a.adminClient(), adminResourceFor(m.Page)))
	default:
		return mount(newHomeModel(uc, a.current, a.rotate))
	}
}

// bodySize is the space left for the page inside the current layout.
func (a App) bodySize() tea.WindowSizeMsg {
	switch a.match.Layout {
	case router.LayoutAdmin:
		return tea.WindowSizeMsg{Width: max(a.width-20, 20), Height: max(a.height-3, 1)}
	case router.LayoutBare:
		return tea.WindowSizeMsg{Width: a.width, Height: max(a.height-1, 1)}
	default:
		// header(1) + navbar(1) + rule(1) + footer(1) + help(1)
		return tea.WindowSizeMsg{Width: a.width, Height: max(a.height-5, 1)}
	}
}

// navigate resolves path and mounts its page. Navigation re-reads the
// session first so every route sees current credentials.
func (a App) navigate(path string, push bool) (App, tea.Cmd) {
	ctx := context.Background()
	if a.sess != nil {
		a.current = a.sess.Refresh(ctx, session.SourceNavigate)
	}
	m := a.router.Resolve(ctx, path)
	if m.RedirectedFrom != "" {
		lg := logger.Get()
		lg.Debug().Str("from", m.RedirectedFrom).Str("to", m.Path).Msg("route redirect")
	}
	if push && a.match.Path != "" && a.match.Path != m.Path {
		a.history = append(a.history, a.match.Path)
		if len(a.history) > 50 {
			a.history = a.history[len(a.history)-50:]
		}
	}
	a.match = m
	a.menu = menuNone
	a.page = a.buildPage(m)
	if a.width > 0 {
		a.page, _ = a.page.Update(a.bodySize())
	}
	return a, a.page.Init()
}

func (a App) back() (App, tea.Cmd) {
	if len(a.history) == 0 {
		return a, nil
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	return a.navigate(prev, false)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.page, cmd = a.page.Update(a.bodySize())
		return a, cmd

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case navigateMsg:
		return a.navigate(msg.path, true)

	case backMsg:
		return a.back()

	case sessionChangedMsg:
		a.current = msg.session
		var cmd tea.Cmd
		a.page, cmd = a.page.Update(msg)
		cmds := []tea.Cmd{cmd, a.waitSession()}
		// Losing admin credentials while in the console sends the guard
		// back through the router.
		if a.match.Layout == router.LayoutAdmin {
			if m := a.router.Resolve(context.Background(), a.match.Path); m.Page != a.match.Page {
				var nav tea.Cmd
				a, nav = a.navigate(a.match.Path, false)
				cmds = append(cmds, nav)
			}
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	var cmd tea.Cmd
	a.page, cmd = a.page.Update(msg)
	return a, cmd
}

func (a App) updateKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.helpOpen {
		return a.updateHelp(key)
	}
	if a.gotoOpen {
		return a.updateGoto(key)
	}
	if a.menu != menuNone {
		return a.updateMenu(key)
	}

	if !a.page.capturing() {
		switch key {
		case "q":
			return a, tea.Quit
		case "?":
			a.helpOpen = true
			a.helpCursor = 0
			return a, nil
		case "g":
			a.gotoOpen = true
			a.gotoInput = ""
			return a, nil
		case "esc", "backspace":
			return a.back()
		}
		if a.match.Layout == router.LayoutAdmin {
			if nav, cmd, ok := a.adminKeys(key); ok {
				return nav, cmd
			}
		} else if nav, cmd, ok := a.publicKeys(key); ok {
			return nav, cmd
		}
	}

	var cmd tea.Cmd
	a.page, cmd = a.page.Update(msg)
	return a, cmd
}

func (a App) publicKeys(key string) (App, tea.Cmd, bool) {
	for _, t := range navTabs {
		if key != t.key {
			continue
		}
		if t.path == "" {
			a.menu = menuServices
			a.menuCursor = 0
			return a, nil, true
		}
		nav, cmd := a.navigate(t.path, true)
		return nav, cmd, true
	}
	switch key {
	case "l":
		if a.current.Authenticated() {
			a.menu = menuProfile
			a.menuCursor = 0
			return a, nil, true
		}
		nav, cmd := a.navigate(router.PathAuth, true)
		return nav, cmd, true
	case "d":
		if a.current.Authenticated() {
			nav, cmd := a.navigate(a.current.Role().DashboardPath(), true)
			return nav, cmd, true
		}
	case "o":
		if a.current.Authenticated() {
			return a, logoutCmd(a.sess), true
		}
	}
	return a, nil, false
}

func (a App) adminKeys(key string) (App, tea.Cmd, bool) {
	for i, n := range adminNav {
		if key == fmt.Sprintf("%d", i+1) {
			nav, cmd := a.navigate(n.path, true)
			return nav, cmd, true
		}
	}
	if key == "x" {
		sess := a.sess
		return a, func() tea.Msg {
			if sess != nil {
				sess.SignOutAdmin(context.Background()) //nolint:errcheck
			}
			return navigateMsg{path: router.PathAdminLogin}
		}, true
	}
	return a, nil, false
}

func (a App) updateHelp(key string) (App, tea.Cmd) {
	switch key {
	case "?", "esc", "q":
		a.helpOpen = false
	case "j", "down":
		if a.helpCursor < len(helpItems)-1 {
			a.helpCursor++
		}
	case "k", "up":
		if a.helpCursor > 0 {
			a.helpCursor--
		}
	case "enter":
		url := siteLink(a.siteURL, helpItems[a.helpCursor].path)
		if err := openURL(url); err != nil {
			lg := logger.Get()
			lg.Warn().Err(err).Str("url", url).Msg("open browser")
		}
	}
	return a, nil
}

func (a App) updateGoto(key string) (App, tea.Cmd) {
	switch key {
	case "esc":
		a.gotoOpen = false
		return a, nil
	case "enter":
		a.gotoOpen = false
		path := strings.TrimSpace(a.gotoInput)
		if path == "" {
			return a, nil
		}
		return a.navigate(path, true)
	default:
		a.gotoInput = editRune(a.gotoInput, key)
		return a, nil
	}
}

// menuItems returns the (label, path) entries of the open dropdown. An
// empty path in the profile menu means logout.
func (a App) menuItems() [][2]string {
	switch a.menu {
	case menuServices:
		var items [][2]string
		for _, s := range domain.MenuServices() {
			items = append(items, [2]string{s.Title, router.ServicePath(s.Slug)})
		}
		return append(items, [2]string{"All services", "/services"})
	case menuProfile:
		return [][2]string{
			{"Go to Dashboard →", a.current.Role().DashboardPath()},
			{"Logout", ""},
		}
	}
	return nil
}

func (a App) updateMenu(key string) (App, tea.Cmd) {
	items := a.menuItems()
	switch key {
	case "esc", "q":
		a.menu = menuNone
	case "j", "down":
		if a.menuCursor < len(items)-1 {
			a.menuCursor++
		}
	case "k", "up":
		if a.menuCursor > 0 {
			a.menuCursor--
		}
	case "enter":
		if a.menuCursor >= len(items) {
			a.menu = menuNone
			return a, nil
		}
		target := items[a.menuCursor][1]
		a.menu = menuNone
		if target == "" {
			return a, logoutCmd(a.sess)
		}
		return a.navigate(target, true)
	}
	return a, nil
}

func (a App) View() string {
	if a.helpOpen {
		return helpView(a.helpCursor, a.siteURL) + "\n" +
			helpBar(helpEntry("j/k", "nav"), helpEntry("enter", "open"), helpEntry("esc", "close"))
	}

	body := a.page.View()
	if a.menu != menuNone {
		body = a.renderMenu() + "\n" + body
	}

	help := a.page.help()
	if a.gotoOpen {
		help = " " + inputPromptStyle.Render("go to ") + normalStyle.Render(a.gotoInput) + accentStyle.Render("█") +
			"  " + helpEntry("enter", "go") + "  " + helpEntry("esc", "cancel")
	} else if help == "" {
		help = helpBar(helpEntry("?", "help"), helpEntry("q", "quit"))
	}

	size := a.bodySize()
	switch a.match.Layout {
	case router.LayoutBare:
		body = strings.TrimRight(truncateToHeight(body, size.Height), "\n")
		return body + "\n" + help

	case router.LayoutAdmin:
		header := " " + renderShimmerLogo(a.frame) + "  " + RoleStyle("admin").Render("admin console")
		body = strings.TrimRight(truncateToHeight(body, size.Height), "\n")
		main := lipgloss.JoinHorizontal(lipgloss.Top, adminSidebar(a.match.Page), " "+strings.ReplaceAll(body, "\n", "\n "))
		return header + "\n\n" + main + "\n" + help

	default:
		body = strings.TrimRight(truncateToHeight(body, size.Height), "\n")
		return a.renderHeader() + "\n" + a.renderNavbar() + "\n" +
			metaStyle.Render(strings.Repeat("─", max(a.width, 20))) + "\n" +
			body + "\n" + a.renderFooter() + "\n" + help
	}
}

func (a App) renderHeader() string {
	logo := " " + renderShimmerLogo(a.frame)
	var right string
	if a.current.Authenticated() {
		right = selectedStyle.Render(a.current.User.DisplayName()) + " " + RoleBadge(string(a.current.Role())) + " " + helpKeyStyle.Render("l")
	} else {
		right = helpKeyStyle.Render("l") + " " + accentStyle.Render("Login")
	}
	gap := a.width - lipgloss.Width(logo) - lipgloss.Width(right) - 1
	if gap < 2 {
		gap = 2
	}
	return logo + strings.Repeat(" ", gap) + right
}

func (a App) renderNavbar() string {
	var b strings.Builder
	b.WriteString(" ")
	for _, t := range navTabs {
		active := false
		for _, p := range t.pages {
			if p == a.match.Page {
				active = true
			}
		}
		if active {
			b.WriteString(accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name))
		} else {
			b.WriteString(metaStyle.Render(t.key) + " " + dimStyle.Render(t.name))
		}
		b.WriteString("   ")
	}
	return b.String()
}

func (a App) renderFooter() string {
	return " " + metaStyle.Render("© Nemesis Group") + "   " +
		dimStyle.Render("Contact /contact · Terms /terms · Privacy /privacy") + "   " +
		helpKeyStyle.Render("g") + " " + helpLabelStyle.Render("go to")
}

func (a App) renderMenu() string {
	var b strings.Builder
	title := "Services"
	if a.menu == menuProfile {
		title = "Role: " + string(a.current.Role())
	}
	b.WriteString(sectionHeaderStyle.Render(title) + "\n")
	for i, it := range a.menuItems() {
		if i == a.menuCursor {
			b.WriteString(accentStyle.Render("▸ ") + selectedStyle.Render(it[0]) + "\n")
		} else {
			b.WriteString("  " + normalStyle.Render(it[0]) + "\n")
		}
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}
