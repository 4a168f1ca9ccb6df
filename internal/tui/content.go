package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nemesisgroup/jobportal/internal/router"
	"github.com/nemesisgroup/jobportal/pkg/domain"
)

// contentSection is a heading plus paragraphs or bullet points.
type contentSection struct {
	heading string
	body    []string
	bullets []string
}

// contentModel renders a static marketing or legal page.
type contentModel struct {
	title    string
	tagline  string
	sections []contentSection
	action   string // optional call to action, e.g. "c contact us"
	target   string // path opened by the action key
	width    int
}

func (m contentModel) Init() tea.Cmd { return nil }

func (m contentModel) Update(msg tea.Msg) (contentModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.target != "" && msg.String() == "c" {
			return m, navigate(m.target)
		}
	}
	return m, nil
}

func (m contentModel) helpKeys() string {
	if m.target != "" {
		return helpBar(helpEntry("c", m.action), helpEntry("esc", "back"))
	}
	return helpBar(helpEntry("esc", "back"))
}

func (m contentModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render(m.title) + "\n")
	if m.tagline != "" {
		b.WriteString(" " + taglineStyle.Render(m.tagline) + "\n")
	}
	w := m.width - 4
	if w < 30 {
		w = 30
	}
	wrap := lipgloss.NewStyle().Width(w)
	for _, s := range m.sections {
		b.WriteString("\n")
		if s.heading != "" {
			b.WriteString(" " + sectionHeaderStyle.Render(s.heading) + "\n")
		}
		for _, p := range s.body {
			for _, l := range strings.Split(wrap.Render(p), "\n") {
				b.WriteString(" " + normalStyle.Render(l) + "\n")
			}
		}
		for _, bl := range s.bullets {
			b.WriteString("  " + accentStyle.Render("•") + " " + normalStyle.Render(bl) + "\n")
		}
	}
	if m.target != "" {
		b.WriteString("\n " + accentStyle.Render("→ ") + dimStyle.Render(m.action) + " " + helpKeyStyle.Render("c") + "\n")
	}
	return b.String()
}

func newAboutModel() contentModel {
	return contentModel{
		title:   "About Nemesis Group",
		tagline: "People-first HR services since day one.",
		sections: []contentSection{
			{body: []string{"Nemesis Group connects employers with the right talent and helps teams run payroll, compliance and training without the overhead."}},
			{heading: "What we do", bullets: []string{"Staffing and recruitment across India", "Payroll and statutory compliance", "Training and HR consulting"}},
			{heading: "Why us", bullets: []string{"Verified candidates", "Fast turnaround on bulk hiring", "One partner for the full employee lifecycle"}},
		},
		action: "contact us",
		target: "/contact",
	}
}

func newNemesisModel() contentModel {
	return contentModel{
		title:   "Nemesis Group",
		tagline: "Right people. Right roles. Right now.",
		sections: []contentSection{
			{heading: "Company", body: []string{"A staffing and HR services company serving startups, enterprises and public sector clients."}},
			{heading: "Presence", bullets: []string{"Pan-India delivery", "Regional hiring desks in Delhi and Bangalore"}},
		},
		action: "browse jobs",
		target: router.PathJobs,
	}
}

func newTermsModel() contentModel {
	return contentModel{
		title: "Terms & Conditions",
		sections: []contentSection{
			{heading: "Use of the portal", body: []string{"The portal lists openings and lets candidates and employers manage their accounts. Listings are provided by employers and may change without notice."}},
			{heading: "Accounts", body: []string{"You are responsible for the credentials used to sign in. Sessions stay active on this device until you log out."}},
			{heading: "Community", body: []string{"Chat rooms are moderated. Messages that are abusive or unrelated to work may be removed."}},
		},
	}
}

func newPrivacyModel() contentModel {
	return contentModel{
		title: "Privacy Policy",
		sections: []contentSection{
			{heading: "What we store", body: []string{"Your profile, applications and chat messages are stored by our backend. This client keeps only your session token and basic profile on this device."}},
			{heading: "Your choices", body: []string{"Logging out removes the locally stored session. Contact us to delete your account data."}},
		},
		action: "contact us",
		target: "/contact",
	}
}

func newForgotPasswordModel() contentModel {
	return contentModel{
		title:   "Forgot password",
		tagline: "Password resets are handled by our support desk.",
		sections: []contentSection{
			{body: []string{"Send us your registered email address from the contact page and we will help you reset your password."}},
		},
		action: "contact support",
		target: "/contact",
	}
}

// newServiceModel renders one service; unknown slugs get a not-found page.
func newServiceModel(slug string) contentModel {
	svc, ok := domain.ServiceBySlug(slug)
	if !ok {
		return contentModel{
			title:   "Service not found",
			tagline: "We could not find “" + slug + "”.",
			action:  "see all services",
			target:  "/services",
		}
	}
	return contentModel{
		title:    svc.Title,
		tagline:  svc.Summary,
		sections: []contentSection{{heading: "Highlights", bullets: svc.Points}},
		action:   "talk to us",
		target:   "/contact",
	}
}

// servicesModel lists the service catalog.
type servicesModel struct {
	cursor int
	width  int
}

func newServicesModel() servicesModel { return servicesModel{} }

func (m servicesModel) Init() tea.Cmd { return nil }

func (m servicesModel) Update(msg tea.Msg) (servicesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(domain.Services)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			return m, navigate(router.ServicePath(domain.Services[m.cursor].Slug))
		}
	}
	return m, nil
}

func (m servicesModel) helpKeys() string {
	return helpBar(helpEntry("j/k", "nav"), helpEntry("enter", "open"), helpEntry("esc", "back"))
}

func (m servicesModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Services") + "  " + taglineStyle.Render("HR solutions for every stage of growth.") + "\n\n")
	for i, s := range domain.Services {
		cursor := "  "
		ts := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			ts = selectedStyle
		}
		b.WriteString(cursor + ts.Render(s.Title) + "\n")
		b.WriteString("    " + dimStyle.Render(truncStr(s.Summary, max(m.width-6, 30))) + "\n")
	}
	return b.String()
}
