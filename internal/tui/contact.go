package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// contactRequest is validated before the form is accepted.
type contactRequest struct {
	Name    string `validate:"required,min=2"`
	Mobile  string `validate:"omitempty,numeric,len=10"`
	Email   string `validate:"required,email"`
	Subject string `validate:"required"`
	Message string `validate:"required,min=10"`
}

// contactModel is the contact page. The form is confirmed locally; there
// is no backend endpoint for it.
type contactModel struct {
	form form
	err  string
	sent bool
}

func newContactModel() contactModel {
	return contactModel{
		form: newForm(
			formField{key: "Name", label: "Full Name", placeholder: "Your name"},
			formField{key: "Mobile", label: "Mobile Number", placeholder: "10 digits"},
			formField{key: "Email", label: "Email Address", placeholder: "you@example.com"},
			formField{key: "Subject", label: "Subject", placeholder: "How can we help?"},
			formField{key: "Message", label: "Message", placeholder: "Write your message...", multiline: true},
		),
	}
}

func (m contactModel) Init() tea.Cmd { return nil }

func (m contactModel) request() contactRequest {
	return contactRequest{
		Name:    strings.TrimSpace(m.form.value("Name")),
		Mobile:  strings.TrimSpace(m.form.value("Mobile")),
		Email:   strings.TrimSpace(m.form.value("Email")),
		Subject: strings.TrimSpace(m.form.value("Subject")),
		Message: strings.TrimSpace(m.form.value("Message")),
	}
}

func (m contactModel) Update(msg tea.Msg) (contactModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "esc" {
		return m, goBack
	}
	m.sent = false
	var submit bool
	m.form, submit = m.form.handleKey(key.String())
	if !submit {
		return m, nil
	}
	if err := validate.Struct(m.request()); err != nil {
		m.err = validationMessage(err, m.form.labelsOf())
		return m, nil
	}
	m.err = ""
	m.sent = true
	m.form = m.form.reset()
	return m, nil
}

func (m contactModel) editing() bool { return true }

func (m contactModel) helpKeys() string {
	return helpBar(helpEntry("tab", "next"), helpEntry("ctrl+s", "send"), helpEntry("esc", "back"))
}

func (m contactModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Contact Us") + "  " + taglineStyle.Render("We usually reply within one working day.") + "\n\n")
	b.WriteString(" " + sectionHeaderStyle.Render("Send a Message") + "\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")
	switch {
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	case m.sent:
		b.WriteString(" " + okStyle.Render("Thanks! We'll get back to you soon.") + "\n")
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("Reach Us") + "\n")
	b.WriteString("  " + dimStyle.Render("Email  ") + normalStyle.Render("support@nemesisgroup.in") + "\n")
	b.WriteString("  " + dimStyle.Render("Phone  ") + normalStyle.Render("+91 11 4000 0000") + "\n")
	b.WriteString("  " + dimStyle.Render("Hours  ") + normalStyle.Render("Mon-Sat, 10:00-18:00 IST") + "\n")
	return b.String()
}
