package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nemesisgroup/jobportal/internal/router"
	"github.com/nemesisgroup/jobportal/pkg/domain"
)

func candidateSession() domain.Session {
	return domain.Session{Token: "t", User: &domain.AuthUser{Name: "Asha", Email: "asha@example.com", Role: domain.RoleCandidate}}
}

func TestCandidateSignedOut(t *testing.T) {
	m := newCandidateModel(nil, domain.Session{}, candidateHome)
	if !strings.Contains(m.View(), "You are not signed in.") {
		t.Errorf("unexpected view:\n%s", m.View())
	}
	m, _ = m.Update(sessionChangedMsg{session: candidateSession()})
	if !strings.Contains(m.View(), "Asha") {
		t.Errorf("session change not reflected:\n%s", m.View())
	}
}

func TestCandidateTabsNavigate(t *testing.T) {
	tests := []struct {
		tab  candidateTab
		key  string
		want string
	}{
		{candidateHome, "tab", "/candidate/profile"},
		{candidateApplications, "tab", "/candidate"},
		{candidateHome, "shift+tab", "/candidate/applications"},
	}
	for _, tc := range tests {
		m := newCandidateModel(nil, candidateSession(), tc.tab)
		_, cmd := m.Update(keyMsg(tc.key))
		if cmd == nil {
			t.Fatalf("%s from %d: no command", tc.key, tc.tab)
		}
		if nav := cmd().(navigateMsg); nav.path != tc.want {
			t.Errorf("%s from %d: path = %q, want %q", tc.key, tc.tab, nav.path, tc.want)
		}
	}
}

func TestCandidateTabFor(t *testing.T) {
	if candidateTabFor(router.PageCandidateApps) != candidateApplications || candidateTabFor(router.PageCandidateHome) != candidateHome {
		t.Error("unexpected tab mapping")
	}
}

func TestCandidateApplications(t *testing.T) {
	m := newCandidateModel(nil, candidateSession(), candidateApplications)
	m, _ = m.Update(applicationsLoadedMsg{apps: []domain.Application{
		{ID: "1", JobTitle: "Data Analyst", Company: "Infosys", Status: "interview", AppliedAt: domain.Timestamp{Time: time.Now().Add(-2 * time.Hour)}},
	}})
	view := m.View()
	if !strings.Contains(view, "Data Analyst") || !strings.Contains(view, "interview") {
		t.Errorf("applications missing:\n%s", view)
	}

	m, _ = m.Update(applicationsLoadedMsg{err: errors.New("500")})
	if !strings.Contains(m.View(), "Failed to load applications") {
		t.Errorf("missing error:\n%s", m.View())
	}
}

func TestHomeGreeting(t *testing.T) {
	m := newHomeModel(nil, domain.Session{}, time.Second)
	if !strings.Contains(m.View(), "Find your next role") {
		t.Errorf("missing hero:\n%s", m.View())
	}
	m, _ = m.Update(sessionChangedMsg{session: candidateSession()})
	if !strings.Contains(m.View(), "Welcome back, Asha") {
		t.Errorf("missing greeting:\n%s", m.View())
	}
}

func TestContentPages(t *testing.T) {
	if !strings.Contains(newServiceModel("nope").View(), "Service not found") {
		t.Error("unknown service should render not found")
	}
	m := newServiceModel("recruitment")
	_, cmd := m.Update(keyMsg("c"))
	if cmd == nil || cmd().(navigateMsg).path != "/contact" {
		t.Error("c should open contact")
	}
}
