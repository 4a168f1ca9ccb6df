package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nemesisgroup/jobportal/pkg/domain"
)

func newTestJobs() jobsModel {
	m := newJobsModel(nil, "https://nemesisgroup.in")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m, _ = m.Update(jobsLoadedMsg{jobs: []domain.Job{
		{ID: "1", Title: "Engineer", Location: "Pune", Type: "Office", Experience: "1-3 Years"},
		{ID: "2", Title: "Nurse", Location: "Delhi", Type: "WFH", Experience: "Fresher"},
	}})
	return m
}

func sendKeys(m jobsModel, keys ...string) jobsModel {
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

func TestJobsLoadedView(t *testing.T) {
	m := newTestJobs()
	view := m.View()
	for _, want := range []string{"(Live API)", "2 results", "Engineer", "Nurse", "Top Companies"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestJobsLoading(t *testing.T) {
	m := newJobsModel(nil, "")
	view := m.View()
	if !strings.Contains(view, "Loading jobs…") || strings.Contains(view, "(Live API)") {
		t.Errorf("unexpected loading view:\n%s", view)
	}
}

func TestJobsSearchFiltersLive(t *testing.T) {
	m := newTestJobs()
	m = sendKeys(m, "/", "p", "u", "n", "e")
	if !m.editing() {
		t.Fatal("search should capture keys")
	}
	got := m.visible()
	if len(got) != 1 || got[0].Title != "Engineer" {
		t.Fatalf("visible = %+v, want only Engineer", got)
	}
	m = sendKeys(m, "enter")
	if m.editing() {
		t.Error("enter should leave search mode")
	}
	if !strings.Contains(m.View(), "1 results") {
		t.Errorf("count not updated:\n%s", m.View())
	}
}

func TestJobsSearchEscClears(t *testing.T) {
	m := newTestJobs()
	m = sendKeys(m, "/", "x", "y", "z", "esc")
	if m.filter.Query != "" || len(m.visible()) != 2 {
		t.Errorf("esc should clear search: query=%q visible=%d", m.filter.Query, len(m.visible()))
	}
}

func TestJobsTypeFilter(t *testing.T) {
	m := newTestJobs()
	m = sendKeys(m, "t")
	if m.filter.Type != "WFH" {
		t.Fatalf("type = %q, want WFH", m.filter.Type)
	}
	for _, j := range m.visible() {
		if j.Type != "WFH" {
			t.Errorf("job %q has type %q", j.Title, j.Type)
		}
	}
	m = sendKeys(m, "x")
	if len(m.visible()) != 2 {
		t.Error("x should reset filters")
	}
}

func TestJobsNoMatches(t *testing.T) {
	m := newTestJobs()
	m = sendKeys(m, "/", "q", "q", "q", "enter")
	if !strings.Contains(m.View(), "No jobs found.") {
		t.Errorf("missing empty state:\n%s", m.View())
	}
}

func TestJobsLoadError(t *testing.T) {
	m := newJobsModel(nil, "")
	m, _ = m.Update(jobsLoadedMsg{err: errors.New("connection refused")})
	view := m.View()
	if !strings.Contains(view, "Failed to load jobs") || !strings.Contains(view, "0 results") {
		t.Errorf("unexpected error view:\n%s", view)
	}
}

func TestJobsEnterOpensDetail(t *testing.T) {
	m := newTestJobs()
	m = sendKeys(m, "j")
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter should navigate")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok || nav.path != "/jobs/2" {
		t.Errorf("cmd() = %#v, want navigate to /jobs/2", nav)
	}
}

func TestJobsCopyLink(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error { copied = s; return nil }
	defer func() { clipboardWrite = orig }()

	m := newTestJobs()
	_, cmd := m.Update(keyMsg("c"))
	if cmd == nil {
		t.Fatal("c should copy")
	}
	msg := cmd()
	if copied != "https://nemesisgroup.in/jobs/1" {
		t.Errorf("copied %q", copied)
	}
	m, _ = m.Update(msg)
	if !strings.Contains(m.View(), "link copied!") {
		t.Errorf("missing copy status:\n%s", m.View())
	}
}

func TestCycleOption(t *testing.T) {
	tests := []struct {
		opts    []string
		current string
		want    string
	}{
		{[]string{"All", "A", "B"}, "All", "A"},
		{[]string{"All", "A", "B"}, "B", "All"},
		{[]string{"All", "A"}, "missing", "All"},
		{nil, "x", "x"},
	}
	for _, tc := range tests {
		if got := cycleOption(tc.opts, tc.current); got != tc.want {
			t.Errorf("cycleOption(%v, %q) = %q, want %q", tc.opts, tc.current, got, tc.want)
		}
	}
}
