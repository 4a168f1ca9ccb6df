package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nemesisgroup/jobportal/internal/session"
	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/domain"
)

func newLoginServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req client.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"token": "tok-" + string(req.Role),
			"user":  map[string]any{"id": 5, "name": "Meera", "email": req.Email, "role": req.Role},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestSessionContext() (*session.Context, *session.MemoryStorage) {
	mem := session.NewMemoryStorage()
	return session.NewContext(context.Background(), session.NewStore(mem)), mem
}

func fillAuth(m authModel, email, password string, employer bool) authModel {
	for _, r := range email {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, _ = m.Update(keyMsg("tab"))
	for _, r := range password {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, _ = m.Update(keyMsg("tab"))
	if employer {
		m.form = m.form.cycle(true)
	}
	return m
}

func TestAuthValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{"missing email", "", "secret1", "Email is required"},
		{"bad email", "nope", "secret1", "Email must be a valid email address"},
		{"short password", "a@b.co", "abc", "Password must be at least 6 characters"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newAuthModel(nil, nil, domain.Session{})
			m = fillAuth(m, tc.email, tc.password, false)
			m, cmd := m.Update(keyMsg("enter"))
			if cmd != nil {
				t.Error("invalid form should not submit")
			}
			if !strings.Contains(m.View(), tc.want) {
				t.Errorf("view missing %q:\n%s", tc.want, m.View())
			}
		})
	}
}

func TestAuthSignInRedirectsByRole(t *testing.T) {
	tests := []struct {
		name     string
		employer bool
		wantPath string
		wantRole string
	}{
		{"candidate", false, "/candidate", "candidate"},
		{"employer", true, "/employer", "employer"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newLoginServer(t)
			sess, mem := newTestSessionContext()

			m := newAuthModel(client.New(srv.URL, ""), sess, domain.Session{})
			m = fillAuth(m, "meera@example.com", "secret1", tc.employer)
			m, cmd := m.Update(keyMsg("enter"))
			if cmd == nil {
				t.Fatal("valid form should submit")
			}
			if !strings.Contains(m.View(), "Signing in...") {
				t.Error("missing submitting state")
			}

			m, cmd = m.Update(cmd())
			if cmd == nil {
				t.Fatal("success should navigate")
			}
			nav, ok := cmd().(navigateMsg)
			if !ok || nav.path != tc.wantPath {
				t.Errorf("navigate = %#v, want %s", nav, tc.wantPath)
			}

			role, _ := mem.Get(context.Background(), session.KeyRole)
			if role != tc.wantRole || !mem.Has(session.KeyToken) || !mem.Has(session.KeyUser) {
				t.Errorf("session not persisted: role=%q", role)
			}
			if got := sess.Current(); got.Role() != domain.Role(tc.wantRole) {
				t.Errorf("Current().Role() = %q", got.Role())
			}
		})
	}
}

func TestAuthInvalidCredentials(t *testing.T) {
	srv := newLoginServer(t)
	sess, mem := newTestSessionContext()

	m := newAuthModel(client.New(srv.URL, ""), sess, domain.Session{})
	m = fillAuth(m, "meera@example.com", "wrong12", false)
	m, cmd := m.Update(keyMsg("enter"))
	m, _ = m.Update(cmd())

	if !strings.Contains(m.View(), "Invalid email or password") {
		t.Errorf("missing error:\n%s", m.View())
	}
	if mem.Has(session.KeyToken) {
		t.Error("failed login must not store a token")
	}
}

func TestAuthEscGoesBack(t *testing.T) {
	m := newAuthModel(nil, nil, domain.Session{})
	_, cmd := m.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(backMsg); !ok {
		t.Error("esc should go back")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	sess, mem := newTestSessionContext()
	ctx := context.Background()
	if err := sess.SignIn(ctx, domain.Session{Token: "t", User: &domain.AuthUser{Name: "A", Role: domain.RoleCandidate}}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	msg := logoutCmd(sess)()
	if nav, ok := msg.(navigateMsg); !ok || nav.path != "/auth" {
		t.Errorf("logout msg = %#v, want navigate to /auth", msg)
	}
	for _, k := range []string{session.KeyToken, session.KeyUser, session.KeyRole} {
		if mem.Has(k) {
			t.Errorf("%s still stored after logout", k)
		}
	}
	if sess.Current().Authenticated() {
		t.Error("context still authenticated")
	}
}
