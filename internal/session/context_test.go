package session

import (
	"context"
	"testing"
	"time"

	"github.com/nemesisgroup/jobportal/pkg/domain"
)

func testSession() domain.Session {
	return domain.Session{Token: "tok", User: &domain.AuthUser{ID: "1", Name: "Asha", Role: domain.RoleCandidate}}
}

func waitSession(t *testing.T, ch <-chan domain.Session) domain.Session {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			t.Fatal("subscription closed")
		}
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session update")
	}
	return domain.Session{}
}

func startRun(t *testing.T, c *Context, w Watcher) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx, w) //nolint:errcheck
	}()
	deadline := time.Now().Add(2 * time.Second)
	for !c.running.Load() {
		if time.Now().After(deadline) {
			t.Fatal("Run did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return func() {
		cancel()
		<-done
	}
}

func TestContextLoadsInitialSession(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	NewStore(mem).Write(ctx, testSession()) //nolint:errcheck

	c := NewContext(ctx, NewStore(mem))
	if !c.Current().Equal(testSession()) {
		t.Errorf("Current() = %+v, want %+v", c.Current(), testSession())
	}
}

func TestContextSubscribeCancel(t *testing.T) {
	c := NewContext(context.Background(), NewStore(NewMemoryStorage()))
	ch, cancel := c.Subscribe()
	if c.subscribers() != 1 {
		t.Fatalf("subscribers() = %d, want 1", c.subscribers())
	}
	cancel()
	cancel()
	if c.subscribers() != 0 {
		t.Errorf("subscribers() = %d after cancel, want 0", c.subscribers())
	}
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after cancel")
	}
	// Refresh after cancel must not panic on the closed channel.
	c.Refresh(context.Background(), SourceNavigate)
}

func TestContextSubscriberKeepsLatest(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	store := NewStore(mem)
	c := NewContext(ctx, store)
	ch, cancel := c.Subscribe()
	defer cancel()

	store.Write(ctx, testSession()) //nolint:errcheck
	c.Refresh(ctx, SourceNavigate)
	store.Clear(ctx) //nolint:errcheck
	c.Refresh(ctx, SourceNavigate)

	got := waitSession(t, ch)
	if got.Authenticated() {
		t.Errorf("expected latest (signed out) session, got %+v", got)
	}
	select {
	case s := <-ch:
		t.Errorf("expected a single buffered value, got extra %+v", s)
	default:
	}
}

func TestContextNotifyWithoutRunRefreshesInline(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	c := NewContext(ctx, NewStore(mem))

	if err := c.SignIn(ctx, testSession()); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if !c.Current().Authenticated() {
		t.Error("expected Current() to reflect SignIn immediately")
	}
	if err := c.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if c.Current().Authenticated() {
		t.Error("expected Current() to be signed out")
	}
	for _, k := range []string{KeyToken, KeyUser, KeyRole} {
		if mem.Has(k) {
			t.Errorf("key %s present after SignOut", k)
		}
	}
}

func TestContextRunRefreshesOnTrackedStorageEvent(t *testing.T) {
	for _, key := range []string{KeyToken, KeyUser, KeyRole, KeyAdminToken} {
		t.Run(key, func(t *testing.T) {
			ctx := context.Background()
			mem := NewMemoryStorage()
			c := NewContext(ctx, NewStore(mem))
			ch, cancel := c.Subscribe()
			defer cancel()

			stop := startRun(t, c, mem)
			defer stop()

			mem.Set(ctx, key, "x") //nolint:errcheck
			waitSession(t, ch)
		})
	}
}

func TestContextRunIgnoresUntrackedKeys(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	c := NewContext(ctx, NewStore(mem))
	ch, cancel := c.Subscribe()
	defer cancel()

	stop := startRun(t, c, mem)
	defer stop()

	mem.Set(ctx, "theme", "dark") //nolint:errcheck
	select {
	case s := <-ch:
		t.Errorf("unexpected refresh for untracked key: %+v", s)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestContextRunPicksUpWriteFromAnotherProcess(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	c := NewContext(ctx, NewStore(mem))
	ch, cancel := c.Subscribe()
	defer cancel()

	stop := startRun(t, c, mem)
	defer stop()

	// A second store over the same storage stands in for another terminal.
	other := NewStore(mem)
	other.Write(ctx, testSession()) //nolint:errcheck

	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-ch:
			if s.Authenticated() {
				return
			}
		case <-deadline:
			t.Fatal("never observed the signed-in session")
		}
	}
}

func TestContextRunHandlesAuthChanged(t *testing.T) {
	ctx := context.Background()
	c := NewContext(ctx, NewStore(NewMemoryStorage()))
	ch, cancel := c.Subscribe()
	defer cancel()

	stop := startRun(t, c, nil)
	defer stop()

	if err := c.SignIn(ctx, testSession()); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if got := waitSession(t, ch); !got.Authenticated() {
		t.Errorf("expected signed-in session, got %+v", got)
	}
}
