package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/nemesisgroup/jobportal/pkg/domain"
	"github.com/nemesisgroup/jobportal/pkg/logger"
)

// AuthChangedEvent is the source name used when credentials are written
// by this process.
const AuthChangedEvent = "auth-changed"

// Refresh sources, used for logging.
const (
	SourceStartup  = "startup"
	SourceStorage  = "storage"
	SourceNavigate = "navigate"
)

// Context is the single shared view of the session. Views read Current and
// subscribe for changes; Run keeps it in sync with storage.
type Context struct {
	store *Store
	log   zerolog.Logger

	mu      sync.Mutex
	current domain.Session
	admin   string
	subs    map[int]chan domain.Session
	nextSub int

	changed chan struct{}
	running atomic.Bool
}

// NewContext loads the current session from store.
func NewContext(ctx context.Context, store *Store) *Context {
	c := &Context{
		store:   store,
		log:     logger.Get().With().Str("component", "session").Logger(),
		subs:    make(map[int]chan domain.Session),
		changed: make(chan struct{}, 1),
	}
	c.current = store.Read(ctx)
	c.admin = store.ReadAdminToken(ctx)
	c.log.Debug().Str("source", SourceStartup).Bool("authenticated", c.current.Authenticated()).Msg("session loaded")
	return c
}

// Store returns the underlying store.
func (c *Context) Store() *Store { return c.store }

// Current returns the cached session.
func (c *Context) Current() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AdminToken returns the cached admin token.
func (c *Context) AdminToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admin
}

// Refresh reloads the session from storage and broadcasts it to every
// subscriber. No diffing: listeners always receive the fresh read.
func (c *Context) Refresh(ctx context.Context, source string) domain.Session {
	sess := c.store.Read(ctx)
	admin := c.store.ReadAdminToken(ctx)

	c.mu.Lock()
	c.current = sess
	c.admin = admin
	for _, ch := range c.subs {
		deliverLatest(ch, sess)
	}
	c.mu.Unlock()

	c.log.Debug().Str("source", source).Bool("authenticated", sess.Authenticated()).Msg("session refreshed")
	return sess
}

// deliverLatest replaces any undelivered value in ch with sess.
func deliverLatest(ch chan domain.Session, sess domain.Session) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- sess:
	default:
	}
}

// Subscribe registers a listener. The returned cancel func deregisters it
// and closes the channel; it is safe to call more than once.
func (c *Context) Subscribe() (<-chan domain.Session, func()) {
	ch := make(chan domain.Session, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			close(ch)
			c.mu.Unlock()
		})
	}
}

// subscribers returns the number of registered listeners.
func (c *Context) subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// NotifyAuthChanged fires the auth-changed event. When Run is active the
// refresh happens on its goroutine; otherwise it happens inline.
func (c *Context) NotifyAuthChanged(ctx context.Context) {
	select {
	case c.changed <- struct{}{}:
	default:
		// A signal is already pending; it will read the latest record.
	}
	if !c.running.Load() {
		c.drainChanged()
		c.Refresh(ctx, AuthChangedEvent)
	}
}

func (c *Context) drainChanged() {
	select {
	case <-c.changed:
	default:
	}
}

// SignIn persists sess and fires the auth-changed event.
func (c *Context) SignIn(ctx context.Context, sess domain.Session) error {
	if err := c.store.Write(ctx, sess); err != nil {
		return err
	}
	c.NotifyAuthChanged(ctx)
	return nil
}

// SignOut clears the session keys and fires the auth-changed event.
func (c *Context) SignOut(ctx context.Context) error {
	err := c.store.Clear(ctx)
	c.NotifyAuthChanged(ctx)
	return err
}

// SignInAdmin stores the admin console token and fires the auth-changed event.
func (c *Context) SignInAdmin(ctx context.Context, token string) error {
	if err := c.store.WriteAdminToken(ctx, token); err != nil {
		return err
	}
	c.NotifyAuthChanged(ctx)
	return nil
}

// SignOutAdmin removes the admin console token.
func (c *Context) SignOutAdmin(ctx context.Context) error {
	err := c.store.ClearAdmin(ctx)
	c.NotifyAuthChanged(ctx)
	return err
}

// Run merges auth-changed signals and storage events for tracked keys into
// Refresh calls. watcher may be nil. Run blocks until ctx is done.
func (c *Context) Run(ctx context.Context, watcher Watcher) error {
	var events <-chan StorageEvent
	if watcher != nil {
		ch, err := watcher.Watch(ctx)
		if err != nil {
			return err
		}
		events = ch
	}

	c.running.Store(true)
	defer c.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.changed:
			c.Refresh(ctx, AuthChangedEvent)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !IsTracked(ev.Key) {
				continue
			}
			c.Refresh(ctx, SourceStorage)
		}
	}
}
