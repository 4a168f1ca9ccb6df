package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nemesisgroup/jobportal/pkg/domain"
	"github.com/nemesisgroup/jobportal/pkg/logger"
)

// Store reads and writes the session record.
type Store struct {
	storage Storage
	log     zerolog.Logger
}

// NewStore returns a Store over storage.
func NewStore(storage Storage) *Store {
	return &Store{
		storage: storage,
		log:     logger.Get().With().Str("component", "session-store").Logger(),
	}
}

// Storage returns the backing storage.
func (s *Store) Storage() Storage { return s.storage }

// Read returns the stored session, or the zero session when the record is
// absent, partial or corrupt. It never fails; problems are logged.
func (s *Store) Read(ctx context.Context) domain.Session {
	token, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn().Err(err).Msg("read token")
		}
		return domain.Session{}
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Session{}
	}

	raw, err := s.storage.Get(ctx, KeyUser)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn().Err(err).Msg("read user")
		}
		return domain.Session{}
	}

	var user *domain.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn().Err(err).Msg("stored user is not valid JSON")
		return domain.Session{}
	}
	if user == nil {
		return domain.Session{}
	}
	if user.Role == "" {
		if role, err := s.storage.Get(ctx, KeyRole); err == nil {
			user.Role = domain.Role(role)
		}
	}
	return domain.Session{Token: token, User: user}
}

// Write persists sess. The role hint is written alongside the user record.
func (s *Store) Write(ctx context.Context, sess domain.Session) error {
	if !sess.Authenticated() {
		return errors.New("session: write requires token and user")
	}
	data, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	// User first: a watcher reacting to the token write must find a full record.
	if err := s.storage.Set(ctx, KeyUser, string(data)); err != nil {
		return err
	}
	if err := s.storage.Set(ctx, KeyRole, string(sess.User.Role)); err != nil {
		return err
	}
	return s.storage.Set(ctx, KeyToken, sess.Token)
}

// Clear removes the token, user and role keys.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, k := range []string{KeyToken, KeyUser, KeyRole} {
		if err := s.storage.Remove(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReadAdminToken returns the admin console token, or "".
func (s *Store) ReadAdminToken(ctx context.Context) string {
	tok, err := s.storage.Get(ctx, KeyAdminToken)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn().Err(err).Msg("read admin token")
		}
		return ""
	}
	return strings.TrimSpace(tok)
}

// WriteAdminToken stores the admin console token.
func (s *Store) WriteAdminToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("session: empty admin token")
	}
	return s.storage.Set(ctx, KeyAdminToken, token)
}

// ClearAdmin removes the admin console token.
func (s *Store) ClearAdmin(ctx context.Context) error {
	return s.storage.Remove(ctx, KeyAdminToken)
}
