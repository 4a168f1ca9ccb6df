// Package session persists the signed-in user between runs and keeps every
// open view in sync with it.
//
// The session record lives in a small key/value Storage under three keys
// (token, user JSON, role hint). Store reads and writes that record; Context
// caches it for the UI and reloads it whenever the auth-changed event fires,
// a tracked storage key changes (possibly from another process) or the user
// navigates.
package session

import (
	"context"
	"errors"
)

// Storage keys. Presence or absence of these is the whole session contract.
const (
	KeyToken      = "jp_token"
	KeyUser       = "jp_user"
	KeyRole       = "jp_role"
	KeyAdminToken = "jp_admin_token"
)

// trackedKeys are the keys whose storage events force a session reload.
var trackedKeys = map[string]bool{
	KeyToken:      true,
	KeyUser:       true,
	KeyRole:       true,
	KeyAdminToken: true,
}

// IsTracked reports whether a change to key affects the session.
func IsTracked(key string) bool { return trackedKeys[key] }

// ErrNotFound is returned by Storage.Get when the key is absent.
var ErrNotFound = errors.New("session: key not found")

// Storage is a string key/value store, the counterpart of browser local
// storage.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// StorageEvent reports that a key was written or removed.
type StorageEvent struct {
	Key string
}

// Watcher delivers storage events, including ones caused by other processes.
// The channel is closed when ctx is done.
type Watcher interface {
	Watch(ctx context.Context) (<-chan StorageEvent, error)
}
