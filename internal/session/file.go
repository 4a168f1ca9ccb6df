package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/nemesisgroup/jobportal/pkg/logger"
)

// FileStorage keeps one file per key in a private directory (~/.nemesis by
// default). Several terminals can share it; Watch reports their writes.
type FileStorage struct {
	dir string
	log zerolog.Logger
}

// NewFileStorage returns a FileStorage rooted at dir, creating it if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("session: create storage dir: %w", err)
	}
	return &FileStorage{
		dir: dir,
		log: logger.Get().With().Str("component", "file-storage").Logger(),
	}, nil
}

// Dir returns the storage directory.
func (f *FileStorage) Dir() string { return f.dir }

func (f *FileStorage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("session: invalid key %q", key)
	}
	return filepath.Join(f.dir, key), nil
}

func (f *FileStorage) Get(_ context.Context, key string) (string, error) {
	p, err := f.path(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: read %s: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes value atomically: a temp file is renamed over the key so a
// concurrent reader never sees a half-written record.
func (f *FileStorage) Set(_ context.Context, key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, "."+key+".*")
	if err != nil {
		return fmt.Errorf("session: write %s: %w", key, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("session: write %s: %w", key, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("session: chmod %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("session: replace %s: %w", key, err)
	}
	return nil
}

func (f *FileStorage) Remove(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: remove %s: %w", key, err)
	}
	return nil
}

// Watch reports create/write/remove/rename events for files in the storage
// directory. Temp files from Set are filtered out.
func (f *FileStorage) Watch(ctx context.Context) (<-chan StorageEvent, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("session: new watcher: %w", err)
	}
	if err := w.Add(f.dir); err != nil {
		w.Close() //nolint:errcheck
		return nil, fmt.Errorf("session: watch %s: %w", f.dir, err)
	}

	out := make(chan StorageEvent, 16)
	go func() {
		defer close(out)
		defer w.Close() //nolint:errcheck
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				key := filepath.Base(ev.Name)
				if strings.HasPrefix(key, ".") || ev.Op == fsnotify.Chmod {
					continue
				}
				select {
				case out <- StorageEvent{Key: key}:
				case <-ctx.Done():
					return
				}
			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				f.log.Warn().Err(werr).Msg("storage watch error")
			}
		}
	}()
	return out, nil
}
