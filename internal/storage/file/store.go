// Package file persists store records as one JSON file per key inside a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

const ext = ".json"

// Store writes each key to <dir>/<key>.json. Every file is replaced with a rename so a crash
// never leaves a half written value behind.
type Store struct {
	dir string
	mu  sync.Mutex
}

var _ inventory.Repository = (*Store)(nil)

// New creates dir if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, inventory.ErrKeyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	return data, nil
}

// staged is one record written to its temp file, with the backup of the file it replaces.
type staged struct{ temp, path, backup string }

// Put stages every record in a temp file, then swaps them in one at a time. Each existing file
// is hard-linked to a backup before it is replaced; if any swap fails the keys already replaced
// are restored from their backups, so a failed write leaves all keys at their previous value.
func (s *Store) Put(ctx context.Context, records ...inventory.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]staged, 0, len(records))

	cleanup := func() {
		for _, st := range pending {
			_ = os.Remove(st.temp)
		}
	}

	for _, r := range records {
		path, err := s.path(r.Key)
		if err != nil {
			cleanup()
			return err
		}

		temp := path + ".tmp"
		if err := os.WriteFile(temp, r.Value, 0o644); err != nil {
			cleanup()
			return fmt.Errorf("writing %s: %w", r.Key, err)
		}

		pending = append(pending, staged{temp: temp, path: path})
	}

	for i := range pending {
		st := &pending[i]

		err := backup(st.path, st.path+".bak")
		switch {
		case err == nil:
			st.backup = st.path + ".bak"
		case !errors.Is(err, fs.ErrNotExist):
			rollback(pending[:i])
			pending = pending[i:]
			cleanup()

			return fmt.Errorf("backing up %s: %w", filepath.Base(st.path), err)
		}

		if err := os.Rename(st.temp, st.path); err != nil {
			if st.backup != "" {
				_ = os.Remove(st.backup)
			}

			rollback(pending[:i])
			pending = pending[i:]
			cleanup()

			return fmt.Errorf("replacing %s: %w", filepath.Base(st.path), err)
		}
	}

	for _, st := range pending {
		if st.backup != "" {
			_ = os.Remove(st.backup)
		}
	}

	return nil
}

// backup links path to dst, copying when the filesystem refuses hard links.
// It returns fs.ErrNotExist when there is nothing to back up.
func backup(path, dst string) error {
	if _, err := os.Lstat(path); err != nil {
		return err
	}

	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.Link(path, dst); err == nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		_ = os.Remove(dst)
		return err
	}

	return nil
}

// rollback puts back the previous content of files that were already replaced, newest first.
// Files that did not exist before are removed.
func rollback(done []staged) {
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if st.backup == "" {
			_ = os.Remove(st.path)
			continue
		}

		_ = os.Rename(st.backup, st.path)
	}
}

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}

	return filepath.Join(s.dir, key+ext), nil
}
