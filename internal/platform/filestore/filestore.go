// Package filestore stores avatar blobs as plain files on local disk,
// keyed by hero name.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// avatarExt is the extension every stored avatar gets, matching the
// upload contract (format validation is a collaborator concern).
const avatarExt = ".jpeg"

// ErrInvalidName is returned when a key would escape the storage directory.
var ErrInvalidName = errors.New("invalid avatar name")

// ErrAvatarNotFound is returned when no avatar is stored under the key.
var ErrAvatarNotFound = errors.New("avatar not found")

// Store is a disk-backed avatar store rooted at a single directory.
type Store struct {
	dir string
}

// New creates the storage directory if needed and returns a Store for it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create avatar directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the blob under the given name, replacing any previous one.
// The write goes to a temporary file first and is renamed into place so a
// concurrent read never observes a partial avatar.
func (s *Store) Save(name string, src io.Reader) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	tmp := filepath.Join(s.dir, uuid.NewString()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp avatar file: %w", err)
	}

	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write avatar: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close avatar file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to store avatar: %w", err)
	}
	return nil
}

// Exists reports whether an avatar is stored under the given name.
func (s *Store) Exists(name string) bool {
	path, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Open returns the stored avatar and its modification time.
// Returns ErrAvatarNotFound when no avatar exists for the name.
func (s *Store) Open(name string) (io.ReadSeekCloser, time.Time, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, time.Time{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, time.Time{}, fmt.Errorf("%w: %s", ErrAvatarNotFound, name)
		}
		return nil, time.Time{}, fmt.Errorf("failed to open avatar: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, time.Time{}, fmt.Errorf("failed to stat avatar: %w", err)
	}
	return f, info.ModTime(), nil
}

// path resolves the file path for a name, rejecting keys that would
// escape the storage directory.
func (s *Store) path(name string) (string, error) {
	if name == "" ||
		strings.ContainsAny(name, `/\`) ||
		strings.Contains(name, "..") ||
		name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name+avatarExt), nil
}
