package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Stored is what survives between runs
type Stored struct {
	Secret string    `yaml:"secret"`
	UserID string    `yaml:"user_id,omitempty"`
	Expire time.Time `yaml:"expire,omitempty"`
}

// Store persists the session secret
type Store interface {
	Load() (*Stored, error)
	Save(s *Stored) error
	Clear() error
}

// FileStore keeps the session in a yaml file readable only by the owner
type FileStore struct {
	path string
}

// NewFileStore returns a store at path, or DefaultPath when path is empty
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: path}, nil
}

// DefaultPath returns ~/.faena/session.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".faena", "session.yaml"), nil
}

// Path returns the file location
func (f *FileStore) Path() string {
	return f.path
}

// Load returns nil when no session has been saved
func (f *FileStore) Load() (*Stored, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Stored
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	if s.Secret == "" {
		return nil, nil
	}
	return &s, nil
}

func (f *FileStore) Save(s *Stored) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(f.path, 0o600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore keeps the session in memory
type MemoryStore struct {
	stored *Stored
}

func (m *MemoryStore) Load() (*Stored, error) { return m.stored, nil }

func (m *MemoryStore) Save(s *Stored) error {
	cp := *s
	m.stored = &cp
	return nil
}

func (m *MemoryStore) Clear() error {
	m.stored = nil
	return nil
}
