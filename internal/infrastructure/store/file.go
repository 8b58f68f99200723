package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/foodcritique/critique-web/internal/core/ports"
)

// fileDocument is the on-disk layout: one entry per profile.
type fileDocument struct {
	Profiles map[string]ports.Credentials `yaml:"profiles"`
}

// FileStore persists credentials for the command-line client in a YAML file
// readable only by its owner. The visitor id selects a profile.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultCredentialsPath returns $XDG_CONFIG_HOME/critique/credentials.yaml
// or its platform equivalent.
func DefaultCredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "critique", "credentials.yaml"), nil
}

func (f *FileStore) Load(_ context.Context, visitorID string) (ports.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return ports.Credentials{}, err
	}
	return doc.Profiles[visitorID], nil
}

func (f *FileStore) Save(_ context.Context, visitorID string, c ports.Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	doc.Profiles[visitorID] = c
	return f.write(doc)
}

func (f *FileStore) Clear(_ context.Context, visitorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := doc.Profiles[visitorID]; !ok {
		return nil
	}
	delete(doc.Profiles, visitorID)
	return f.write(doc)
}

func (f *FileStore) read() (*fileDocument, error) {
	doc := &fileDocument{}
	data, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read credentials: %w", err)
	default:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parse credentials %s: %w", f.path, err)
		}
	}
	if doc.Profiles == nil {
		doc.Profiles = make(map[string]ports.Credentials)
	}
	return doc, nil
}

func (f *FileStore) write(doc *fileDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}
