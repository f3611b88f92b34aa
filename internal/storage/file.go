package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StateFile is the name of the JSON document the file backend writes.
const StateFile = "state.json"

// BackupSuffix is appended to a corrupt state document when it is replaced.
const BackupSuffix = ".corrupt"

// File keeps every key in one JSON document under a data directory.
// Each Set rewrites the document through a temp file and rename. A write to
// an unreadable document moves it aside to BackupSuffix and starts over.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a file backend rooted at dataDir, creating the directory if needed.
func NewFile(dataDir string) (*File, error) {
	if dataDir == "" {
		return nil, errors.New("storage: data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dataDir, err)
	}
	return &File{path: filepath.Join(dataDir, StateFile)}, nil
}

// Path returns the location of the state document.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	value, ok := doc[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("storage: value for %q is not valid JSON", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.loadForWrite()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(append([]byte{}, value...))
	return f.save(doc)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return f.save(doc)
}

func (f *File) Close() error { return nil }

func (f *File) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s (moved aside on the next save): %v", ErrCorrupt, f.path, err)
	}
	return doc, nil
}

// loadForWrite is load for Set and Delete: a corrupt document is renamed
// aside and replaced by an empty one.
func (f *File) loadForWrite() (map[string]json.RawMessage, error) {
	doc, err := f.load()
	if !errors.Is(err, ErrCorrupt) {
		return doc, err
	}
	if err := os.Rename(f.path, f.path+BackupSuffix); err != nil {
		return nil, fmt.Errorf("move aside corrupt state file: %w", err)
	}
	return map[string]json.RawMessage{}, nil
}

func (f *File) save(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
