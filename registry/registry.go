// Package registry persists named query option sets to a YAML file, so
// frequently-used descriptors can be rebuilt by name. Entries store the raw
// options, not the resolved descriptor: resolution happens against whatever
// schema the caller supplies at rebuild time.
//
// The file is guarded twice: an in-process RWMutex for goroutine safety and
// a cross-process flock so concurrent invocations cannot corrupt it.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no entry exists under the requested name
var ErrNotFound = errors.New("named query not found")

// Entry is one saved query option set
type Entry struct {
	// ID is a stable identifier assigned when the entry is first saved
	ID string `yaml:"id"`

	// Name is the caller-facing key; saving under an existing name
	// replaces the entry's options
	Name string `yaml:"name"`

	// Model names the model the options were written for
	Model string `yaml:"model"`

	// Options holds the raw construction options
	Options map[string]any `yaml:"options"`

	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// registryData is the on-disk document
type registryData struct {
	Version   string    `yaml:"version"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Entries   []Entry   `yaml:"entries"`
}

// Registry is a file-backed named query library
type Registry struct {
	path     string
	mu       sync.RWMutex
	fileLock *flock.Flock
	data     *registryData
	timeFunc func() time.Time
}

const (
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

// Open loads (or initializes) a registry at the given path. The file is
// created lazily on first save.
func Open(path string) (*Registry, error) {
	r := &Registry{
		path:     path,
		fileLock: flock.New(path + ".lock"),
		data: &registryData{
			Version: "1.0",
		},
		timeFunc: time.Now,
	}
	if err := r.loadWithLock(); err != nil {
		return nil, err
	}
	return r, nil
}

// SetTimeFunc sets a custom time function for deterministic tests
func (r *Registry) SetTimeFunc(fn func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeFunc = fn
}

// Save stores options under a name, replacing any previous entry with that
// name. It returns the stored entry.
func (r *Registry) Save(name, model string, options map[string]any) (Entry, error) {
	if name == "" {
		return Entry{}, fmt.Errorf("entry name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.timeFunc()
	entry := Entry{
		ID:        uuid.New().String(),
		Name:      name,
		Model:     model,
		Options:   options,
		CreatedAt: now,
		UpdatedAt: now,
	}

	replaced := false
	for i, existing := range r.data.Entries {
		if existing.Name == name {
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			r.data.Entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		r.data.Entries = append(r.data.Entries, entry)
	}

	if err := r.saveWithLock(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Get returns the entry saved under a name
func (r *Registry) Get(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.data.Entries {
		if entry.Name == name {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// List returns all entries in saved order
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, len(r.data.Entries))
	copy(entries, r.data.Entries)
	return entries
}

// Delete removes the entry saved under a name
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.data.Entries {
		if entry.Name == name {
			r.data.Entries = append(r.data.Entries[:i], r.data.Entries[i+1:]...)
			return r.saveWithLock()
		}
	}
	return fmt.Errorf("%q: %w", name, ErrNotFound)
}

// acquireLock attempts the cross-process lock with a bounded wait
func (r *Registry) acquireLock(ctx context.Context) error {
	locked, err := r.fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire registry lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("registry lock is held by another process")
	}
	return nil
}

// loadWithLock reads the registry file under the cross-process lock
func (r *Registry) loadWithLock() error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := r.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = r.fileLock.Unlock() }()

	return r.load()
}

// load reads the file into memory; a missing or empty file is a fresh
// registry, not an error
func (r *Registry) load() error {
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("failed to read registry file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var doc registryData
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse registry file: %w", err)
	}
	r.data = &doc
	return nil
}

// saveWithLock writes the registry file under the cross-process lock
func (r *Registry) saveWithLock() error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := r.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = r.fileLock.Unlock() }()

	return r.save()
}

// save writes atomically: temp file then rename
func (r *Registry) save() error {
	r.data.UpdatedAt = r.timeFunc()

	data, err := yaml.Marshal(r.data)
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	tmpFile := r.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, r.path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename registry file: %w", err)
	}
	return nil
}
