// Package cache provides the cached BuildManager: an in-memory map of built
// solids backed by a directory of persisted entries.
//
// Entries are never invalidated. A persisted file written by an earlier run
// under the same key is trusted as is, even if the builder that produced it
// has since changed in a way its key does not capture.
package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// Stats counts how each Build call was served.
type Stats struct {
	MemoryHits int64
	DiskHits   int64
	Builds     int64
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore persists built solids in s and loads them from it on a memory miss.
func WithStore(s *Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithManifest records every persisted entry in mf, tagged with runID.
// It has no effect without a store.
func WithManifest(mf *Manifest, runID string) Option {
	return func(m *Manager) {
		m.manifest = mf
		m.runID = runID
	}
}

// Manager is a BuildManager that builds each distinct cache key at most once
// per run. It is safe for concurrent use: concurrent requests for the same key
// wait for a single build, and every caller receives its own copy.
type Manager struct {
	store    *Store
	manifest *Manifest
	runID    string

	mu      sync.Mutex
	entries map[string]*entry

	memoryHits atomic.Int64
	diskHits   atomic.Int64
	builds     atomic.Int64
}

// entry holds the pristine solid for one key. done is closed once mesh or err is set.
type entry struct {
	done chan struct{}
	mesh *mesh.Mesh
	err  error
}

var _ board.BuildManager = (*Manager)(nil)

// NewManager creates an empty cache. Without WithStore it is memory only.
func NewManager(opts ...Option) *Manager {
	m := &Manager{entries: make(map[string]*entry)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Build returns a copy of the solid for b, building or loading it on first use.
// A persisted entry that fails to decode is returned as an error; it is not
// rebuilt.
func (m *Manager) Build(b board.Builder) (*mesh.Mesh, error) {
	key := b.CacheKey()

	m.mu.Lock()
	if e, ok := m.entries[key]; ok {
		m.mu.Unlock()
		<-e.done
		if e.err != nil {
			return nil, e.err
		}
		m.memoryHits.Add(1)
		logrus.Debugf("cache: memory hit %s", key)
		return e.mesh.Clone(), nil
	}
	e := &entry{done: make(chan struct{})}
	m.entries[key] = e
	m.mu.Unlock()

	// a panicking builder must still release the callers waiting on e
	defer func() {
		if r := recover(); r != nil {
			e.err = fmt.Errorf("build %s: panic: %v", key, r)
			m.forget(key)
			close(e.done)
			panic(r)
		}
	}()

	e.mesh, e.err = m.fill(b, key)
	if e.err != nil {
		m.forget(key)
	}
	close(e.done)

	if e.err != nil {
		return nil, e.err
	}
	return e.mesh.Clone(), nil
}

func (m *Manager) forget(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

func (m *Manager) fill(b board.Builder, key string) (*mesh.Mesh, error) {
	if m.store != nil {
		solid, ok, err := m.store.Load(key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		if ok {
			m.diskHits.Add(1)
			logrus.Debugf("cache: disk hit %s", key)
			return solid, nil
		}
	}

	solid, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", key, err)
	}
	if err := solid.Validate(); err != nil {
		return nil, fmt.Errorf("build %s: %w", key, err)
	}
	m.builds.Add(1)
	logrus.Debugf("cache: built %s (%d faces)", key, len(solid.Faces))

	if m.store == nil {
		return solid, nil
	}
	file, err := m.store.Save(key, solid)
	if err != nil {
		return nil, fmt.Errorf("persist %s: %w", key, err)
	}
	if m.manifest != nil {
		err := m.manifest.Record(context.Background(), Entry{
			Key:       key,
			File:      file,
			Kind:      board.KeyKind(key),
			Vertices:  len(solid.Vertices),
			Faces:     len(solid.Faces),
			RunID:     m.runID,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return nil, err
		}
	}
	return solid, nil
}

// Stats returns the hit and build counters.
func (m *Manager) Stats() Stats {
	return Stats{
		MemoryHits: m.memoryHits.Load(),
		DiskHits:   m.diskHits.Load(),
		Builds:     m.builds.Load(),
	}
}

// Len returns the number of keys held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
