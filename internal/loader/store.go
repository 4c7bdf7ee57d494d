package loader

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"rinkmetrics/domain/core"
	"rinkmetrics/domain/registration"
	"rinkmetrics/internal"
)

// Store caches normalized registration tables per source path for the
// lifetime of the process. Tables are immutable once loaded, so concurrent
// readers need no coordination; the only guarded moment is first population,
// where singleflight collapses concurrent loads of the same source into one
// read. The source is treated as immutable per session — there is no
// invalidation.
type Store struct {
	loader *Loader
	shape  Shape
	logger *internal.Logger

	mu     sync.RWMutex
	tables map[string]*registration.Table
	group  singleflight.Group
}

// NewStore creates a table store around a loader
func NewStore(loader *Loader, shape Shape) *Store {
	return &Store{
		loader: loader,
		shape:  shape,
		logger: internal.DefaultLogger,
		tables: make(map[string]*registration.Table),
	}
}

// Get returns the cached table for path, loading it on first access
func (s *Store) Get(path string) (*registration.Table, error) {
	s.mu.RLock()
	table, ok := s.tables[path]
	s.mu.RUnlock()
	if ok {
		return table, nil
	}

	result, err, _ := s.group.Do(path, func() (interface{}, error) {
		// Re-check under the flight: a previous caller may have stored it
		// between our RUnlock and Do.
		s.mu.RLock()
		cached, ok := s.tables[path]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := s.loader.Load(path, s.shape)
		if err != nil {
			return nil, err
		}

		snapshotID := core.SnapshotID(core.NewID())
		s.logger.Info("[Store] Loaded %s: %d records (snapshot %s)", path, loaded.Len(), snapshotID)

		s.mu.Lock()
		s.tables[path] = loaded
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*registration.Table), nil
}

// Loaded reports whether a table for path is already cached
func (s *Store) Loaded(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[path]
	return ok
}
