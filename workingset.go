package ensime

import (
	"sort"
	"sync"

	"github.com/myrjola/ensime-server/internal/frontend"
)

// WorkingSet is the session's registry of compilable units, keyed by path.
// Every put is visible to the next compile, whichever query triggers it;
// entries are never evicted, so a stale file keeps participating in every
// batch until overwritten. Callers needing removal semantics layer them on
// top.
type WorkingSet struct {
	mu    sync.RWMutex
	units map[string]*frontend.CompilableUnit
}

// NewWorkingSet returns an empty registry.
func NewWorkingSet() *WorkingSet {
	return &WorkingSet{units: make(map[string]*frontend.CompilableUnit)}
}

// Put registers or replaces the unit for a path. Last write wins.
func (w *WorkingSet) Put(unit *frontend.CompilableUnit) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.units[unit.Path] = unit
}

// Get returns the unit registered for path, if any.
func (w *WorkingSet) Get(path string) (*frontend.CompilableUnit, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	u, ok := w.units[path]
	return u, ok
}

// Snapshot returns every registered unit, sorted by path so batch compiles
// see a stable order.
func (w *WorkingSet) Snapshot() []*frontend.CompilableUnit {
	w.mu.RLock()
	defer w.mu.RUnlock()
	units := make([]*frontend.CompilableUnit, 0, len(w.units))
	for _, u := range w.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Path < units[j].Path })
	return units
}

// Len returns the number of registered units.
func (w *WorkingSet) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.units)
}
