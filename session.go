package ensime

import (
	"context"

	"github.com/myrjola/ensime-server/internal/frontend"
	"github.com/myrjola/ensime-server/internal/index"
)

// Session owns one analysis session: the working set of open sources, the
// report handler diagnostics flow to, and an optional cross-file symbol
// index. It is safe for concurrent use; every query runs its own batch
// compile over the whole working set and discards the result, so there is
// no compiled state to invalidate between calls.
//
// Each call is O(working-set size). That is the deliberate trade of the
// whole-set strategy: the frontend's batch model needs every open file to
// resolve cross-file references, and redundant recompilation is cheaper to
// reason about than partial staleness.
//
// Cancellation is the caller's responsibility: a compile runs to completion
// unless the context passed in is cancelled.
type Session struct {
	working *WorkingSet
	handler ReportHandler
	idx     *index.Index
	lint    string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithReportHandler routes active-sink notes to h instead of discarding
// them.
func WithReportHandler(h ReportHandler) SessionOption {
	return func(s *Session) { s.handler = h }
}

// WithIndex attaches a symbol index consulted by definition lookups that
// miss within a single compiled unit.
func WithIndex(idx *index.Index) SessionOption {
	return func(s *Session) { s.idx = idx }
}

// WithLint sets the frontend lint category.
func WithLint(category string) SessionOption {
	return func(s *Session) { s.lint = category }
}

// NewSession creates a session with an empty working set.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		working: NewWorkingSet(),
		handler: nopReportHandler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WorkingSet exposes the session's registry.
func (s *Session) WorkingSet() *WorkingSet { return s.working }

// Intern registers or replaces the working-set entry for the handle's path.
// The edit is global to the session: it is visible to the very next
// compile, whichever query triggers it.
func (s *Session) Intern(handle SourceHandle) {
	s.working.Put(handle.compilableUnit())
}

// TypecheckAll recompiles the entire working set with diagnostics routed to
// the report handler, clearing previously reported compiler notes first so
// stale notes never outlive a refresh. The compiled output is discarded;
// the call exists purely to refresh diagnostics.
func (s *Session) TypecheckAll(ctx context.Context) error {
	s.handler.ClearNotes(NoteKindCompiler)
	_, err := s.compile(ctx, newActiveSink(s.handler))
	return err
}

// TypecheckFiles interns each handle and then refreshes diagnostics for the
// whole working set.
func (s *Session) TypecheckFiles(ctx context.Context, handles []SourceHandle) error {
	for _, h := range handles {
		s.Intern(h)
	}
	return s.TypecheckAll(ctx)
}

// internForQuery interns a query target so unopened files join the working
// set, without letting a disk-backed handle clobber an in-memory override
// already registered for the path: the buffer holds the latest contents.
func (s *Session) internForQuery(h SourceHandle) {
	if !h.hasOverride() {
		if _, ok := s.working.Get(h.Path()); ok {
			return
		}
	}
	s.Intern(h)
}

// typecheckForHandles interns each target, silently recompiles the whole
// working set, and returns the compiled units whose identity matches a
// target, in discovery order rather than request order.
func (s *Session) typecheckForHandles(ctx context.Context, handles []SourceHandle) ([]*frontend.CompiledUnit, error) {
	units, err := s.typecheckWithSink(ctx, silentSink{}, handles)
	return units, err
}

// typecheckWithSink is typecheckForHandles with an explicit sink, for
// queries that derive answers from the diagnostics themselves.
func (s *Session) typecheckWithSink(ctx context.Context, sink frontend.Sink, handles []SourceHandle) ([]*frontend.CompiledUnit, error) {
	targets := make(map[string]bool, len(handles))
	for _, h := range handles {
		s.internForQuery(h)
		targets[h.Path()] = true
	}

	compiled, err := s.compile(ctx, sink)
	if err != nil {
		return nil, err
	}
	var out []*frontend.CompiledUnit
	for _, u := range compiled {
		if targets[u.Path] {
			out = append(out, u)
		}
	}
	return out, nil
}

// compiledUnitFor returns the compiled unit for one handle, or nil when
// compilation could not produce one. A nil unit is a miss, not a failure;
// queries turn it into their "no result" value.
func (s *Session) compiledUnitFor(ctx context.Context, handle SourceHandle) (*frontend.CompiledUnit, error) {
	units, err := s.typecheckForHandles(ctx, []SourceHandle{handle})
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, nil
	}
	return units[0], nil
}

// compile runs one batch compilation over the current working set. Output
// is fresh per call and never cached.
func (s *Session) compile(ctx context.Context, sink frontend.Sink) ([]*frontend.CompiledUnit, error) {
	task := frontend.NewTask(sink, s.working.Snapshot(), s.lint)
	if _, err := task.Parse(ctx); err != nil {
		return nil, err
	}
	return task.Analyze(ctx)
}
