// Package frontend adapts the Go compiler frontend (go/parser and go/types)
// to the batch-compilation model the analyzer session works against: a task
// is built from a diagnostic sink and a set of compilable units, parsed as a
// whole, then analyzed as a whole so that cross-file references resolve.
package frontend

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Kind classifies a raw compiler diagnostic before severity mapping.
type Kind uint8

const (
	// KindFatal marks diagnostics that prevent a valid compilation:
	// unreadable sources, parse errors, hard type errors.
	KindFatal Kind = iota
	// KindWarning marks soft type errors and lint findings.
	KindWarning
	// KindMandatoryWarning marks warnings the lint category forces on.
	KindMandatoryWarning
	// KindNote marks informational diagnostics.
	KindNote
	// KindOther covers everything the frontend cannot classify.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindWarning:
		return "warning"
	case KindMandatoryWarning:
		return "mandatory-warning"
	case KindNote:
		return "note"
	case KindOther:
		return "other"
	}
	return "unknown"
}

// Diagnostic is a raw frontend diagnostic. Start and End are byte offsets
// into the source named by Path; either may be -1 when the frontend only
// knows the generic position Pos. Line and Col are 1-based.
type Diagnostic struct {
	Path    string
	Kind    Kind
	Message string
	Start   int
	End     int
	Pos     int
	Line    int
	Col     int
}

// StartOffset returns the preferred start offset: the explicit start
// position when present, the generic position otherwise.
func (d Diagnostic) StartOffset() int {
	if d.Start >= 0 {
		return d.Start
	}
	return d.Pos
}

// EndOffset returns the end offset, collapsed to the start for point
// diagnostics.
func (d Diagnostic) EndOffset() int {
	if d.End >= d.StartOffset() {
		return d.End
	}
	return d.StartOffset()
}

// Sink receives diagnostics as the frontend emits them. Implementations
// choose the delivery policy (forward, collect, discard).
type Sink interface {
	Diag(d Diagnostic)
}

// CompilableUnit is one source file's identity plus its content source.
// Contents are resolved lazily when the compile reads them, never at
// registration time. A stream override is drained on first read and the
// bytes retained, since a compile may run more than once per unit.
type CompilableUnit struct {
	Path string

	mu      sync.Mutex
	text    []byte
	hasText bool
	reader  io.Reader
}

// UnitFromFile returns a unit whose contents are read from disk at compile
// time.
func UnitFromFile(path string) *CompilableUnit {
	return &CompilableUnit{Path: path}
}

// UnitFromText returns a unit backed by the given literal contents.
func UnitFromText(path, text string) *CompilableUnit {
	return &CompilableUnit{Path: path, text: []byte(text), hasText: true}
}

// UnitFromReader returns a unit backed by a stream. The stream is read once,
// at the first compile that touches the unit.
func UnitFromReader(path string, r io.Reader) *CompilableUnit {
	return &CompilableUnit{Path: path, reader: r}
}

// Content resolves the unit's current contents.
func (u *CompilableUnit) Content() ([]byte, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.hasText {
		return u.text, nil
	}
	if u.reader != nil {
		b, err := io.ReadAll(u.reader)
		if err != nil {
			return nil, fmt.Errorf("frontend: read stream for %s: %w", u.Path, err)
		}
		u.text = b
		u.hasText = true
		u.reader = nil
		return u.text, nil
	}
	b, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, fmt.Errorf("frontend: read %s: %w", u.Path, err)
	}
	return b, nil
}
