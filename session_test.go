package ensime

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures every report-handler invocation for assertions.
type recordingHandler struct {
	mu     sync.Mutex
	notes  []Note
	clears []NoteKind
}

func (h *recordingHandler) Report(notes []Note) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notes = append(h.notes, notes...)
}

func (h *recordingHandler) ClearNotes(kind NoteKind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clears = append(h.clears, kind)
	h.notes = nil
}

func (h *recordingHandler) allNotes() []Note {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Note(nil), h.notes...)
}

func (h *recordingHandler) errorNotes() []Note {
	var out []Note
	for _, n := range h.allNotes() {
		if n.Severity == SeverityError {
			out = append(out, n)
		}
	}
	return out
}

func newTestSession(t *testing.T, handler ReportHandler) *Session {
	t.Helper()
	if handler == nil {
		return NewSession()
	}
	return NewSession(WithReportHandler(handler))
}

func TestIntern_VisibleToNextCompile(t *testing.T) {
	s := newTestSession(t, nil)
	s.Intern(TextSource("a.go", "package demo\n"))

	unit, ok := s.WorkingSet().Get("a.go")
	require.True(t, ok)
	assert.Equal(t, "a.go", unit.Path)

	units, err := s.typecheckForHandles(context.Background(), []SourceHandle{FileSource("a.go")})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "a.go", units[0].Path)
}

func TestTypecheckForHandles_InternsUnknownTarget(t *testing.T) {
	s := newTestSession(t, nil)

	// b.go was never opened; the call interns it and returns exactly one
	// compiled unit with its identity.
	units, err := s.typecheckForHandles(context.Background(), []SourceHandle{
		TextSource("b.go", "package demo\n\ntype B struct{}\n"),
	})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "b.go", units[0].Path)

	_, ok := s.WorkingSet().Get("b.go")
	assert.True(t, ok)
}

func TestTypecheckForHandles_FiltersToTargets(t *testing.T) {
	s := newTestSession(t, nil)
	s.Intern(TextSource("a.go", "package demo\n\nvar A = 1\n"))
	s.Intern(TextSource("b.go", "package demo\n\nvar B = 2\n"))

	units, err := s.typecheckForHandles(context.Background(), []SourceHandle{FileSource("b.go")})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "b.go", units[0].Path)
}

func TestTypecheckForHandles_SilentSinkReportsNothing(t *testing.T) {
	handler := &recordingHandler{}
	s := newTestSession(t, handler)
	s.Intern(TextSource("broken.go", "package demo\n\nfunc {\n"))

	_, err := s.typecheckForHandles(context.Background(), []SourceHandle{FileSource("broken.go")})
	require.NoError(t, err)
	assert.Empty(t, handler.allNotes())
	assert.Empty(t, handler.clears)
}

func TestTypecheckAll_ClearsThenReports(t *testing.T) {
	handler := &recordingHandler{}
	s := newTestSession(t, handler)
	s.Intern(TextSource("bad.go", "package demo\n\nvar x int = \"s\"\n"))

	require.NoError(t, s.TypecheckAll(context.Background()))
	require.Equal(t, []NoteKind{NoteKindCompiler}, handler.clears)
	notes := handler.errorNotes()
	require.NotEmpty(t, notes)
	assert.Equal(t, "bad.go", notes[0].Source)
}

func TestTypecheckAll_IdempotentRefresh(t *testing.T) {
	handler := &recordingHandler{}
	s := newTestSession(t, handler)
	s.Intern(TextSource("bad.go", "package demo\n\nvar x int = \"s\"\n"))
	s.Intern(TextSource("ok.go", "package demo\n\nvar y = 1\n"))

	require.NoError(t, s.TypecheckAll(context.Background()))
	first := handler.allNotes()

	require.NoError(t, s.TypecheckAll(context.Background()))
	second := handler.allNotes()

	// No intervening edits: the refreshed notes equal the previous set.
	assert.Equal(t, first, second)
	assert.Equal(t, []NoteKind{NoteKindCompiler, NoteKindCompiler}, handler.clears)
}

func TestTypecheckAll_UnreadableFileStillReturns(t *testing.T) {
	handler := &recordingHandler{}
	s := newTestSession(t, handler)
	missing := filepath.Join(t.TempDir(), "missing.go")
	s.Intern(FileSource(missing))
	s.Intern(TextSource("ok.go", "package demo\n\nvar y = 1\n"))

	require.NoError(t, s.TypecheckAll(context.Background()))

	notes := handler.errorNotes()
	require.NotEmpty(t, notes)
	found := false
	for _, n := range notes {
		if n.Source == missing {
			found = true
		}
	}
	assert.True(t, found, "expected an error note naming the unreadable file")
}

func TestTypecheckFiles_InternsBeforeRefresh(t *testing.T) {
	handler := &recordingHandler{}
	s := newTestSession(t, handler)

	err := s.TypecheckFiles(context.Background(), []SourceHandle{
		TextSource("bad.go", "package demo\n\nvar x int = \"s\"\n"),
	})
	require.NoError(t, err)

	_, ok := s.WorkingSet().Get("bad.go")
	assert.True(t, ok)
	assert.NotEmpty(t, handler.errorNotes())
}

func TestWholeSetRecompile_SeesLatestEdit(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\nvar Ref = MakeThing()\n"
	s.Intern(TextSource("a.go", src))
	s.Intern(TextSource("b.go", "package demo\n\nfunc MakeThing() int { return 1 }\n"))

	offset := indexOf(t, src, "Ref")
	ti, err := s.TypeAt(context.Background(), FileSource("a.go"), offset)
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, "int", ti.Name)

	// Editing b.go's registry entry is reflected by the next query on a.go:
	// the whole set recompiles, nothing is served from a stale per-file
	// cache.
	s.Intern(TextSource("b.go", "package demo\n\nfunc MakeThing() string { return \"\" }\n"))
	ti, err = s.TypeAt(context.Background(), FileSource("a.go"), offset)
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, "string", ti.Name)
}

// indexOf fails the test instead of returning -1 when the needle is absent.
func indexOf(t *testing.T, s, needle string) int {
	t.Helper()
	i := strings.Index(s, needle)
	require.GreaterOrEqual(t, i, 0, "needle %q not found", needle)
	return i
}
