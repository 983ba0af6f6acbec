package ensime

import (
	"sync"

	"github.com/myrjola/ensime-server/internal/frontend"
)

// Severity grades a reported note.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// severityOf maps a raw frontend diagnostic kind to a note severity. The
// mapping is total: fatal is an error, both warning kinds are warnings,
// everything else is informational.
func severityOf(k frontend.Kind) Severity {
	switch k {
	case frontend.KindFatal:
		return SeverityError
	case frontend.KindWarning, frontend.KindMandatoryWarning:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Note is a structured compiler note as handed to the report handler.
// Start and End are byte offsets; Line and Col are 1-based.
type Note struct {
	Source   string
	Message  string
	Severity Severity
	Start    int
	End      int
	Line     int
	Col      int
}

// noteOf projects a raw diagnostic into a note. The start offset prefers
// the diagnostic's explicit start position and falls back to its generic
// position.
func noteOf(d frontend.Diagnostic) Note {
	return Note{
		Source:   d.Path,
		Message:  d.Message,
		Severity: severityOf(d.Kind),
		Start:    d.StartOffset(),
		End:      d.EndOffset(),
		Line:     d.Line,
		Col:      d.Col,
	}
}

// NoteKind names a lane of notes for bulk clearing at the report handler.
type NoteKind string

// NoteKindCompiler labels notes produced by batch compilation.
const NoteKindCompiler NoteKind = "compiler"

// ReportHandler receives compiler notes. Report is invoked once per
// diagnostic, synchronously, in frontend emission order; the handler owns
// de-duplication and storage. ClearNotes drops every previously reported
// note of the given kind and precedes a full refresh.
type ReportHandler interface {
	Report(notes []Note)
	ClearNotes(kind NoteKind)
}

// nopReportHandler swallows everything. Used when a session is built
// without a report handler.
type nopReportHandler struct{}

func (nopReportHandler) Report([]Note)        {}
func (nopReportHandler) ClearNotes(NoteKind) {}

// activeSink forwards each diagnostic to the report handler as it is
// emitted, one singleton batch per diagnostic, and retains the raw
// diagnostics for diagnostic-driven queries.
type activeSink struct {
	handler ReportHandler

	mu    sync.Mutex
	diags []frontend.Diagnostic
}

func newActiveSink(handler ReportHandler) *activeSink {
	return &activeSink{handler: handler}
}

func (s *activeSink) Diag(d frontend.Diagnostic) {
	s.mu.Lock()
	s.diags = append(s.diags, d)
	s.mu.Unlock()
	s.handler.Report([]Note{noteOf(d)})
}

// collected returns the raw diagnostics accumulated so far.
func (s *activeSink) collected() []frontend.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]frontend.Diagnostic(nil), s.diags...)
}

// silentSink discards every diagnostic. Used for compiles performed only to
// obtain a compiled representation, where transient errors from files
// mid-edit must not flood the report stream.
type silentSink struct{}

func (silentSink) Diag(frontend.Diagnostic) {}
