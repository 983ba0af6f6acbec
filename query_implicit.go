package ensime

import (
	"context"
)

// ImplicitInfoAt reports diagnostic-derived information at offset: a full
// compile runs with the active sink, and the raw diagnostics whose source
// matches the handle and whose span straddles the offset are projected into
// lightweight records labeled with severity and message.
//
// This is deliberately a diagnostic-driven query, not a semantic-model one:
// it reuses the compiler's own notices instead of re-deriving conversion
// information from the type model.
func (s *Session) ImplicitInfoAt(ctx context.Context, handle SourceHandle, offset int) ([]ImplicitInfo, error) {
	sink := newActiveSink(s.handler)
	if _, err := s.typecheckWithSink(ctx, sink, []SourceHandle{handle}); err != nil {
		return nil, err
	}

	var out []ImplicitInfo
	for _, d := range sink.collected() {
		if d.Path != handle.Path() {
			continue
		}
		start, end := d.StartOffset(), d.EndOffset()
		if offset < start || offset > end {
			continue
		}
		out = append(out, ImplicitInfo{
			Severity: severityOf(d.Kind),
			Message:  d.Message,
			Start:    start,
			End:      end,
		})
	}
	return out, nil
}
