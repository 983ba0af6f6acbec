package ensime

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CompletionsAt collects completion candidates at offset: every name
// visible from the innermost lexical scope there whose prefix matches the
// identifier being typed, innermost scope first. The result is bounded by
// maxResults; zero means no candidates and no error. The file is always
// recompiled, never served from a stale unit.
func (s *Session) CompletionsAt(ctx context.Context, handle SourceHandle, offset, maxResults int, caseSensitive bool) ([]CompletionCandidate, error) {
	if maxResults <= 0 {
		return nil, nil
	}
	unit, err := s.compiledUnitFor(ctx, handle)
	if err != nil || unit == nil {
		return nil, err
	}
	scope := unit.ScopeAt(offset)
	if scope == nil {
		return nil, nil
	}
	prefix := identifierPrefix(unit.Src, offset)

	var out []CompletionCandidate
	seen := make(map[string]bool)
	for sc := scope; sc != nil; sc = sc.Parent() {
		for _, name := range sc.Names() {
			if seen[name] || !matchesPrefix(name, prefix, caseSensitive) {
				continue
			}
			seen[name] = true
			cand := CompletionCandidate{Name: name}
			if obj := sc.Lookup(name); obj != nil && obj.Type() != nil {
				t := typeInfoFor(obj.Type())
				cand.TypeSig = t.Name
				cand.IsCallable = t.Callable
			}
			out = append(out, cand)
			if len(out) >= maxResults {
				return out, nil
			}
		}
	}
	return out, nil
}

// matchesPrefix reports whether name completes prefix under the requested
// case sensitivity. An empty prefix matches everything.
func matchesPrefix(name, prefix string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.HasPrefix(name, prefix)
	}
	return len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix)
}

// identifierPrefix returns the partial identifier ending at offset.
func identifierPrefix(src []byte, offset int) string {
	if offset > len(src) {
		offset = len(src)
	}
	start := offset
	for start > 0 {
		r, size := utf8.DecodeLastRune(src[:start])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		start -= size
	}
	// A prefix cannot start with a digit.
	for start < offset {
		r, size := utf8.DecodeRune(src[start:])
		if !unicode.IsDigit(r) {
			break
		}
		start += size
	}
	return string(src[start:offset])
}
