package ensime

import (
	"io"

	"github.com/myrjola/ensime-server/internal/frontend"
)

// SourceHandle names a source file plus where its contents come from: disk,
// a literal text override, or a stream override. At most one override is
// set; with neither, contents are read from disk when a compile needs them,
// not when the handle is created.
type SourceHandle struct {
	path   string
	text   string
	isText bool
	reader io.Reader
}

// FileSource returns a handle whose contents are read from disk at compile
// time.
func FileSource(path string) SourceHandle {
	return SourceHandle{path: path}
}

// TextSource returns a handle carrying in-memory contents, typically the
// unsaved state of an open editor buffer.
func TextSource(path, text string) SourceHandle {
	return SourceHandle{path: path, text: text, isText: true}
}

// ReaderSource returns a handle whose contents are drained from r at the
// first compile that touches it.
func ReaderSource(path string, r io.Reader) SourceHandle {
	return SourceHandle{path: path, reader: r}
}

// Path returns the handle's file identity.
func (h SourceHandle) Path() string { return h.path }

// hasOverride reports whether the handle carries in-memory contents rather
// than deferring to disk.
func (h SourceHandle) hasOverride() bool { return h.isText || h.reader != nil }

// compilableUnit converts the handle into the frontend's batch-compilation
// representation.
func (h SourceHandle) compilableUnit() *frontend.CompilableUnit {
	switch {
	case h.isText:
		return frontend.UnitFromText(h.path, h.text)
	case h.reader != nil:
		return frontend.UnitFromReader(h.path, h.reader)
	default:
		return frontend.UnitFromFile(h.path)
	}
}
