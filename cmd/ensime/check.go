package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	ensime "github.com/myrjola/ensime-server"
	"github.com/myrjola/ensime-server/internal/config"
)

var log = commonlog.GetLogger("ensime.cli")

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Typecheck files and print compiler notes",
	Long:  "Interns the given files into the working set, recompiles everything, and prints the resulting compiler notes.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	handler := &printingHandler{out: os.Stdout, format: flagFormat}
	session, err := newSession(cfg, handler)
	if err != nil {
		return err
	}

	handles := make([]ensime.SourceHandle, 0, len(args))
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", arg, err)
		}
		handles = append(handles, ensime.FileSource(path))
	}
	if err := session.TypecheckFiles(cmd.Context(), handles); err != nil {
		return fmt.Errorf("typecheck: %w", err)
	}
	if handler.count() == 0 {
		fmt.Fprintln(os.Stdout, "no notes")
	}
	return nil
}

// newSession builds a Session from the CLI configuration: source roots are
// interned as disk-backed handles so cross-file references resolve.
func newSession(cfg config.Config, handler ensime.ReportHandler, extra ...ensime.SessionOption) (*ensime.Session, error) {
	opts := []ensime.SessionOption{ensime.WithLint(cfg.Lint)}
	if handler != nil {
		opts = append(opts, ensime.WithReportHandler(handler))
	}
	opts = append(opts, extra...)
	session := ensime.NewSession(opts...)

	for _, root := range cfg.SourceRoots {
		paths, err := goFilesUnder(root)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			session.Intern(ensime.FileSource(path))
		}
		log.Debugf("interned %d files from %s", len(paths), root)
	}
	return session, nil
}

// goFilesUnder lists the Go source files under root, skipping hidden
// directories and testdata.
func goFilesUnder(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".go") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

// printingHandler prints notes as they arrive and tracks how many were
// reported.
type printingHandler struct {
	out    *os.File
	format string

	mu sync.Mutex
	n  int
}

func (h *printingHandler) Report(notes []ensime.Note) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.n += len(notes)
	for _, note := range notes {
		printNote(h.out, h.format, note)
	}
}

func (h *printingHandler) ClearNotes(ensime.NoteKind) {}

func (h *printingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n
}
