package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	ensime "github.com/myrjola/ensime-server"
	"github.com/myrjola/ensime-server/internal/index"
)

var (
	flagMax           int
	flagCaseSensitive bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run point queries against the working set",
	Long:  "Run semantic queries at a byte offset in a file. The working set is seeded from the configured source roots plus the queried file.",
}

func init() {
	completeCmd.Flags().IntVar(&flagMax, "max", 0, "maximum candidates (default from config)")
	completeCmd.Flags().BoolVar(&flagCaseSensitive, "case-sensitive", false, "match prefix case-sensitively")

	queryCmd.AddCommand(typeCmd)
	queryCmd.AddCommand(symbolCmd)
	queryCmd.AddCommand(docCmd)
	queryCmd.AddCommand(completeCmd)
	queryCmd.AddCommand(defCmd)
	queryCmd.AddCommand(implicitCmd)
}

// querySession builds a Session for a point query, attaching the symbol
// index when its database exists.
func querySession() (*ensime.Session, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {}
	var extra []ensime.SessionOption
	if _, err := os.Stat(cfg.IndexDB); err == nil {
		ix, err := index.Open(cfg.IndexDB)
		if err != nil {
			return nil, nil, err
		}
		extra = append(extra, ensime.WithIndex(ix))
		cleanup = func() { ix.Close() }
	}
	session, err := newSession(cfg, nil, extra...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return session, cleanup, nil
}

// pointArgs resolves the common <file> <offset> positional arguments.
func pointArgs(args []string) (ensime.SourceHandle, int, error) {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return ensime.SourceHandle{}, 0, fmt.Errorf("resolving %q: %w", args[0], err)
	}
	offset, err := parseOffsetArg(args[1])
	if err != nil {
		return ensime.SourceHandle{}, 0, err
	}
	return ensime.FileSource(path), offset, nil
}

var typeCmd = &cobra.Command{
	Use:   "type <file> <offset>",
	Short: "Type at a byte offset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cleanup, err := querySession()
		if err != nil {
			return err
		}
		defer cleanup()
		handle, offset, err := pointArgs(args)
		if err != nil {
			return err
		}
		ti, err := session.TypeAt(cmd.Context(), handle, offset)
		if err != nil {
			return err
		}
		return printResult(os.Stdout, flagFormat, ti)
	},
}

var symbolCmd = &cobra.Command{
	Use:   "symbol <file> <offset>",
	Short: "Symbol referenced at a byte offset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cleanup, err := querySession()
		if err != nil {
			return err
		}
		defer cleanup()
		handle, offset, err := pointArgs(args)
		if err != nil {
			return err
		}
		si, err := session.SymbolAt(cmd.Context(), handle, offset)
		if err != nil {
			return err
		}
		return printResult(os.Stdout, flagFormat, si)
	},
}

var docCmd = &cobra.Command{
	Use:   "doc <file> <offset>",
	Short: "Documentation signature at a byte offset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cleanup, err := querySession()
		if err != nil {
			return err
		}
		defer cleanup()
		handle, offset, err := pointArgs(args)
		if err != nil {
			return err
		}
		sig, err := session.DocSignatureAt(cmd.Context(), handle, offset)
		if err != nil {
			return err
		}
		return printResult(os.Stdout, flagFormat, sig)
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <file> <offset>",
	Short: "Completion candidates at a byte offset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		session, cleanup, err := querySession()
		if err != nil {
			return err
		}
		defer cleanup()
		handle, offset, err := pointArgs(args)
		if err != nil {
			return err
		}
		max := flagMax
		if max <= 0 {
			max = cfg.MaxCompletions
		}
		cands, err := session.CompletionsAt(cmd.Context(), handle, offset, max, flagCaseSensitive)
		if err != nil {
			return err
		}
		return printCandidates(os.Stdout, flagFormat, cands)
	},
}

var defCmd = &cobra.Command{
	Use:   "def <fqn> <file>",
	Short: "Declaration site of a fully-qualified name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cleanup, err := querySession()
		if err != nil {
			return err
		}
		defer cleanup()
		path, err := filepath.Abs(args[1])
		if err != nil {
			return fmt.Errorf("resolving %q: %w", args[1], err)
		}
		pos, err := session.LinkAt(cmd.Context(), args[0], ensime.FileSource(path))
		if err != nil {
			return err
		}
		return printResult(os.Stdout, flagFormat, pos)
	},
}

var implicitCmd = &cobra.Command{
	Use:   "implicit <file> <offset>",
	Short: "Diagnostic-derived info at a byte offset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cleanup, err := querySession()
		if err != nil {
			return err
		}
		defer cleanup()
		handle, offset, err := pointArgs(args)
		if err != nil {
			return err
		}
		infos, err := session.ImplicitInfoAt(cmd.Context(), handle, offset)
		if err != nil {
			return err
		}
		return printImplicit(os.Stdout, flagFormat, infos)
	},
}
