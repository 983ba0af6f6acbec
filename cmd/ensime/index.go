package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/myrjola/ensime-server/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build or refresh the symbol index",
	Long:  "Extracts top-level declarations from Go files under the given path (default: current directory) into the sqlite symbol index used by cross-file definition lookups. Unchanged files are skipped via content hashing.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndexCmd,
}

func runIndexCmd(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", root, err)
	}

	if dir := filepath.Dir(cfg.IndexDB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	ix, err := index.Open(cfg.IndexDB)
	if err != nil {
		return err
	}
	defer ix.Close()

	if err := ix.IndexDir(cmd.Context(), root); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Indexed %s in %s\n", root, time.Since(start).Round(time.Millisecond))
	return nil
}
