package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/stacsmith/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index <catalog.json> <output.db>",
	Short: "Build a SQLite index of every collection and item in a catalog tree",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		absRoot, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve %s: %w", args[0], err)
		}

		start := time.Now()
		fmt.Printf("Indexing %s into %s...\n", args[0], args[1])
		stats, err := index.Build(osfs.New("/"), absRoot, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d collections and %d items in %v.\n",
			stats.Collections, stats.Items, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
