package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/stacsmith/internal/validate"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate <catalog.json>",
	Short: "Recursively validate a STAC catalog tree",
	Long: `Validate loads the root document, resolves every child and item
link transitively, and checks each document against its core schema. The
whole tree either validates or the run fails with every schema error found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absRoot, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve %s: %w", args[0], err)
		}

		v, err := validate.New()
		if err != nil {
			return err
		}
		v.Strict = validateStrict

		fmt.Printf("Reading catalog from %s\n", args[0])
		stats, err := v.ValidateTree(osfs.New("/"), absRoot)
		if err != nil {
			return err
		}
		fmt.Printf("Validation successful: %d catalogs, %d collections and %d items are valid.\n",
			stats.Catalogs, stats.Collections, stats.Items)
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Reject placeholder license values without a license link")
	rootCmd.AddCommand(validateCmd)
}
