package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/stacsmith/internal/builder"
	"github.com/agentic-research/stacsmith/internal/config"
	"github.com/agentic-research/stacsmith/internal/validate"
)

var buildValidate bool

var buildCmd = &cobra.Command{
	Use:   "build [release-dir]",
	Short: "Assemble the root catalog over a release's collection documents",
	Long: `Build reads each configured collection document from the release
directory, attaches it to a freshly constructed root catalog, saves the whole
tree with relative links, and finally re-anchors the root document with its
absolute published URL. Collections missing from disk are skipped with a
warning.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir := filepath.Join("release", "v1")
		if len(args) == 1 {
			outputDir = args[0]
		}
		absDir, err := filepath.Abs(outputDir)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", outputDir, err)
		}

		cfg := config.Default()
		if configPath != "" {
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
		}

		b := builder.New(osfs.New("/"), cfg)
		b.Logf = func(format string, a ...any) { fmt.Printf(format+"\n", a...) }
		if buildValidate {
			v, err := validate.New()
			if err != nil {
				return err
			}
			b.Validator = v
		}

		start := time.Now()
		res, err := b.Build(absDir)
		if err != nil {
			return err
		}
		fmt.Printf("Saved catalog with %d collections (%d skipped) to %s in %v\n",
			len(res.Attached), len(res.Skipped), res.CatalogPath, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildValidate, "validate", false, "Validate the assembled documents before saving")
	rootCmd.AddCommand(buildCmd)
}
