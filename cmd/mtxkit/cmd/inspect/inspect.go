// Package inspect provides commands for examining count matrices and
// assembled bundles without loading their full contents.
package inspect

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// AppContext defines the interface that inspect commands need from the app.
type AppContext interface {
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the inspect command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect [resource]",
		GroupID: "core",
		Short:   "Inspect matrices and bundles",
		Long: `Inspect reports the shape and metadata of count matrix files and
assembled bundle directories.

Available subcommands:
  matrix      - Matrix Market file headers (shape, entries, density)
  bundle      - assembled bundle manifests`,
		Example: `  mtxkit inspect matrix counts/spliced.mtx     # one file
  mtxkit inspect matrix counts/*.mtx           # several files
  mtxkit inspect bundle sample1_raw_matrix/    # bundle manifest`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to help if no subcommand
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown resource: %s", args[0])
		},
	}

	// Add subcommands using the app context
	cmd.AddCommand(NewMatrixCommand(app))
	cmd.AddCommand(NewBundleCommand(app))

	return cmd
}
