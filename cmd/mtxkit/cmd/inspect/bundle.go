package inspect

import (
	"github.com/spf13/cobra"

	"github.com/omicstation/mtxkit/internal/cmd/output"
	"github.com/omicstation/mtxkit/internal/cmd/table"
	"github.com/omicstation/mtxkit/pkg/bundle"
)

// NewBundleCommand creates the inspect bundle subcommand.
func NewBundleCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bundle [dir]",
		Short: "Show an assembled bundle's manifest",
		Args:  cobra.MaximumNArgs(1),
		Example: `  mtxkit inspect bundle sample1_raw_matrix/
  mtxkit inspect bundle . -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runBundle(cmd, app, dir)
		},
	}
}

// runBundle loads the bundle manifest and renders it.
func runBundle(cmd *cobra.Command, app AppContext, dir string) error {
	manifest, err := bundle.ReadManifest(dir)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	formatter := output.NewFormatter(format)

	var outputData any
	switch format {
	case output.FormatTable, output.FormatWide, "":
		outputData = table.ManifestToTableData(manifest)
	default:
		outputData = manifest
	}

	return formatter.Format(cmd.OutOrStdout(), outputData)
}
