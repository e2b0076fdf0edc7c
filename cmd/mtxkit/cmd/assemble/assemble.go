// Package assemble provides the command that builds a unified count
// matrix bundle from kallisto|bustools outputs.
package assemble

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omicstation/mtxkit"
	"github.com/omicstation/mtxkit/internal/cmd/globals"
	"github.com/omicstation/mtxkit/internal/cmd/output"
	"github.com/omicstation/mtxkit/internal/cmd/table"
	"github.com/omicstation/mtxkit/pkg/bundle"
	"github.com/omicstation/mtxkit/pkg/reconcile"
)

// AppContext defines the interface that the assemble command needs from
// the app. This allows for better testability and decoupling from the
// full app. The kit carries the app logger, so the command itself never
// logs directly.
type AppContext interface {
	OutputFormat() string
	Kit(opts ...mtxkit.Option) (mtxkit.Kit, error)
}

// report is the command's printable view of an assembly result.
type report struct {
	BundleDir    string           `json:"bundle_dir" yaml:"bundle_dir"`
	VersionsPath string           `json:"versions_path,omitempty" yaml:"versions_path,omitempty"`
	Manifest     *bundle.Manifest `json:"manifest" yaml:"manifest"`
	Stats        reconcile.Stats  `json:"stats" yaml:"stats"`
}

// NewCommand creates the assemble command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assemble",
		GroupID: "core",
		Short:   "Assemble count matrices into a unified bundle",
		Long: `Assemble discovers the count matrices a kallisto|bustools run produced,
aligns them on a common barcode axis, sums them into a unified matrix,
and writes the result as a bundle directory.

The workflow determines which matrices are expected:
  standard    - one matrix (cells x genes)
  lamanno     - spliced and unspliced matrices (RNA velocity)
  nac         - nascent, ambiguous and mature matrices (single-nucleus)`,
		Example: `  mtxkit assemble -i counts/ -s sample1                      # standard workflow
  mtxkit assemble -i counts/ -s sample1 -w lamanno           # RNA velocity
  mtxkit assemble -i counts/ -s sample1 -w nac --t2g t2g.txt # with gene symbols`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().StringP("inputs", "i", "", "directory containing the count matrices (required)")
	cmd.Flags().StringP("sample", "s", "", "sample identifier (required)")
	cmd.Flags().StringP("workflow", "w", "standard", "quantification workflow: standard, lamanno, nac")
	cmd.Flags().String("t2g", "", "transcript-to-gene mapping for gene symbol annotation")
	cmd.Flags().StringP("output-dir", "d", "", "directory to write the bundle into")
	cmd.Flags().String("input-type", "", "input type label for the bundle name (raw, filtered)")
	cmd.Flags().String("run-id", "", "pin the run identifier instead of generating one")
	cmd.Flags().String("process-label", "", "process label recorded in the versions file")
	cmd.Flags().Bool("first-seen-order", false, "order union barcodes by first appearance instead of lexicographically")
	cmd.Flags().Bool("uncompressed", false, "write bundle files without gzip compression")
	cmd.Flags().Bool("no-versions", false, "skip writing the tool versions file")

	_ = cmd.MarkFlagRequired("inputs")
	_ = cmd.MarkFlagRequired("sample")

	return cmd
}

// run executes the assembly and renders the result.
func run(cmd *cobra.Command, app AppContext) error {
	opts, err := kitOptions(cmd)
	if err != nil {
		return err
	}

	kit, err := app.Kit(opts...)
	if err != nil {
		return err
	}

	result, err := kit.Assemble(cmd.Context())
	if err != nil {
		return err
	}

	if !globals.Parse(cmd).Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Assembled %s into %s\n", result.Manifest.Sample, result.BundleDir)
	}

	return render(cmd, app, result)
}

// kitOptions translates command flags into kit options. Only flags the
// user actually set are forwarded so app-level defaults survive.
func kitOptions(cmd *cobra.Command) ([]mtxkit.Option, error) {
	flags := cmd.Flags()

	inputs, err := flags.GetString("inputs")
	if err != nil {
		return nil, err
	}
	sample, err := flags.GetString("sample")
	if err != nil {
		return nil, err
	}
	wf, err := flags.GetString("workflow")
	if err != nil {
		return nil, err
	}

	opts := []mtxkit.Option{
		mtxkit.WithInputsDir(inputs),
		mtxkit.WithSample(sample),
		mtxkit.WithWorkflowName(wf),
	}

	if t2g, _ := flags.GetString("t2g"); t2g != "" {
		opts = append(opts, mtxkit.WithT2G(t2g))
	}
	if dir, _ := flags.GetString("output-dir"); dir != "" {
		opts = append(opts, mtxkit.WithOutputDir(dir))
	}
	if inputType, _ := flags.GetString("input-type"); inputType != "" {
		opts = append(opts, mtxkit.WithInputType(inputType))
	}
	if runID, _ := flags.GetString("run-id"); runID != "" {
		opts = append(opts, mtxkit.WithRunID(runID))
	}
	if label, _ := flags.GetString("process-label"); label != "" {
		opts = append(opts, mtxkit.WithProcessLabel(label))
	}
	if firstSeen, _ := flags.GetBool("first-seen-order"); firstSeen {
		opts = append(opts, mtxkit.WithFirstSeenOrder())
	}
	if uncompressed, _ := flags.GetBool("uncompressed"); uncompressed {
		opts = append(opts, mtxkit.WithUncompressed())
	}
	if noVersions, _ := flags.GetBool("no-versions"); noVersions {
		opts = append(opts, mtxkit.WithoutVersionsFile())
	}

	return opts, nil
}

// render writes the assembly report in the configured output format.
func render(cmd *cobra.Command, app AppContext, result *mtxkit.Result) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	formatter := output.NewFormatter(format)

	var outputData any
	switch format {
	case output.FormatTable, output.FormatWide, "":
		data := table.ManifestToTableData(result.Manifest)
		if format == output.FormatWide {
			// Wide view appends the reconciliation stats
			stats := table.StatsToTableData(result.Stats)
			data.Rows = append(data.Rows, stats.Rows...)
		}
		outputData = data
	default:
		outputData = report{
			BundleDir:    result.BundleDir,
			VersionsPath: result.VersionsPath,
			Manifest:     result.Manifest,
			Stats:        result.Stats,
		}
	}

	return formatter.Format(cmd.OutOrStdout(), outputData)
}
