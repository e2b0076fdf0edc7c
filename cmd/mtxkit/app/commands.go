package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/omicstation/mtxkit/cmd/mtxkit/cmd/assemble"
	"github.com/omicstation/mtxkit/cmd/mtxkit/cmd/inspect"
)

// NewAssembleCommand creates the assemble command with app dependencies.
func (a *App) NewAssembleCommand() *cobra.Command {
	return assemble.NewCommand(a)
}

// NewInspectCommand creates the inspect command with app dependencies.
func (a *App) NewInspectCommand() *cobra.Command {
	return inspect.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("mtxkit %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s\n", runtime.Version())
				cmd.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
