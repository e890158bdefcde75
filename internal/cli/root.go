// Package cli implements the packview command-line interface: request
// generation, layout inspection and PDF export without the desktop UI.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	applog "github.com/piwi3910/PackView/internal/log"
)

var version = "dev"

// NewRootCommand builds the command tree. Command output goes to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "packview-cli",
		Short:        "Build rectangle requests and inspect bin layouts",
		Long:         `packview-cli builds rectangle request files for a strip packer, audits the layouts it produces and renders them to PDF.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts := applog.FromEnv()
			if verbose {
				opts.Level = "debug"
			}
			applog.Init(opts)
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newAutofillCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newExportPDFCmd())
	return root
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	defer applog.Close()
	return NewRootCommand(os.Stdout).ExecuteContext(ctx)
}
