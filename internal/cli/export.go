package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PackView/internal/export"
)

func newExportPDFCmd() *cobra.Command {
	var output, labels string

	cmd := &cobra.Command{
		Use:   "export-pdf [layout.json|layout.dxf]",
		Short: "Render a layout to PDF, optionally with a QR label sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, _, err := loadLayoutFile(args[0])
			if err != nil {
				return err
			}
			if err := export.ExportPDF(output, layout); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)

			if labels != "" {
				if err := export.ExportLabels(labels, layout); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", labels)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF file (required)")
	cmd.Flags().StringVar(&labels, "labels", "", "also write a QR label sheet to this file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
