package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PackView/internal/autofill"
	"github.com/piwi3910/PackView/internal/importer"
	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
	"github.com/piwi3910/PackView/internal/project"
)

// autofillOpts holds the flags of the autofill command. Counts are strings so
// they go through the same validation as the desktop form.
type autofillOpts struct {
	width    string
	quantity string
	types    string
	autofill bool
	seed     int64
	output   string
}

func newAutofillCmd() *cobra.Command {
	var opts autofillOpts

	cmd := &cobra.Command{
		Use:   "autofill [rectangles.txt]",
		Short: "Validate a rectangle list and write the packer request JSON",
		Long: `Reads "width height quantity" lines, validates them against the bin width
and optional targets, fills in random rectangles when --autofill is set, and
writes the request JSON to --output (stdout when omitted).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAutofill(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.width, "width", "w", "", "bin width (required)")
	cmd.Flags().StringVarP(&opts.quantity, "quantity", "q", "", "target number of rectangles")
	cmd.Flags().StringVarP(&opts.types, "types", "k", "", "target number of distinct rectangle sizes")
	cmd.Flags().BoolVar(&opts.autofill, "autofill", false, "generate missing rectangles to reach the targets")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for autofill (0 uses the clock)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output JSON file")
	_ = cmd.MarkFlagRequired("width")
	return cmd
}

func runAutofill(cmd *cobra.Command, inputPath string, opts autofillOpts) error {
	logger := applog.WithOperation(applog.WithComponent("cli"), "autofill")

	text, err := project.LoadRequestText(inputPath)
	if err != nil {
		return err
	}

	req, errs := importer.ParseRequest(importer.RequestForm{
		BinWidth:   opts.width,
		Quantity:   opts.quantity,
		Types:      opts.types,
		Autofill:   opts.autofill,
		Rectangles: text,
	})
	if len(errs) > 0 {
		return fmt.Errorf("invalid request:\n  %s", strings.Join(errs, "\n  "))
	}

	input, err := autofill.Generate(req, autofill.NewRand(opts.seed))
	if err != nil {
		return err
	}
	logger.Debug("request built",
		slog.Int("rectangles", input.TotalQuantity),
		slog.Int("types", input.TotalTypes),
		slog.Bool("autofill", input.AutofillUsed),
	)

	if opts.output == "" {
		if input.Rectangles == nil {
			input.Rectangles = []model.RectangleSpec{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(input)
	}
	if err := project.SaveGeneratedInput(opts.output, input); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d rectangles of %d types\n", opts.output, input.TotalQuantity, input.TotalTypes)
	return nil
}
