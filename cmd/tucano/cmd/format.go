package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/tucano/internal/model"
)

var formatCmd = &cobra.Command{
	Use:   "format <kind> <values...>",
	Short: "Render identifiers in their canonical punctuation",
	Long: `Format one or more identifiers of the given kind.

Examples:
  tucano format cpf 52998224725
  tucano format cep 01001000 20040020
  tucano format pix 5511987654321`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	kind := model.Kind(args[0])

	results := make([]FormatResult, 0, len(args)-1)
	for _, value := range args[1:] {
		formatted, err := registry.Format(kind, value)
		if err != nil {
			return fmt.Errorf("%s: %w", value, err)
		}
		results = append(results, FormatResult{Value: value, Formatted: formatted})
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return outputJSON(out, results)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VALUE\tFORMATTED")
	fmt.Fprintln(tw, "-----\t---------")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\n", r.Value, r.Formatted)
	}
	return tw.Flush()
}

// FormatResult pairs an input with its formatted form
type FormatResult struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
}
