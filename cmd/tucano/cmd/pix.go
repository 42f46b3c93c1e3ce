package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/tucano/internal/pix"
)

var pixCmd = &cobra.Command{
	Use:   "pix",
	Short: "Classify and mask PIX keys",
}

var pixClassifyCmd = &cobra.Command{
	Use:   "classify <keys...>",
	Short: "Determine the type of PIX keys",
	Long: `Classify keys as cpf, cnpj, email, phone or random.

Examples:
  tucano pix classify 529.982.247-25 user@example.com +5511987654321 -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPixClassify,
}

var pixMaskCmd = &cobra.Command{
	Use:   "mask <keys...>",
	Short: "Print PIX keys with their sensitive part hidden",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPixMask,
}

func init() {
	rootCmd.AddCommand(pixCmd)
	pixCmd.AddCommand(pixClassifyCmd)
	pixCmd.AddCommand(pixMaskCmd)
}

func runPixClassify(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}

	results := make([]PixResult, 0, len(args))
	for _, key := range args {
		results = append(results, PixResult{Key: key, Info: pix.Describe(key)})
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return outputJSON(out, results)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALID\tTYPE\tFORMATTED\tNORMALIZED")
	fmt.Fprintln(tw, "---\t-----\t----\t---------\t----------")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\t%s\n", r.Key, r.Valid, r.Type, r.Formatted, r.Normalized)
	}
	return tw.Flush()
}

func runPixMask(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}

	masked := make([]string, 0, len(args))
	for _, raw := range args {
		key, err := pix.Classify(raw)
		if err != nil {
			return err
		}
		masked = append(masked, pix.Mask(key))
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return outputJSON(out, masked)
	}
	for _, m := range masked {
		fmt.Fprintln(out, m)
	}
	return nil
}

// PixResult is the classification of one command-line key
type PixResult struct {
	Key string `json:"key"`
	pix.Info
}
