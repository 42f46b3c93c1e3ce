package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/tucano/internal/model"
)

// kindAuto asks validate to detect the kind of every value
const kindAuto = "auto"

var validateCmd = &cobra.Command{
	Use:   "validate <kind> <values...>",
	Short: "Validate identifiers",
	Long: `Validate one or more identifiers of the given kind.

Kinds: cpf, cnpj, cep, phone, plate, pix, or auto to detect the kind
of each value. Punctuation is ignored.

Examples:
  tucano validate cpf 529.982.247-25 111.111.111-11
  tucano validate phone "(11) 98765-4321"
  tucano validate auto 11.222.333/0001-81 ABC1D23 -f table`,
	Args: cobra.MinimumNArgs(2),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	kind := model.Kind(args[0])
	if kind != kindAuto {
		if _, ok := registry.Get(kind); !ok {
			return fmt.Errorf("unknown kind %q (supported: %v)", kind, registry.Kinds())
		}
	}

	results := make([]*ValidationResult, 0, len(args)-1)
	allValid := true
	for _, value := range args[1:] {
		result := validateValue(kind, value)
		printVerbose("Validated %s as %s: %t\n", value, result.Kind, result.Valid)
		results = append(results, result)
		if !result.Valid {
			allValid = false
		}
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		if err := outputJSON(out, results); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tVALUE\tVALID\tFORMATTED\tERROR")
		fmt.Fprintln(tw, "----\t-----\t-----\t---------\t-----")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", r.Kind, r.Value, r.Valid, r.Formatted, r.Error)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some values")
	}
	return nil
}

func validateValue(kind model.Kind, value string) *ValidationResult {
	result := &ValidationResult{Kind: kind, Value: value}

	if kind == kindAuto {
		v, err := registry.Detect(value)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Kind = v.Kind
	}

	if err := registry.Check(result.Kind, value); err != nil {
		result.Error = err.Error()
		return result
	}
	result.Valid = true
	result.Formatted, _ = registry.Format(result.Kind, value)
	return result
}

// ValidationResult holds the result of validating a single value
type ValidationResult struct {
	Kind      model.Kind `json:"kind"`
	Value     string     `json:"value"`
	Valid     bool       `json:"valid"`
	Formatted string     `json:"formatted,omitempty"`
	Error     string     `json:"error,omitempty"`
}
