package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/tucano/internal/identifier"
	"github.com/rezonia/tucano/internal/model"
)

var (
	generateCount     int
	generateFormatted bool
	generateAreaCode  string
	generatePhoneType string
	generatePlate     string
	generateBranch    int
)

var generateCmd = &cobra.Command{
	Use:   "generate <kind>",
	Short: "Generate valid test identifiers",
	Long: `Generate random identifiers that pass validation, for test data.

Kinds: cpf, cnpj, phone, plate, pix (random key).

Examples:
  tucano generate cpf -n 5 --formatted
  tucano generate cnpj --branch 2
  tucano generate phone --ddd 21 --type landline
  tucano generate plate --plate-format legacy`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "Number of values")
	generateCmd.Flags().BoolVar(&generateFormatted, "formatted", false, "Punctuate generated values")
	generateCmd.Flags().StringVar(&generateAreaCode, "ddd", "", "Area code for phone numbers (random if empty)")
	generateCmd.Flags().StringVar(&generatePhoneType, "type", "", "Phone type (landline, mobile)")
	generateCmd.Flags().StringVar(&generatePlate, "plate-format", "", "Plate format (legacy, mercosul)")
	generateCmd.Flags().IntVar(&generateBranch, "branch", 0, "CNPJ branch number (1-9999)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	if generateCount < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	kind := model.Kind(args[0])

	opts := identifier.GenerateOptions{
		Formatted:   generateFormatted,
		AreaCode:    generateAreaCode,
		PhoneType:   model.PhoneType(generatePhoneType),
		PlateFormat: model.PlateFormat(generatePlate),
		Branch:      generateBranch,
	}

	values := make([]string, 0, generateCount)
	for range generateCount {
		v, err := registry.Generate(kind, opts)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return outputJSON(out, values)
	}
	for _, v := range values {
		fmt.Fprintln(out, v)
	}
	return nil
}
