package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/tucano/internal/decimal"
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/provider"
	"github.com/rezonia/tucano/internal/resolver"
)

var lookupTimeout time.Duration

var lookupCmd = &cobra.Command{
	Use:   "lookup <kind> [values...]",
	Short: "Resolve values against public reference services",
	Long: `Resolve one or more values of the given kind, trying each provider of
the kind in order until one answers.

Kinds:
  cep             postal code (ViaCEP, then BrasilAPI)
  cnpj            company registration (BrasilAPI, optionally ReceitaWS)
  bank            bank by compensation code
  banks           full bank directory (no value)
  ddd             area code
  holidays        national holidays of a year
  states          federative units (no value)
  municipalities  municipalities of a state
  fipe            FIPE prices by code
  fipe_brands     FIPE brands of carros, motos or caminhoes
  fipe_models     FIPE models of a brand, as type/brand
  fipe_years      FIPE model years, as type/brand/model
  fipe_vehicle    FIPE price, as type/brand/model/year

Examples:
  tucano lookup cep 01001-000 20040-020
  tucano lookup cnpj 11.222.333/0001-81 -f table
  tucano lookup holidays 2025
  tucano lookup fipe_vehicle carros/59/5940/2014-1
  tucano lookup banks`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().DurationVar(&lookupTimeout, "timeout", time.Minute, "Overall timeout for all lookups")
}

func runLookup(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	res := newResolver(cfg, log, nil)

	kind := model.Kind(args[0])
	if _, ok := res.Descriptor(kind); !ok {
		return fmt.Errorf("unknown lookup kind %q (supported: %v)", kind, res.Kinds())
	}
	values := args[1:]
	if len(values) == 0 {
		values = []string{""}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	printVerbose("Resolving %d %s value(s)\n", len(values), kind)
	outcomes := res.ResolveBatch(ctx, kind, values)

	results := make([]*LookupResult, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		r := newLookupResult(kind, o)
		if r.Error != "" {
			failed++
		}
		results = append(results, r)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		err = outputJSON(out, results)
	} else {
		err = outputLookupTable(out, results)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(results))
	}
	return nil
}

func newLookupResult(kind model.Kind, o resolver.Outcome) *LookupResult {
	r := &LookupResult{Kind: kind, Value: o.Value}
	if o.Resolution != nil {
		r.Provider = o.Resolution.Provider
		r.Record = o.Resolution.Record
		for _, a := range o.Resolution.Failures() {
			r.Failures = append(r.Failures, fmt.Sprintf("%s (%s): %v", a.Provider, provider.Category(a.Err), a.Err))
		}
	}
	if o.Err != nil {
		r.Error = o.Err.Error()
	}
	return r
}

func outputLookupTable(w io.Writer, results []*LookupResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VALUE\tPROVIDER\tRESULT")
	fmt.Fprintln(tw, "-----\t--------\t------")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t\tERROR: %s\n", r.Value, r.Error)
			continue
		}
		for i, line := range summarize(r.Record) {
			if i == 0 {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Value, r.Provider, line)
			} else {
				fmt.Fprintf(tw, "\t\t%s\n", line)
			}
		}
	}

	return tw.Flush()
}

// summarize renders a record as table lines, one per entry for collections
func summarize(record model.Record) []string {
	switch rec := record.(type) {
	case model.Address:
		return []string{joinNonEmpty(rec.CEP, rec.Street, rec.Neighborhood, rec.City+"/"+rec.State)}
	case model.Company:
		return []string{joinNonEmpty(rec.LegalName, rec.TradeName, rec.Status, rec.City+"/"+rec.State)}
	case model.Bank:
		return []string{joinNonEmpty(rec.Code, rec.Name, rec.ISPB)}
	case model.Banks:
		lines := make([]string, 0, len(rec))
		for _, b := range rec {
			lines = append(lines, joinNonEmpty(b.Code, b.Name, b.ISPB))
		}
		return lines
	case model.AreaCode:
		return []string{fmt.Sprintf("%s: %s", rec.State, strings.Join(rec.Cities, ", "))}
	case model.Holidays:
		lines := make([]string, 0, len(rec))
		for _, h := range rec {
			lines = append(lines, h.Date.Format(time.DateOnly)+"  "+h.Name)
		}
		return lines
	case model.States:
		lines := make([]string, 0, len(rec))
		for _, s := range rec {
			lines = append(lines, joinNonEmpty(s.Code, s.Name, s.Region))
		}
		return lines
	case model.Municipalities:
		lines := make([]string, 0, len(rec))
		for _, m := range rec {
			lines = append(lines, joinNonEmpty(m.IBGECode, m.Name))
		}
		return lines
	case model.VehiclePrices:
		lines := make([]string, 0, len(rec))
		for _, p := range rec {
			lines = append(lines, fmt.Sprintf("%d %s %s (%s): %s", p.ModelYear, p.Brand, p.Model, p.Fuel, decimal.FormatBRL(p.Price)))
		}
		return lines
	case model.VehiclePrice:
		return []string{fmt.Sprintf("%s %d %s %s (%s): %s", rec.FIPECode, rec.ModelYear, rec.Brand, rec.Model, rec.Fuel, decimal.FormatBRL(rec.Price))}
	case model.Brands:
		lines := make([]string, 0, len(rec))
		for _, b := range rec {
			lines = append(lines, joinNonEmpty(b.Code, b.Name))
		}
		return lines
	case model.VehicleModels:
		lines := make([]string, 0, len(rec))
		for _, m := range rec {
			lines = append(lines, joinNonEmpty(m.Code, m.Name))
		}
		return lines
	case model.ModelYears:
		lines := make([]string, 0, len(rec))
		for _, y := range rec {
			lines = append(lines, joinNonEmpty(y.Code, y.Name))
		}
		return lines
	default:
		return []string{fmt.Sprintf("%v", record)}
	}
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && p != "/" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " | ")
}

// LookupResult holds the outcome of resolving a single value
type LookupResult struct {
	Kind     model.Kind   `json:"kind"`
	Value    string       `json:"value,omitempty"`
	Provider string       `json:"provider,omitempty"`
	Record   model.Record `json:"record,omitempty"`
	Failures []string     `json:"failures,omitempty"`
	Error    string       `json:"error,omitempty"`
}
