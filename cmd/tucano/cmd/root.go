package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rezonia/tucano/internal/config"
	"github.com/rezonia/tucano/internal/identifier"
	"github.com/rezonia/tucano/internal/logger"
	"github.com/rezonia/tucano/internal/resolver"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	configPath   string

	registry = identifier.NewRegistry()
)

var rootCmd = &cobra.Command{
	Use:   "tucano",
	Short: "Validate Brazilian identifiers and resolve them against public APIs",
	Long: `Tucano validates, formats and generates Brazilian identifiers and looks
them up against public reference services.

Supports:
  - Identifiers: CPF, CNPJ, CEP, phone numbers, vehicle plates, PIX keys
  - Lookups: CEP (ViaCEP, BrasilAPI), CNPJ (BrasilAPI, ReceitaWS), banks,
    DDD, holidays, states, municipalities, FIPE prices and brands

Examples:
  # Validate a CPF and a CNPJ
  tucano validate cpf 529.982.247-25
  tucano validate cnpj 11.222.333/0001-81

  # Detect the kind of each value
  tucano validate auto 01001-000 ABC1D23

  # Generate five formatted CPFs
  tucano generate cpf -n 5 --formatted

  # Resolve postal codes with fallback
  tucano lookup cep 01001-000 20040-020 -f table

  # Start the HTTP API
  tucano serve --address :8080`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./tucano.yaml, env: TUCANO_*)")
}

// loadConfig reads the configuration and builds the logger it describes.
// Verbose output lowers the level to debug.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if verbose {
		cfg.Log.Enabled = true
		cfg.Log.Level = "debug"
		cfg.Log.Format = "console"
	}
	printVerbose("Loaded config (providers timeout %s, cep fallback %t)\n", cfg.Provider.Timeout, cfg.Provider.CEPFallback)
	return cfg, logger.Configure(cfg.Log), nil
}

// newResolver wires the provider chains of cfg. A nil registerer skips metrics.
func newResolver(cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer) *resolver.Resolver {
	opts := []resolver.Option{
		resolver.WithLogger(log),
		resolver.WithBatchConcurrency(cfg.Provider.BatchConcurrency),
	}
	if reg != nil {
		opts = append(opts, resolver.WithMetrics(resolver.NewMetrics(reg)))
	}
	return resolver.New(resolver.DefaultDescriptors(cfg.Provider.ResolverSettings()), opts...)
}

func checkOutputFormat() error {
	switch outputFormat {
	case "json", "table":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
