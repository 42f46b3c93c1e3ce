package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/rezonia/tucano/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for validation and lookups.

The API provides endpoints for:
  - GET  /api/v1/kinds                 - Supported kinds
  - POST /api/v1/validate/:kind        - Validate one value or a batch
  - POST /api/v1/format/:kind          - Format a value
  - GET  /api/v1/generate/:kind        - Generate test values
  - POST /api/v1/pix/classify          - Classify a PIX key
  - POST /api/v1/pix/batch             - Classify many PIX keys
  - GET  /api/v1/lookup/:kind[/:value] - Resolve against providers
  - GET  /metrics                      - Prometheus metrics
  - GET  /health                       - Health check

Flags override the server section of the config file.

Examples:
  # Start server on default port
  tucano serve

  # Start on custom port in debug mode
  tucano serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 15*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 30*time.Second, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Server.Address = serverAddr
	}
	if flags.Changed("debug") {
		cfg.Server.Debug = serverDebug
	}
	if flags.Changed("read-timeout") {
		cfg.Server.ReadTimeout = readTimeout
	}
	if flags.Changed("write-timeout") {
		cfg.Server.WriteTimeout = writeTimeout
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	res := newResolver(cfg, log, reg)
	srv := server.NewServer(&server.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Debug:        cfg.Server.Debug,
	}, res, server.WithLogger(log), server.WithGatherer(reg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lookups := make([]string, 0, len(res.Kinds()))
	for _, k := range res.Kinds() {
		lookups = append(lookups, string(k))
	}
	log.Info().
		Str("address", cfg.Server.Address).
		Strs("lookups", lookups).
		Msg("starting server")

	return srv.Run(ctx)
}
