package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rezonia/tucano/internal/identifier"
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/pattern"
	"github.com/rezonia/tucano/internal/pix"
	"github.com/rezonia/tucano/internal/resolver"
)

const (
	defaultLookupTimeout = 30 * time.Second
	shutdownTimeout      = 10 * time.Second
	maxBatchSize         = 100
)

// Config holds server configuration
type Config struct {
	Address       string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	LookupTimeout time.Duration
	Debug         bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	registry *identifier.Registry
	resolver *resolver.Resolver
	logger   zerolog.Logger
	gatherer prometheus.Gatherer
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer sets the registry exposed on /metrics
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithRegistry replaces the identifier registry
func WithRegistry(r *identifier.Registry) Option {
	return func(s *Server) {
		s.registry = r
	}
}

// NewServer creates a new API server
func NewServer(config *Config, res *resolver.Resolver, opts ...Option) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:   config,
		router:   gin.New(),
		registry: identifier.NewRegistry(),
		resolver: res,
		logger:   zerolog.Nop(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger(s.logger))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/kinds", s.handleKinds)

		v1.POST("/validate/:kind", s.handleValidate)
		v1.POST("/format/:kind", s.handleFormat)
		v1.GET("/generate/:kind", s.handleGenerate)

		v1.POST("/pix/classify", s.handlePixClassify)
		v1.POST("/pix/batch", s.handlePixBatch)

		// directory kinds such as banks and states take no value
		v1.GET("/lookup/:kind", s.handleLookup)
		v1.GET("/lookup/:kind/*value", s.handleLookup)
	}
}

// Run starts the HTTP server and drains in-flight requests once ctx is done
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleKinds(c *gin.Context) {
	resp := KindsResponse{Validators: s.registry.Kinds()}
	if s.resolver != nil {
		resp.Lookups = s.resolver.Kinds()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleValidate(c *gin.Context) {
	kind := model.Kind(c.Param("kind"))
	if _, ok := s.registry.Get(kind); !ok {
		respondError(c, identifier.ErrUnknownKind, kind)
		return
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	values := req.Values
	if req.Value != "" {
		values = append([]string{req.Value}, values...)
	}
	if len(values) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "value or values is required"})
		return
	}
	if len(values) > maxBatchSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "too many values", Details: "at most " + strconv.Itoa(maxBatchSize)})
		return
	}

	results := make([]ValidationResponse, 0, len(values))
	for _, v := range values {
		results = append(results, s.validateOne(kind, v))
	}

	if req.Value != "" && len(req.Values) == 0 {
		c.JSON(http.StatusOK, results[0])
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) validateOne(kind model.Kind, value string) ValidationResponse {
	resp := ValidationResponse{Kind: kind, Value: value}
	if err := s.registry.Check(kind, value); err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Valid = true
	resp.Formatted, _ = s.registry.Format(kind, value)

	switch kind {
	case model.KindPhone:
		if phone, err := pattern.ParsePhone(value); err == nil {
			resp.Details = phone
		}
	case model.KindPlate:
		if plate, err := pattern.ParsePlate(value); err == nil {
			resp.Details = plate
		}
	case model.KindPix:
		resp.Details = pix.Describe(value)
	}
	return resp
}

func (s *Server) handleFormat(c *gin.Context) {
	kind := model.Kind(c.Param("kind"))

	var req FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	formatted, err := s.registry.Format(kind, req.Value)
	if err != nil {
		respondError(c, err, kind)
		return
	}

	c.JSON(http.StatusOK, FormatResponse{Kind: kind, Value: req.Value, Formatted: formatted})
}

func (s *Server) handleGenerate(c *gin.Context) {
	kind := model.Kind(c.Param("kind"))

	var query GenerateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query", Details: err.Error()})
		return
	}
	count := query.Count
	if count == 0 {
		count = 1
	}

	opts := identifier.GenerateOptions{
		Formatted:   query.Formatted,
		AreaCode:    query.AreaCode,
		PhoneType:   model.PhoneType(query.PhoneType),
		PlateFormat: model.PlateFormat(query.PlateFormat),
		Branch:      query.Branch,
	}

	values := make([]string, 0, count)
	for i := 0; i < count; i++ {
		v, err := s.registry.Generate(kind, opts)
		if err != nil {
			respondError(c, err, kind)
			return
		}
		values = append(values, v)
	}

	c.JSON(http.StatusOK, GenerateResponse{Kind: kind, Values: values})
}

func (s *Server) handlePixClassify(c *gin.Context) {
	var req PixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	if _, err := pix.Classify(req.Key); err != nil {
		respondError(c, err, model.KindPix)
		return
	}
	c.JSON(http.StatusOK, pix.Describe(req.Key))
}

func (s *Server) handlePixBatch(c *gin.Context) {
	var req PixBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, pix.ValidateBatch(req.Keys))
}

func (s *Server) handleLookup(c *gin.Context) {
	if s.resolver == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "lookups are disabled"})
		return
	}
	kind := model.Kind(c.Param("kind"))

	timeout := s.config.LookupTimeout
	if timeout == 0 {
		timeout = defaultLookupTimeout
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	// composite keys such as carros/59/5940 arrive through the catch-all
	value := strings.TrimPrefix(c.Param("value"), "/")
	res, err := s.resolver.Resolve(ctx, kind, value)
	if err != nil {
		respondError(c, err, kind)
		return
	}

	c.JSON(http.StatusOK, newLookupResponse(res))
}
