package tucano

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/resolver"
)

// Options configures a Client
type Options struct {
	// Per-attempt timeouts
	Timeout     time.Duration
	CNPJTimeout time.Duration

	// Service base URLs
	ViaCEPURL     string
	BrasilAPIURL  string
	ReceitaWSURL  string
	ParallelumURL string

	// Chain shape
	CEPFallback         bool // BrasilAPI after ViaCEP
	CNPJReceitaWS       bool // ReceitaWS after BrasilAPI
	NotFoundRecoverable bool // a not-found advances the chain

	BatchConcurrency int

	HTTPClient *http.Client
	Logger     *zerolog.Logger      // nil disables logging
	Registerer prometheus.Registerer // nil disables metrics
}

// DefaultOptions returns the production endpoints and timeouts
func DefaultOptions() Options {
	s := resolver.DefaultSettings()
	return Options{
		Timeout:          s.Timeout,
		CNPJTimeout:      s.CNPJTimeout,
		ViaCEPURL:        s.ViaCEPURL,
		BrasilAPIURL:     s.BrasilAPIURL,
		ReceitaWSURL:     s.ReceitaWSURL,
		ParallelumURL:    s.ParallelumURL,
		CEPFallback:      s.CEPFallback,
		BatchConcurrency: 4,
	}
}

// Client resolves identifiers against external reference services.
// It is safe for concurrent use.
type Client struct {
	resolver *resolver.Resolver
}

// NewClient creates a client with the given options
func NewClient(opts Options) *Client {
	settings := resolver.Settings{
		Timeout:             opts.Timeout,
		CNPJTimeout:         opts.CNPJTimeout,
		ViaCEPURL:           opts.ViaCEPURL,
		BrasilAPIURL:        opts.BrasilAPIURL,
		ReceitaWSURL:        opts.ReceitaWSURL,
		ParallelumURL:       opts.ParallelumURL,
		CEPFallback:         opts.CEPFallback,
		CNPJReceitaWS:       opts.CNPJReceitaWS,
		NotFoundRecoverable: opts.NotFoundRecoverable,
		HTTPClient:          opts.HTTPClient,
	}

	resolverOpts := []resolver.Option{resolver.WithBatchConcurrency(opts.BatchConcurrency)}
	if opts.Logger != nil {
		resolverOpts = append(resolverOpts, resolver.WithLogger(*opts.Logger))
	}
	if opts.Registerer != nil {
		resolverOpts = append(resolverOpts, resolver.WithMetrics(resolver.NewMetrics(opts.Registerer)))
	}

	return &Client{resolver: resolver.New(resolver.DefaultDescriptors(settings), resolverOpts...)}
}

// NewDefaultClient creates a client with default options
func NewDefaultClient() *Client {
	return NewClient(DefaultOptions())
}

// Kinds lists every resolvable kind
func (c *Client) Kinds() []Kind {
	return c.resolver.Kinds()
}

// Resolve looks up value of any resolvable kind and returns the full trace
func (c *Client) Resolve(ctx context.Context, kind Kind, value string) (*Resolution, error) {
	return c.resolver.Resolve(ctx, kind, value)
}

// ResolveAsync resolves on a background goroutine; the channel yields one outcome
func (c *Client) ResolveAsync(ctx context.Context, kind Kind, value string) <-chan Outcome {
	return c.resolver.ResolveAsync(ctx, kind, value)
}

// ResolveBatch resolves many values of one kind in parallel, preserving order
func (c *Client) ResolveBatch(ctx context.Context, kind Kind, values []string) []Outcome {
	return c.resolver.ResolveBatch(ctx, kind, values)
}

// LookupCEP resolves a postal code to its address
func (c *Client) LookupCEP(ctx context.Context, cep string) (Address, error) {
	return resolveAs[model.Address](ctx, c, model.KindCEP, cep)
}

// LookupCEPAsync resolves a postal code on a background goroutine
func (c *Client) LookupCEPAsync(ctx context.Context, cep string) <-chan Outcome {
	return c.resolver.ResolveAsync(ctx, model.KindCEP, cep)
}

// LookupCNPJ resolves a CNPJ to its company registration
func (c *Client) LookupCNPJ(ctx context.Context, cnpj string) (Company, error) {
	return resolveAs[model.Company](ctx, c, model.KindCNPJ, cnpj)
}

// LookupCNPJAsync resolves a CNPJ on a background goroutine
func (c *Client) LookupCNPJAsync(ctx context.Context, cnpj string) <-chan Outcome {
	return c.resolver.ResolveAsync(ctx, model.KindCNPJ, cnpj)
}

// LookupBank resolves a compensation code such as 1 or 341
func (c *Client) LookupBank(ctx context.Context, code string) (Bank, error) {
	return resolveAs[model.Bank](ctx, c, model.KindBank, code)
}

// ListBanks returns the full bank directory
func (c *Client) ListBanks(ctx context.Context) (Banks, error) {
	return resolveAs[model.Banks](ctx, c, model.KindBanks, "")
}

// SearchBanks returns directory entries whose name contains query, ignoring case
func (c *Client) SearchBanks(ctx context.Context, query string) (Banks, error) {
	banks, err := c.ListBanks(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var matched Banks
	for _, b := range banks {
		if strings.Contains(strings.ToLower(b.Name), q) || strings.Contains(strings.ToLower(b.FullName), q) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// LookupDDD returns the state and cities served by an area code
func (c *Client) LookupDDD(ctx context.Context, ddd string) (AreaCode, error) {
	return resolveAs[model.AreaCode](ctx, c, model.KindDDD, ddd)
}

// Holidays returns the national holidays of year, sorted by date
func (c *Client) Holidays(ctx context.Context, year int) (Holidays, error) {
	return resolveAs[model.Holidays](ctx, c, model.KindHolidays, strconv.Itoa(year))
}

// IsHoliday reports whether day is a national holiday
func (c *Client) IsHoliday(ctx context.Context, day time.Time) (Holiday, bool, error) {
	holidays, err := c.Holidays(ctx, day.Year())
	if err != nil {
		return Holiday{}, false, err
	}
	h, ok := holidays.On(day)
	return h, ok, nil
}

// NextHoliday returns the first national holiday on or after from
func (c *Client) NextHoliday(ctx context.Context, from time.Time) (Holiday, error) {
	y, m, d := from.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	for _, year := range []int{y, y + 1} {
		holidays, err := c.Holidays(ctx, year)
		if err != nil {
			return Holiday{}, err
		}
		for _, h := range holidays {
			if !h.Date.Before(start) {
				return h, nil
			}
		}
	}
	return Holiday{}, model.NewNotFoundError(model.KindHolidays, start.Format(time.DateOnly), "")
}

// States returns every federative unit
func (c *Client) States(ctx context.Context) (States, error) {
	return resolveAs[model.States](ctx, c, model.KindStates, "")
}

// State returns one federative unit by its abbreviation, in any case
func (c *Client) State(ctx context.Context, uf string) (State, error) {
	code, err := resolver.NormalizeUF(uf)
	if err != nil {
		return State{}, err
	}
	states, err := c.States(ctx)
	if err != nil {
		return State{}, err
	}
	for _, s := range states {
		if s.Code == code {
			return s, nil
		}
	}
	return State{}, model.NewNotFoundError(model.KindStates, code, "")
}

// Municipalities returns the municipalities of a federative unit
func (c *Client) Municipalities(ctx context.Context, uf string) (Municipalities, error) {
	return resolveAs[model.Municipalities](ctx, c, model.KindMunicipalities, uf)
}

// SearchMunicipalities returns the municipalities of uf whose name contains name, ignoring case
func (c *Client) SearchMunicipalities(ctx context.Context, uf, name string) (Municipalities, error) {
	municipalities, err := c.Municipalities(ctx, uf)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(name))
	var matched Municipalities
	for _, m := range municipalities {
		if strings.Contains(strings.ToLower(m.Name), q) {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

// FIPEPrices returns the FIPE table prices of a vehicle code, one per model year
func (c *Client) FIPEPrices(ctx context.Context, code string) (VehiclePrices, error) {
	return resolveAs[model.VehiclePrices](ctx, c, model.KindFIPE, code)
}

// FIPEBrands returns the brands of carros, motos or caminhoes
func (c *Client) FIPEBrands(ctx context.Context, vehicleType string) (VehicleBrands, error) {
	return resolveAs[model.Brands](ctx, c, model.KindFIPEBrands, vehicleType)
}

// SearchFIPEBrands returns the brands of vehicleType whose name contains query, ignoring case
func (c *Client) SearchFIPEBrands(ctx context.Context, vehicleType, query string) (VehicleBrands, error) {
	brands, err := c.FIPEBrands(ctx, vehicleType)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var matched VehicleBrands
	for _, b := range brands {
		if strings.Contains(strings.ToLower(b.Name), q) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// FIPEModels returns the models of a brand, by brand code
func (c *Client) FIPEModels(ctx context.Context, vehicleType, brand string) (VehicleModels, error) {
	return resolveAs[model.VehicleModels](ctx, c, model.KindFIPEModels, fipeKey(vehicleType, brand))
}

// FIPEYears returns the model year codes priced for a model
func (c *Client) FIPEYears(ctx context.Context, vehicleType, brand, modelCode string) (ModelYears, error) {
	return resolveAs[model.ModelYears](ctx, c, model.KindFIPEYears, fipeKey(vehicleType, brand, modelCode))
}

// FIPEPrice returns the FIPE price of one model year, with year codes as listed by FIPEYears
func (c *Client) FIPEPrice(ctx context.Context, vehicleType, brand, modelCode, year string) (VehiclePrice, error) {
	return resolveAs[model.VehiclePrice](ctx, c, model.KindFIPEVehicle, fipeKey(vehicleType, brand, modelCode, year))
}

// fipeKey joins browse segments; a segment holding "/" yields a key the normalizer rejects
func fipeKey(segments ...string) string {
	return strings.Join(segments, "/")
}

func resolveAs[T model.Record](ctx context.Context, c *Client, kind model.Kind, value string) (T, error) {
	var zero T
	res, err := c.resolver.Resolve(ctx, kind, value)
	if err != nil {
		return zero, err
	}
	record, ok := res.Record.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected %T record for %s", res.Record, kind)
	}
	return record, nil
}
