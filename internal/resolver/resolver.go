// Package resolver turns a validated identifier into an external record by
// walking an ordered chain of providers.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/provider"
)

// ErrUnsupportedKind is returned for kinds without a descriptor
var ErrUnsupportedKind = errors.New("unsupported lookup kind")

// Descriptor is the static, read-only resolution plan of one kind
type Descriptor struct {
	Kind model.Kind

	// Normalize validates the raw input before any network call.
	// Nil passes the value through unchanged.
	Normalize func(raw string) (string, error)

	// Providers are attempted in order
	Providers []provider.Provider

	// Timeout bounds each attempt. Zero leaves only the caller's deadline.
	Timeout time.Duration

	// Recoverable decides whether a failure advances the chain.
	// Nil uses provider.IsRecoverable.
	Recoverable func(error) bool
}

func (d Descriptor) recoverable(err error) bool {
	if d.Recoverable != nil {
		return d.Recoverable(err)
	}
	return provider.IsRecoverable(err)
}

// Attempt is one provider call of a resolution
type Attempt struct {
	Provider string
	Err      error
	Duration time.Duration
}

// Resolution is a successful lookup and its trace
type Resolution struct {
	Kind     model.Kind
	Value    string
	Record   model.Record
	Provider string
	Attempts []Attempt
}

// Failures returns the recoverable failures absorbed before success
func (r *Resolution) Failures() []Attempt {
	var failed []Attempt
	for _, a := range r.Attempts {
		if a.Err != nil {
			failed = append(failed, a)
		}
	}
	return failed
}

// Outcome carries the result of an asynchronous resolution
type Outcome struct {
	Value      string
	Resolution *Resolution
	Err        error
}

// Resolver dispatches lookups to the descriptor of each kind. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	descriptors map[model.Kind]Descriptor
	logger      zerolog.Logger
	metrics     *Metrics
	concurrency int
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sets the logger used for attempt diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithMetrics enables attempt metrics
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithBatchConcurrency bounds the parallelism of ResolveBatch
func WithBatchConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New creates a resolver. A later descriptor replaces an earlier one of the same kind.
func New(descriptors []Descriptor, opts ...Option) *Resolver {
	r := &Resolver{
		descriptors: make(map[model.Kind]Descriptor, len(descriptors)),
		logger:      zerolog.Nop(),
		concurrency: defaultBatchConcurrency,
	}
	for _, d := range descriptors {
		r.descriptors[d.Kind] = d
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Descriptor returns the plan registered for kind
func (r *Resolver) Descriptor(kind model.Kind) (Descriptor, bool) {
	d, ok := r.descriptors[kind]
	return d, ok
}

// Kinds returns every resolvable kind, sorted
func (r *Resolver) Kinds() []model.Kind {
	kinds := make([]model.Kind, 0, len(r.descriptors))
	for k := range r.descriptors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Resolve validates raw and walks the provider chain of kind until one
// provider succeeds or a terminal failure occurs
func (r *Resolver) Resolve(ctx context.Context, kind model.Kind, raw string) (*Resolution, error) {
	d, ok := r.descriptors[kind]
	if !ok || len(d.Providers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}

	value := raw
	if d.Normalize != nil {
		normalized, err := d.Normalize(raw)
		if err != nil {
			return nil, err
		}
		value = normalized
	}

	res := &Resolution{Kind: kind, Value: value}
	var (
		failures     []*model.ProviderUnavailableError
		lastNotFound *model.NotFoundError
		unavailable  int
	)

	for _, p := range d.Providers {
		if err := ctx.Err(); err != nil {
			r.metrics.observeResolution(kind, outcomeCancelled)
			return nil, model.NewCancelledError(kind, value, err)
		}

		record, elapsed, err := r.attempt(ctx, d, p, value)
		res.Attempts = append(res.Attempts, Attempt{Provider: p.Name(), Err: err, Duration: elapsed})

		if err == nil {
			r.metrics.observeAttempt(kind, p.Name(), outcomeSuccess, elapsed)
			r.metrics.observeResolution(kind, outcomeSuccess)
			r.logger.Debug().
				Str("kind", string(kind)).
				Str("provider", p.Name()).
				Dur("duration", elapsed).
				Int("attempts", len(res.Attempts)).
				Msg("lookup resolved")
			res.Record = record
			res.Provider = p.Name()
			return res, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			r.metrics.observeAttempt(kind, p.Name(), outcomeCancelled, elapsed)
			r.metrics.observeResolution(kind, outcomeCancelled)
			return nil, model.NewCancelledError(kind, value, ctxErr)
		}

		r.metrics.observeAttempt(kind, p.Name(), outcomeOf(err), elapsed)

		if !d.recoverable(err) {
			r.metrics.observeResolution(kind, outcomeOf(err))
			r.logger.Debug().
				Str("kind", string(kind)).
				Str("provider", p.Name()).
				Err(err).
				Msg("lookup stopped on terminal failure")
			return nil, err
		}

		r.logger.Warn().
			Str("kind", string(kind)).
			Str("provider", p.Name()).
			Dur("duration", elapsed).
			Err(err).
			Msg("provider attempt failed, trying next")

		var providerErr *model.ProviderUnavailableError
		var notFound *model.NotFoundError
		switch {
		case errors.As(err, &providerErr):
			failures = append(failures, providerErr)
			unavailable++
		case errors.As(err, &notFound):
			// kept in attempt order; the cause is left out so the aggregate never reads as a not-found
			failures = append(failures, model.NewProviderUnavailableError(p.Name(), model.CategoryNotFound, notFound.Error(), nil))
			lastNotFound = notFound
		default:
			failures = append(failures, model.NewProviderUnavailableError(p.Name(), model.CategoryNetwork, "unexpected provider failure", err))
			unavailable++
		}
	}

	if unavailable == 0 && lastNotFound != nil {
		r.metrics.observeResolution(kind, outcomeNotFound)
		return nil, lastNotFound
	}
	r.metrics.observeResolution(kind, outcomeUnavailable)
	if len(d.Providers) == 1 && len(failures) == 1 {
		return nil, failures[0]
	}
	return nil, model.NewAllProvidersUnavailableError(kind, value, failures)
}

// attempt runs one provider call under the descriptor timeout and
// guarantees the failure is typed
func (r *Resolver) attempt(ctx context.Context, d Descriptor, p provider.Provider, value string) (model.Record, time.Duration, error) {
	attemptCtx := ctx
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	start := time.Now()
	record, err := p.Lookup(attemptCtx, value)
	elapsed := time.Since(start)

	if err != nil {
		return nil, elapsed, normalizeError(attemptCtx, p.Name(), err)
	}
	if record == nil {
		return nil, elapsed, model.NewProviderUnavailableError(p.Name(), model.CategoryBadData, "provider returned no record", nil)
	}
	return record, elapsed, nil
}

func normalizeError(ctx context.Context, name string, err error) error {
	var (
		unavailable *model.ProviderUnavailableError
		notFound    *model.NotFoundError
	)
	if errors.As(err, &unavailable) || errors.As(err, &notFound) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return model.NewProviderUnavailableError(name, model.CategoryTimeout, "attempt timed out", err)
	}
	return model.NewProviderUnavailableError(name, model.CategoryNetwork, "unexpected provider failure", err)
}

// ResolveAsync runs Resolve on its own goroutine. The returned channel
// receives exactly one outcome and is then closed.
func (r *Resolver) ResolveAsync(ctx context.Context, kind model.Kind, raw string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		res, err := r.Resolve(ctx, kind, raw)
		out <- Outcome{Value: raw, Resolution: res, Err: err}
	}()
	return out
}
