package resolver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rezonia/tucano/internal/model"
)

const defaultBatchConcurrency = 4

// ResolveBatch resolves every value of kind with bounded parallelism.
// Outcomes keep the order of values; one failure never cancels the others.
func (r *Resolver) ResolveBatch(ctx context.Context, kind model.Kind, values []string) []Outcome {
	outcomes := make([]Outcome, len(values))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, v := range values {
		g.Go(func() error {
			res, err := r.Resolve(gctx, kind, v)
			outcomes[i] = Outcome{Value: v, Resolution: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
