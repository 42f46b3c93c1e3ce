// Package provider adapts external reference services to a single lookup
// contract and normalizes their failures.
package provider

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks github.com/rezonia/tucano/internal/provider Provider

import (
	"context"
	"errors"

	"github.com/rezonia/tucano/internal/model"
)

// Default base URLs of the supported services
const (
	ViaCEPBaseURL     = "https://viacep.com.br"
	BrasilAPIBaseURL  = "https://brasilapi.com.br"
	ReceitaWSBaseURL  = "https://www.receitaws.com.br"
	ParallelumBaseURL = "https://parallelum.com.br/fipe/api/v1"
)

// Provider resolves one normalized identifier against an external service
type Provider interface {
	// Name returns a unique identifier for this provider
	Name() string

	// Lookup fetches and adapts the record for value. Failures are either a
	// *model.NotFoundError or a *model.ProviderUnavailableError.
	Lookup(ctx context.Context, value string) (model.Record, error)
}

// ErrNotFound is returned by decoders when the payload says the record does not exist
var ErrNotFound = errors.New("record not found")

// IsRecoverable reports whether err should advance a fallback chain
func IsRecoverable(err error) bool {
	var unavailable *model.ProviderUnavailableError
	return errors.As(err, &unavailable)
}

// Category extracts the failure category, or "" when err is not a provider failure
func Category(err error) model.ErrorCategory {
	var unavailable *model.ProviderUnavailableError
	if errors.As(err, &unavailable) {
		return unavailable.Category
	}
	return ""
}
