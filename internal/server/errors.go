package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/tucano/internal/identifier"
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/resolver"
)

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	var (
		notFound    *model.NotFoundError
		cancelled   *model.CancelledError
		all         *model.AllProvidersUnavailableError
		unavailable *model.ProviderUnavailableError
	)
	switch {
	case model.IsInputError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, identifier.ErrUnknownKind), errors.Is(err, resolver.ErrUnsupportedKind):
		return http.StatusNotFound
	case errors.Is(err, identifier.ErrGenerateUnsupported):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &cancelled):
		return http.StatusRequestTimeout
	case errors.As(err, &all), errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, kind model.Kind) {
	resp := ErrorResponse{Error: err.Error(), Kind: kind}

	var all *model.AllProvidersUnavailableError
	var single *model.ProviderUnavailableError
	switch {
	case errors.As(err, &all):
		for _, f := range all.Failures {
			resp.Failures = append(resp.Failures, FailureOutput{Provider: f.Provider, Category: f.Category, Error: f.Error()})
		}
	case errors.As(err, &single):
		resp.Failures = []FailureOutput{{Provider: single.Provider, Category: single.Category, Error: single.Error()}}
	}

	c.JSON(statusFor(err), resp)
}
