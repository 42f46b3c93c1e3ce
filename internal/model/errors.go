package model

import (
	"errors"
	"fmt"
	"strings"
)

// FormatError reports structurally malformed input, detected before any
// checksum or network work
type FormatError struct {
	Kind    Kind
	Value   string
	Message string
}

func (e *FormatError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s format: %s (value=%q)", e.Kind, e.Message, e.Value)
	}
	return fmt.Sprintf("invalid %s format: %s", e.Kind, e.Message)
}

// NewFormatError creates a new format error
func NewFormatError(kind Kind, value, message string) *FormatError {
	return &FormatError{
		Kind:    kind,
		Value:   value,
		Message: message,
	}
}

// ChecksumError reports a well-formed identifier whose check digits do not match
type ChecksumError struct {
	Kind  Kind
	Value string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("invalid %s: check digits do not match (value=%q)", e.Kind, e.Value)
}

// NewChecksumError creates a new checksum error
func NewChecksumError(kind Kind, value string) *ChecksumError {
	return &ChecksumError{Kind: kind, Value: value}
}

// UnknownAreaCodeError reports a DDD missing from the area code table
type UnknownAreaCodeError struct {
	AreaCode string
}

func (e *UnknownAreaCodeError) Error() string {
	return fmt.Sprintf("unknown area code %q", e.AreaCode)
}

// NewUnknownAreaCodeError creates a new unknown area code error
func NewUnknownAreaCodeError(areaCode string) *UnknownAreaCodeError {
	return &UnknownAreaCodeError{AreaCode: areaCode}
}

// UnrecognizedPixKeyError reports a string that matches none of the PIX key shapes
type UnrecognizedPixKeyError struct {
	Value string
}

func (e *UnrecognizedPixKeyError) Error() string {
	return fmt.Sprintf("unrecognized PIX key %q", e.Value)
}

// NewUnrecognizedPixKeyError creates a new unrecognized PIX key error
func NewUnrecognizedPixKeyError(value string) *UnrecognizedPixKeyError {
	return &UnrecognizedPixKeyError{Value: value}
}

// NotFoundError reports that a provider confirmed the identifier does not exist
type NotFoundError struct {
	Kind     Kind
	Value    string
	Provider string
}

func (e *NotFoundError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %q not found [%s]", e.Kind, e.Value, e.Provider)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Value)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(kind Kind, value, provider string) *NotFoundError {
	return &NotFoundError{Kind: kind, Value: value, Provider: provider}
}

// ErrorCategory classifies a recoverable provider failure
type ErrorCategory string

const (
	// CategoryTimeout indicates the attempt exceeded its deadline
	CategoryTimeout ErrorCategory = "timeout"

	// CategoryNetwork indicates the request never got a response
	CategoryNetwork ErrorCategory = "network"

	// CategoryStatus indicates a non-2xx response
	CategoryStatus ErrorCategory = "status"

	// CategoryBadData indicates an empty or malformed payload
	CategoryBadData ErrorCategory = "bad_data"

	// CategoryNotFound indicates a not-found that was allowed to advance the chain
	CategoryNotFound ErrorCategory = "not_found"
)

// ProviderUnavailableError is a single recoverable provider failure
type ProviderUnavailableError struct {
	Provider   string
	Category   ErrorCategory
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s [%s]: %s (%v)", e.Provider, e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.Provider, e.Category, e.Message)
}

func (e *ProviderUnavailableError) Unwrap() error {
	return e.Cause
}

// NewProviderUnavailableError creates a new provider unavailable error
func NewProviderUnavailableError(provider string, category ErrorCategory, message string, cause error) *ProviderUnavailableError {
	return &ProviderUnavailableError{
		Provider: provider,
		Category: category,
		Message:  message,
		Cause:    cause,
	}
}

// AllProvidersUnavailableError aggregates every recoverable failure of a
// fallback chain, in attempt order
type AllProvidersUnavailableError struct {
	Kind     Kind
	Value    string
	Failures []*ProviderUnavailableError
}

func (e *AllProvidersUnavailableError) Error() string {
	reasons := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reasons = append(reasons, f.Error())
	}
	return fmt.Sprintf("all providers unavailable for %s %q: %s", e.Kind, e.Value, strings.Join(reasons, "; "))
}

func (e *AllProvidersUnavailableError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// NewAllProvidersUnavailableError creates a new aggregate error
func NewAllProvidersUnavailableError(kind Kind, value string, failures []*ProviderUnavailableError) *AllProvidersUnavailableError {
	return &AllProvidersUnavailableError{
		Kind:     kind,
		Value:    value,
		Failures: failures,
	}
}

// CancelledError reports a lookup aborted by the caller
type CancelledError struct {
	Kind  Kind
	Value string
	Cause error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("lookup of %s %q cancelled: %v", e.Kind, e.Value, e.Cause)
}

func (e *CancelledError) Unwrap() error {
	return e.Cause
}

// NewCancelledError creates a new cancelled error
func NewCancelledError(kind Kind, value string, cause error) *CancelledError {
	return &CancelledError{Kind: kind, Value: value, Cause: cause}
}

// IsInputError reports whether err is caused by the caller's input rather
// than by a provider
func IsInputError(err error) bool {
	var (
		formatErr   *FormatError
		checksumErr *ChecksumError
		areaErr     *UnknownAreaCodeError
		pixErr      *UnrecognizedPixKeyError
	)
	return errors.As(err, &formatErr) ||
		errors.As(err, &checksumErr) ||
		errors.As(err, &areaErr) ||
		errors.As(err, &pixErr)
}
