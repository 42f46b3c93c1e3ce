package server

import (
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/provider"
	"github.com/rezonia/tucano/internal/resolver"
)

// ValidateRequest carries one value or a batch
type ValidateRequest struct {
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

// ValidationResponse is the response for validate endpoints
type ValidationResponse struct {
	Kind      model.Kind `json:"kind"`
	Value     string     `json:"value"`
	Valid     bool       `json:"valid"`
	Formatted string     `json:"formatted,omitempty"`
	Error     string     `json:"error,omitempty"`
	Details   any        `json:"details,omitempty"`
}

// FormatRequest is the body of format endpoints
type FormatRequest struct {
	Value string `json:"value" binding:"required"`
}

// FormatResponse is the response for format endpoints
type FormatResponse struct {
	Kind      model.Kind `json:"kind"`
	Value     string     `json:"value"`
	Formatted string     `json:"formatted"`
}

// GenerateQuery holds generate endpoint parameters
type GenerateQuery struct {
	Count       int    `form:"count" binding:"omitempty,min=1,max=100"`
	Formatted   bool   `form:"formatted"`
	AreaCode    string `form:"ddd" binding:"omitempty,len=2,numeric"`
	PhoneType   string `form:"type" binding:"omitempty,oneof=landline mobile"`
	PlateFormat string `form:"plate_format" binding:"omitempty,oneof=legacy mercosul"`
	Branch      int    `form:"branch" binding:"omitempty,min=1,max=9999"`
}

// GenerateResponse is the response for generate endpoints
type GenerateResponse struct {
	Kind   model.Kind `json:"kind"`
	Values []string   `json:"values"`
}

// PixRequest is the body of the classify endpoint
type PixRequest struct {
	Key string `json:"key" binding:"required"`
}

// PixBatchRequest is the body of the batch endpoint
type PixBatchRequest struct {
	Keys []string `json:"keys" binding:"required,min=1,max=100"`
}

// KindsResponse lists the supported kinds
type KindsResponse struct {
	Validators []model.Kind `json:"validators"`
	Lookups    []model.Kind `json:"lookups"`
}

// FailureOutput is one absorbed provider failure
type FailureOutput struct {
	Provider   string              `json:"provider"`
	Category   model.ErrorCategory `json:"category,omitempty"`
	Error      string              `json:"error"`
	DurationMS int64               `json:"duration_ms"`
}

// LookupResponse is the response for lookup endpoints
type LookupResponse struct {
	Kind     model.Kind      `json:"kind"`
	Value    string          `json:"value,omitempty"`
	Provider string          `json:"provider"`
	Record   model.Record    `json:"record"`
	Failures []FailureOutput `json:"failures,omitempty"`
}

func newLookupResponse(res *resolver.Resolution) LookupResponse {
	resp := LookupResponse{
		Kind:     res.Kind,
		Value:    res.Value,
		Provider: res.Provider,
		Record:   res.Record,
	}
	for _, f := range res.Failures() {
		resp.Failures = append(resp.Failures, FailureOutput{
			Provider:   f.Provider,
			Category:   provider.Category(f.Err),
			Error:      f.Err.Error(),
			DurationMS: f.Duration.Milliseconds(),
		})
	}
	return resp
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string          `json:"error"`
	Kind     model.Kind      `json:"kind,omitempty"`
	Details  string          `json:"details,omitempty"`
	Failures []FailureOutput `json:"failures,omitempty"`
}
