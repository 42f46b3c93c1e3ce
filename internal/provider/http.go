package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rezonia/tucano/internal/model"
)

const (
	valuePlaceholder = "{value}"
	maxBodySize      = 4 << 20
	defaultTimeout   = 30 * time.Second
	userAgent        = "tucano/1.0"
)

// DecodeFunc adapts a successful response body into a record. Returning
// ErrNotFound marks the lookup as terminal; any other error is bad data.
type DecodeFunc func(value string, body []byte) (model.Record, error)

// HTTPProvider performs one GET per lookup against baseURL+path, where
// path may contain the {value} placeholder
type HTTPProvider struct {
	name    string
	kind    model.Kind
	baseURL string
	path    string
	client  *http.Client
	decode  DecodeFunc

	// notFoundStatus reads HTTP 404 as a terminal not-found; otherwise it is a status failure
	notFoundStatus bool
	// segmented values are split on "/" into the {1}..{n} placeholders
	segmented bool
}

// Option configures an HTTPProvider
type Option func(*HTTPProvider)

// WithBaseURL overrides the service base URL
func WithBaseURL(baseURL string) Option {
	return func(p *HTTPProvider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(client *http.Client) Option {
	return func(p *HTTPProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithNotFoundStatus sets whether HTTP 404 means the value does not exist.
// Services that report missing values in the body answer 404 only on routing errors.
func WithNotFoundStatus(enabled bool) Option {
	return func(p *HTTPProvider) {
		p.notFoundStatus = enabled
	}
}

// WithSegmentedValue splits a "/"-separated key and fills the positional
// placeholders {1}, {2}, ... of the path with its escaped segments
func WithSegmentedValue() Option {
	return func(p *HTTPProvider) {
		p.segmented = true
	}
}

// NewHTTPProvider creates a provider for one endpoint
func NewHTTPProvider(name string, kind model.Kind, baseURL, path string, decode DecodeFunc, opts ...Option) *HTTPProvider {
	p := &HTTPProvider{
		name:    name,
		kind:    kind,
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    path,
		client:  &http.Client{Timeout: defaultTimeout},
		decode:  decode,

		notFoundStatus: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *HTTPProvider) Name() string {
	return p.name
}

// Kind returns the record kind this provider resolves
func (p *HTTPProvider) Kind() model.Kind {
	return p.kind
}

// Endpoint returns the URL requested for value
func (p *HTTPProvider) Endpoint(value string) string {
	if !p.segmented {
		return p.baseURL + strings.ReplaceAll(p.path, valuePlaceholder, url.PathEscape(value))
	}
	path := p.path
	for i, seg := range strings.Split(value, "/") {
		path = strings.ReplaceAll(path, "{"+strconv.Itoa(i+1)+"}", url.PathEscape(seg))
	}
	return p.baseURL + path
}

// Lookup fetches and decodes the record for value
func (p *HTTPProvider) Lookup(ctx context.Context, value string) (model.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoint(value), nil)
	if err != nil {
		return nil, model.NewProviderUnavailableError(p.name, model.CategoryNetwork, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, p.transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, p.transportError(ctx, err)
	}

	if resp.StatusCode == http.StatusNotFound && p.notFoundStatus {
		return nil, model.NewNotFoundError(p.kind, value, p.name)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e := model.NewProviderUnavailableError(p.name, model.CategoryStatus,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
		e.StatusCode = resp.StatusCode
		return nil, e
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, model.NewProviderUnavailableError(p.name, model.CategoryBadData, "empty response body", nil)
	}

	record, err := p.decode(value, body)
	if errors.Is(err, ErrNotFound) {
		return nil, model.NewNotFoundError(p.kind, value, p.name)
	}
	if err != nil {
		return nil, model.NewProviderUnavailableError(p.name, model.CategoryBadData, "failed to decode response", err)
	}
	return record, nil
}

func (p *HTTPProvider) transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return model.NewProviderUnavailableError(p.name, model.CategoryTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.NewProviderUnavailableError(p.name, model.CategoryTimeout, "request timed out", err)
	}
	return model.NewProviderUnavailableError(p.name, model.CategoryNetwork, "request failed", err)
}

// decodeJSON unmarshals body into v
func decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
