// Package gateway provides the single chokepoint all API calls pass through.
//
// It attaches the current bearer token to outbound requests, tags each
// request with an ID for correlation, and funnels every response or
// transport failure through one handler so cross-cutting concerns
// (forced logout on 401, tracing, ...) have exactly one place to hook
// into. Failures are always propagated to the caller — never swallowed.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	rentadmin "github.com/fleetly/rentadmin-go"
	"github.com/fleetly/rentadmin-go/metrics"
)

// ErrUnreachable indicates the request never reached the server.
var ErrUnreachable = errors.New("rentadmin/gateway: cannot reach server")

// APIError is a structured error response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rentadmin/gateway: server returned %d: %s", e.Status, e.Message)
}

// ResponseHook observes every response that came back from the server.
// Hooks run before status handling and must not consume the body.
type ResponseHook func(resp *http.Response)

// Gateway routes all outbound API calls through a single HTTP client.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	tokens     rentadmin.TokenSource
	logger     *slog.Logger
	metrics    *metrics.Metrics
	hooks      []ResponseHook
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithTimeout bounds every request. Default: 15 seconds.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.httpClient.Timeout = d }
}

// WithTokenSource sets the capability used to read the current bearer
// token. Requests go out without an Authorization header when the
// source is nil or returns an empty token.
func WithTokenSource(ts rentadmin.TokenSource) Option {
	return func(g *Gateway) { g.tokens = ts }
}

// WithLogger sets a structured logger for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithMetrics sets the metrics recorder for request counts and durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// WithResponseHook registers a hook invoked for every response.
func WithResponseHook(h ResponseHook) Option {
	return func(g *Gateway) { g.hooks = append(g.hooks, h) }
}

// New creates a gateway for the given base URL.
func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: rentadmin.DefaultTimeout},
		logger:     slog.Default(),
		metrics:    metrics.New(false),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// SetTokenSource replaces the token source after construction.
// Needed when the authenticator itself is built on top of the gateway.
func (g *Gateway) SetTokenSource(ts rentadmin.TokenSource) {
	g.tokens = ts
}

// BaseURL returns the configured base address.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Get issues a GET request and decodes the JSON response into out.
func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (g *Gateway) Post(ctx context.Context, path string, in, out any) error {
	return g.Do(ctx, http.MethodPost, path, in, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (g *Gateway) Put(ctx context.Context, path string, in, out any) error {
	return g.Do(ctx, http.MethodPut, path, in, out)
}

// Delete issues a DELETE request.
func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.Do(ctx, http.MethodDelete, path, nil, nil)
}

// errorPayload covers the message field variants the API uses.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

func (p errorPayload) text() string {
	switch {
	case p.Error != "":
		return p.Error
	case p.Message != "":
		return p.Message
	default:
		return p.Msg
	}
}

// Do issues a request and decodes the JSON response into out (ignored
// when out is nil). Transport failures are reported as ErrUnreachable;
// non-2xx responses as *APIError.
func (g *Gateway) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("rentadmin/gateway: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("rentadmin/gateway: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := rentadmin.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	if g.tokens != nil {
		if tok := g.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.metrics.RecordRequest(method, 0, time.Since(start))
		g.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	for _, h := range g.hooks {
		h(resp)
	}

	g.metrics.RecordRequest(method, resp.StatusCode, time.Since(start))
	g.logger.Debug("request completed", "method", method, "path", path,
		"request_id", requestID, "status", resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("rentadmin/gateway: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		_ = json.Unmarshal(data, &payload)
		msg := payload.text()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("rentadmin/gateway: decode response: %w", err)
		}
	}
	return nil
}
