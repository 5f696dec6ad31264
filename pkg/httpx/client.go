// Package httpx is the HTTP client shared by every gateway. It applies the
// base URL, timeout and JSON defaults, attaches the bearer token read from the
// session at dispatch time and reports 401 responses to the session store.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "hireboard-client/1.0"
	HeaderRequestID  = "X-Request-ID"
)

// TokenSource yields the bearer token to attach, or "" when signed out
type TokenSource interface {
	Token() string
}

// UnauthorizedHandler is told about every 401 together with the token the
// failing request was sent with
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context, token string)
}

// Config holds the static client settings
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client wraps net/http with the job-board API conventions
type Client struct {
	http           *http.Client
	baseURL        string
	userAgent      string
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
	tracer         trace.Tracer
}

// Option customises a Client
type Option func(*Client)

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler sets the 401 hook
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

// WithHTTPClient replaces the underlying *http.Client. Its timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client
func New(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	c := &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		tracer:    otel.Tracer("github.com/Abraxas-365/hireboard/pkg/httpx"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one API call
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Form   *MultipartForm
	Out    any
}

// Get issues a GET and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Out: out})
}

// Post issues a POST with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Out: out})
}

// Put issues a PUT with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body, Out: out})
}

// Patch issues a PATCH with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body, Out: out})
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Out: out})
}

// PostMultipart uploads a multipart form
func (c *Client) PostMultipart(ctx context.Context, path string, form *MultipartForm, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Form: form, Out: out})
}

// Do executes req. Failures are always *errx.Error: TypeExternal when no
// response arrived, otherwise the type derived from the status code.
func (c *Client) Do(ctx context.Context, req Request) error {
	endpoint := c.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, req.Method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", endpoint),
		))
	defer span.End()

	body, contentType, err := encodeBody(req)
	if err != nil {
		span.RecordError(err)
		return errx.Wrap(err, "failed to encode request body", errx.TypeInternal)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		span.RecordError(err)
		return errx.Wrap(err, "failed to create request", errx.TypeInternal)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(HeaderRequestID, requestID)

	// The token is read once here; a session change while the call is in
	// flight does not affect this request.
	var token string
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	logx.L().Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", endpoint).
		Msg("making HTTP request")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		logx.L().Warn().
			Str("request_id", requestID).
			Str("url", endpoint).
			Err(err).
			Msg("HTTP request failed")
		return errx.Transport(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return errx.Transport(fmt.Errorf("read response body: %w", err))
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	logx.L().Debug().
		Str("request_id", requestID).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(payload)).
		Msg("received HTTP response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := errx.FromHTTPResponse(resp.StatusCode, payload)
		span.SetStatus(codes.Error, apiErr.Code)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized.HandleUnauthorized(ctx, token)
		}
		return apiErr
	}

	if req.Out == nil {
		return nil
	}
	if err := Decode(payload, req.Out); err != nil {
		span.RecordError(err)
		return errx.Wrap(err, "failed to decode response", errx.TypeInternal)
	}
	return nil
}

func encodeBody(req Request) (io.Reader, string, error) {
	if req.Form != nil {
		return req.Form.encode()
	}
	if req.Body == nil {
		return nil, "application/json", nil
	}
	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}
