// Package restclient is a small JSON client for the ce1sus REST backend.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ce1sus-console-restclient")

type Options struct {
	BaseURL         string
	Timeout         time.Duration
	Authorization   string
	RequestIDHeader string
	HTTPClient      *http.Client
}

type Client struct {
	baseURL         *url.URL
	authorization   string
	httpClient      *http.Client
	requestIDHeader string
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimSpace(opts.BaseURL)
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url: %q", baseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Client{
		baseURL:         u,
		authorization:   strings.TrimSpace(opts.Authorization),
		httpClient:      httpClient,
		requestIDHeader: opts.RequestIDHeader,
	}, nil
}

// DoJSON sends reqBody as JSON and decodes a 2xx response into out (when out is non-nil).
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, reqBody any, out any) error {
	respBody, err := c.Do(ctx, method, path, query, reqBody)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s %s: json unmarshal response: %w", method, path, err)
	}
	return nil
}

// Do performs the call and returns the raw body of a 2xx response. Any other
// outcome is reported as *StatusError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, reqBody any) ([]byte, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("%s %s: json marshal request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	ctx, span := tracer.Start(ctx, "restclient "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", routeLabel(path)),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: http request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, uuid.NewString())
	}
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordMetrics(method, path, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "backend unreachable")
		return nil, &StatusError{Method: method, Path: path, Status: 0, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	recordMetrics(method, path, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if err != nil {
		return nil, &StatusError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, resp.Status)
		return nil, &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: respBody}
	}
	return respBody, nil
}

// Ping reports whether the backend answers at all. Any HTTP response, even an
// error status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, http.MethodGet, "/group", nil, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status != 0 {
		return nil
	}
	return err
}
