// Package commerceapi is the HTTP client for the remote commerce API that owns
// the catalog, orders and accounts.
package commerceapi

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

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/logger"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"

	responseBodyLimit int64 = 4 << 20
)

// TokenSource yields the bearer token to attach, or "" for none.
type TokenSource func() string

// BreakerSettings tunes the circuit breaker in front of the API.
type BreakerSettings struct {
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	OpenTimeout time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      TokenSource
	breaker    *gobreaker.CircuitBreaker[*response]
	settings   BreakerSettings
	logger     *logger.Logger
	onFailure  func(op string)
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.token = src
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.logger = logger.OrNop(log)
	}
}

// WithFailureHook is called with the operation name whenever a call fails for
// a reason other than a client-side 4xx.
func WithFailureHook(fn func(op string)) Option {
	return func(c *Client) {
		c.onFailure = fn
	}
}

func WithBreaker(s BreakerSettings) Option {
	return func(c *Client) {
		c.settings = s
	}
}

// New builds a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		logger:     logger.Nop(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.breaker = newBreaker(c.settings, c.logger)
	return c
}

type response struct {
	status int
	body   []byte
}

// errServer marks 5xx responses so the breaker counts them.
var errServer = errors.New("server error")

func newBreaker(s BreakerSettings, log *logger.Logger) *gobreaker.CircuitBreaker[*response] {
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	log = logger.OrNop(log)
	return gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:    "commerce-api",
		Timeout: s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Base().Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.breaker.Execute(func() (*response, error) {
		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = httpResp.Body.Close() }()
		data, err := io.ReadAll(io.LimitReader(httpResp.Body, responseBodyLimit))
		if err != nil {
			return nil, err
		}
		r := &response{status: httpResp.StatusCode, body: data}
		if r.status >= http.StatusInternalServerError {
			return r, errServer
		}
		return r, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, errServer):
		c.failed(op, err)
		return newError(op, resp.status, resp.body)
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		c.failed(op, err)
		return fmt.Errorf("%s: %w: %v", op, domain.ErrUnavailable, err)
	}

	if resp.status < 200 || resp.status > 299 {
		return newError(op, resp.status, resp.body)
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) failed(op string, err error) {
	c.logger.Base().Warn().Err(err).Str("op", op).Msg("commerce api call failed")
	if c.onFailure != nil {
		c.onFailure(op)
	}
}
