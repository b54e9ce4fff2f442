package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// Client wraps resty with rate limiting and a circuit breaker
type Client struct {
	Resty   *resty.Client
	Retry   *retryablehttp.Client
	Limiter *rate.Limiter
	Breaker *resilience.Breaker
	Mu      sync.RWMutex
}

// Options configures a Client
type Options struct {
	// Name labels the circuit breaker
	Name       string
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	MinWait    time.Duration
	MaxWait    time.Duration
	// RateLimit in requests per second, <= 0 for unlimited
	RateLimit float64
	UserAgent string
	// OnStateChange observes breaker transitions
	OnStateChange func(name string, from, to resilience.State)
}

// DefaultOptions suits slow LLM-style APIs.
func DefaultOptions(name string) Options {
	return Options{
		Name:       name,
		Timeout:    120 * time.Second,
		RetryCount: 2,
		MinWait:    1 * time.Second,
		MaxWait:    30 * time.Second,
		UserAgent:  "SiteCloner/1.0",
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// Upstream reports whether the status points at the upstream rather than
// the request: throttling and server errors.
func (e *StatusError) Upstream() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// NewClient creates an HTTP client with circuit breaker. Retries of
// transport errors, 429 and 5xx happen inside the retryablehttp round
// tripper; the breaker sees one outcome per logical call.
func NewClient(opts Options) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = opts.RetryCount
	retryClient.RetryWaitMin = opts.MinWait
	retryClient.RetryWaitMax = opts.MaxWait
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.SetTimeout(opts.Timeout)
	if opts.UserAgent != "" {
		restyClient.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.BaseURL != "" {
		restyClient.SetBaseURL(opts.BaseURL)
	}

	breaker := resilience.New(opts.Name, resilience.Settings{
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5 ||
				(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.7)
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			return errors.As(err, &se) && !se.Upstream()
		},
		OnStateChange: opts.OnStateChange,
	})

	c := &Client{
		Resty:   restyClient,
		Retry:   retryClient,
		Limiter: rate.NewLimiter(rate.Inf, 0),
		Breaker: breaker,
	}
	c.SetRateLimit(opts.RateLimit)
	return c
}

// SetHeader adds default header
func (c *Client) SetHeader(key, value string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetHeader(key, value)
}

// SetRateLimit configures rate limiting (requests per second)
func (c *Client) SetRateLimit(rps float64) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if rps <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Request creates new request with rate limiting and circuit breaker protection
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if c.Breaker.State() == resilience.StateOpen {
		return nil, resilience.ErrCircuitOpen
	}

	c.Mu.RLock()
	limiter := c.Limiter
	c.Mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Resty.R().SetContext(ctx), nil
}

// ExecuteWithBreaker runs fn under the circuit breaker. Non-2xx responses
// come back as *StatusError alongside the response.
func (c *Client) ExecuteWithBreaker(fn func() (*resty.Response, error)) (*resty.Response, error) {
	var last *resty.Response
	_, err := resilience.Do(c.Breaker, func() (struct{}, error) {
		resp, err := fn()
		last = resp
		if err != nil {
			return struct{}{}, err
		}
		if resp != nil && resp.IsError() {
			return struct{}{}, &StatusError{Code: resp.StatusCode(), Body: truncateBody(resp.String())}
		}
		return struct{}{}, nil
	})

	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s unavailable: %w", c.Breaker.Name(), err)
	}
	return last, err
}

func truncateBody(s string) string {
	const max = 512
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
