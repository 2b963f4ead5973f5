package dexscreener

// Package dexscreener contains the client for the DexScreener HTTP API.
// This file contains the base HTTP client - it handles transport concerns
// (rate limiting, circuit breaking, retries, logging) and knows nothing
// about search or feed semantics.

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wordspotr/internal/infra/log"
	"wordspotr/internal/infra/retry"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production DexScreener API root.
const DefaultBaseURL = "https://api.dexscreener.com"

// Client is the DexScreener API client.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	rateLimiter     *rate.Limiter             // request frequency limiting
	circuitBreaker  *gobreaker.CircuitBreaker // error avalanche protection
	maxResponseSize int64
	maxRetries      int
}

// Option mutates client construction defaults.
type Option func(*Client)

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMaxResponseSize overrides the response size cap.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResponseSize = n
		}
	}
}

// WithMaxRetries overrides the retry budget for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// NewClient returns a client for the given API root. An empty baseURL
// selects the production API.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	// 5 requests per second, burst up to 10; the public API is strict
	rateLimiter := rate.NewLimiter(rate.Limit(5), 10)

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "DexscreenerAPI",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	c := &Client{
		baseURL:         baseURL,
		rateLimiter:     rateLimiter,
		circuitBreaker:  circuitBreaker,
		maxResponseSize: 10 * 1024 * 1024, // 10MB default
		maxRetries:      3,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DisableKeepAlives: false,
				MaxIdleConns:      10,
				IdleConnTimeout:   90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MakeRequest issues one GET to the API with rate limiting, circuit
// breaking and retries. endpoint includes the query string, e.g.
// "/latest/dex/search?q=moon".
func (c *Client) MakeRequest(ctx context.Context, endpoint string) ([]byte, error) {
	requestID := log.GenerateRequestID()
	startTime := time.Now()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	var respBody []byte
	doOnce := func() error {
		_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			body, err := c.makeRequestWithContext(ctx, requestID, endpoint, startTime)
			if err != nil {
				return nil, err
			}
			respBody = body
			return body, nil
		})
		return err
	}

	err := retry.Do(ctx, retry.Options{
		MaxRetries: c.maxRetries,
		BaseDelay:  300 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}, doOnce)
	if err != nil {
		log.LogError("DexScreener request failed",
			zap.String("request_id", requestID),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, err
	}

	duration := time.Since(startTime).Milliseconds()
	log.LogResponse(requestID, 200, duration, zap.String("endpoint", endpoint))

	return respBody, nil
}

func (c *Client) makeRequestWithContext(ctx context.Context, requestID, endpoint string, startTime time.Time) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "wordspotr/1.0")

	log.LogRequest(requestID, http.MethodGet, endpoint, zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(startTime).Milliseconds()
		log.LogResponse(requestID, 0, duration, zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	limitedReader := io.LimitReader(resp.Body, c.maxResponseSize)

	respBody, err := io.ReadAll(limitedReader)
	if err != nil {
		duration := time.Since(startTime).Milliseconds()
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	duration := time.Since(startTime).Milliseconds()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint), zap.String("error", "API error response received"))
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint), zap.String("status", "success"))

	return respBody, nil
}
