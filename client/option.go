package client

import (
	"net/http"
	"time"

	"github.com/viant/grocery/client/auth/store"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option represents client option
type Option func(c *Client)

// WithStore sets credential store
func WithStore(store store.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithHTTPClient sets http client, its timeout is replaced with the client timeout
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets per call timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRateLimiter throttles every HTTP attempt, including refresh and retry
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithMetrics sets metrics
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithRefreshPath overrides refresh token endpoint path
func WithRefreshPath(path string) Option {
	return func(c *Client) {
		c.refreshPath = path
	}
}

// WithClearOnRefreshRejection controls whether credentials are cleared when the refresh endpoint rejects the refresh token
func WithClearOnRefreshRejection(clear bool) Option {
	return func(c *Client) {
		c.clearOnRefreshRejection = clear
	}
}
