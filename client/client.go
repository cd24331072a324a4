package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viant/afs/url"
	"github.com/viant/grocery/client/auth/store"
	"github.com/viant/grocery/schema"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://grocery-app-backend-45m3.onrender.com/api/v1"
	DefaultTimeout  = 20 * time.Second
	RequestIDHeader = "X-Request-ID"
)

// Client sends JSON requests to the API, attaching and refreshing the stored credentials
type Client struct {
	baseURL                 string
	store                   store.Store
	httpClient              *http.Client
	timeout                 time.Duration
	logger                  *zap.Logger
	limiter                 *rate.Limiter
	metrics                 *Metrics
	refreshPath             string
	clearOnRefreshRejection bool
}

// Store returns credential store
func (c *Client) Store() store.Store {
	return c.store
}

// BaseURL returns API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send sends request and decodes the response envelope with T payload
func Send[T any](ctx context.Context, c *Client, request *Request) (*schema.Response[T], error) {
	var response schema.Response[T]
	if err := c.Do(ctx, request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Do sends request and decodes the response body into out.
// A 401 response triggers a single token refresh followed by a single replay of the request.
func (c *Client) Do(ctx context.Context, request *Request, out interface{}) (err error) {
	defer func() { c.metrics.observe(err) }()
	body, err := request.encode()
	if err != nil {
		return err
	}
	requestID := request.header(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	status, data, err := c.roundTrip(ctx, request, body, requestID, store.Token(c.store))
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		c.logger.Info("access token rejected, refreshing", zap.String("path", request.Path), zap.String("requestID", requestID))
		var token *oauth2.Token
		if token, err = c.Refresh(ctx); err != nil {
			return err
		}
		if status, data, err = c.roundTrip(ctx, request, body, requestID, token); err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return newUnauthorizedError("request rejected after token refresh", nil)
		}
	}
	if out == nil {
		return nil
	}
	if err = json.Unmarshal(data, out); err != nil {
		c.logger.Debug("failed to decode response", zap.String("path", request.Path), zap.Int("status", status), zap.Error(err))
		return newDecodingError(err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, request *Request, body []byte, requestID string, token *oauth2.Token) (int, []byte, error) {
	httpRequest, err := c.newHTTPRequest(ctx, request, body, requestID)
	if err != nil {
		return 0, nil, newTransportError("failed to create request", err)
	}
	if token != nil {
		token.SetAuthHeader(httpRequest)
	}
	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return 0, nil, newTransportError("rate limiter", err)
		}
	}
	c.logger.Debug("sending request",
		zap.String("method", httpRequest.Method),
		zap.String("path", request.Path),
		zap.String("requestID", requestID),
		zap.Bool("authorized", token != nil))
	resp, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return 0, nil, newTransportError(request.method()+" "+request.Path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, newTransportError("failed to read response body", err)
	}
	c.logger.Debug("received response", zap.String("path", request.Path), zap.String("requestID", requestID), zap.Int("status", resp.StatusCode))
	return resp.StatusCode, data, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, request *Request, body []byte, requestID string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.method(), c.URL(request.Path), reader)
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	for k, v := range request.Header {
		httpRequest.Header.Set(k, v)
	}
	httpRequest.Header.Set(RequestIDHeader, requestID)
	return httpRequest, nil
}

// URL returns absolute URL for the API path
func (c *Client) URL(path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return c.baseURL
	}
	return url.Join(c.baseURL, path)
}

// New creates an API client for the base URL
func New(baseURL string, options ...Option) *Client {
	ret := &Client{
		baseURL:                 strings.TrimRight(baseURL, "/"),
		timeout:                 DefaultTimeout,
		logger:                  zap.NewNop(),
		refreshPath:             schema.PathRefreshToken,
		clearOnRefreshRejection: true,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.store == nil {
		ret.store = store.NewMemoryStore()
	}
	httpClient := http.Client{}
	if ret.httpClient != nil {
		httpClient = *ret.httpClient
	}
	httpClient.Timeout = ret.timeout
	ret.httpClient = &httpClient
	return ret
}
