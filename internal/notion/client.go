package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Default client settings.
const (
	// DefaultBaseURL is the root of the public Notion API.
	DefaultBaseURL = "https://api.notion.com/v1"

	// DefaultVersion is the Notion-Version header sent with every request.
	DefaultVersion = "2022-06-28"

	// DefaultRequestsPerSecond matches Notion's documented average rate limit.
	DefaultRequestsPerSecond = 3.0

	// DefaultTimeout bounds a single HTTP round trip.
	DefaultTimeout = 60 * time.Second

	// maxResponseSize limits how much of a response body is read.
	maxResponseSize = 32 * 1024 * 1024
)

// ErrMissingToken is returned by NewClient when no integration token is given.
var ErrMissingToken = errors.New("notion integration token is required")

// Client talks to the Notion REST API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger

	token      string
	version    string
	timeout    time.Duration
	socksProxy string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another API root. Tests use it to target
// an httptest server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the HTTP client. Authentication headers are still
// added by wrapping its transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the sustained request rate. Zero or negative disables
// limiting.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := max(int(requestsPerSecond), 1)
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithVersion overrides the Notion-Version header.
func WithVersion(version string) ClientOption {
	return func(c *Client) {
		c.version = version
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithSOCKS5Proxy routes API traffic through a SOCKS5 proxy at "host:port".
func WithSOCKS5Proxy(address string) ClientOption {
	return func(c *Client) {
		c.socksProxy = address
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client authenticated with an integration token.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		version: DefaultVersion,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), int(DefaultRequestsPerSecond)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.httpClient == nil {
		hc, err := newHTTPClient(c.timeout, c.socksProxy)
		if err != nil {
			return nil, err
		}
		c.httpClient = hc
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *c.httpClient
	wrapped.Transport = &headerInjectingTransport{
		base: base,
		headers: map[string]string{
			"Authorization":  "Bearer " + c.token,
			"Notion-Version": c.version,
		},
	}
	c.httpClient = &wrapped

	return c, nil
}

// Search returns one page of search results.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	const op = "search"

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, NewError(KindFatal, op, fmt.Errorf("failed to encode request: %w", err))
	}

	body, err := c.do(ctx, op, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewError(KindDecode, op, &DecodeError{Body: body, Err: err})
	}
	return &resp, nil
}

// BlockChildren returns one page of the immediate children of a block.
//
// A body the typed decoder rejects is reported as a KindDecode *Error whose
// cause is a *DecodeError carrying the raw body.
func (c *Client) BlockChildren(ctx context.Context, req BlockChildrenRequest) (*BlockChildrenResponse, error) {
	const op = "block children"

	if req.BlockID == "" {
		return nil, NewError(KindFatal, op, errors.New("block id is required"))
	}

	query := url.Values{}
	if req.StartCursor != "" {
		query.Set("start_cursor", req.StartCursor)
	}
	if req.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(req.PageSize))
	}

	endpoint := c.baseURL + "/blocks/" + url.PathEscape(req.BlockID) + "/children"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := c.do(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp BlockChildrenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewError(KindDecode, op, &DecodeError{Body: body, Err: err})
	}
	return &resp, nil
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body io.Reader) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewError(KindFatal, op, fmt.Errorf("rate limiter: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, NewError(KindFatal, op, fmt.Errorf("failed to build request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewError(KindNetwork, op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, NewError(KindNetwork, op, fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.Debug("notion request",
		"op", op,
		"method", method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		apiErr.Status = resp.StatusCode
		return nil, NewError(KindFatal, op, apiErr)
	}

	return data, nil
}
