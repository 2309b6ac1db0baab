package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Fetcher defines the calls the poller makes. It is implemented by *Client
// and can be faked in tests.
type Fetcher interface {
	FetchSummary(ctx context.Context) (*Summary, error)
	FetchTransactions(ctx context.Context, limit int) ([]Transaction, error)
}

var _ Fetcher = (*Client)(nil)

// APIError is returned when the platform answers with a 4xx or 5xx status.
type APIError struct {
	Path       string
	StatusCode int
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %s returned status %d (request %s)", e.Path, e.StatusCode, e.RequestID)
}

// IsUnauthorized reports whether err is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// Client talks to the platform HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
}

const (
	defaultAPIBind   = "127.0.0.1:8420"
	defaultUserAgent = "ingot/0.1"
	requestTimeout   = 5 * time.Second

	// DefaultTransactionLimit is the number of ledger rows the dashboard shows.
	DefaultTransactionLimit = 20
)

// NewClient builds a Client for the given host:port or URL. token may be
// empty for unauthenticated local deployments.
func NewClient(apiBind, token string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		token:     strings.TrimSpace(token),
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchSummary retrieves wallet, price, vault and plan information.
func (c *Client) FetchSummary(ctx context.Context) (*Summary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Summary
	if err := c.do(ctx, &url.URL{Path: "/api/wallet/summary"}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchTransactions retrieves the most recent ledger entries.
func (c *Client) FetchTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	rel := &url.URL{Path: "/api/wallet/transactions", RawQuery: values.Encode()}
	var payload TransactionListResponse
	if err := c.do(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

func (c *Client) do(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &APIError{Path: rel.Path, StatusCode: resp.StatusCode, RequestID: requestID}
	}
	if dest == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := sonic.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
