package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultPerPage is the page size requested when PerPage is unset.
const DefaultPerPage = 20

type Client struct {
	BaseURL    string
	Token      string
	PerPage    int
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		PerPage: DefaultPerPage,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.Token = token
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status    int
	Message   string
	Details   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("API %d: %s (%s)", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("API %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.get(ctx, "/health")
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &health, nil
}

// -- Feeds --------------------------------------------------------------------

func (c *Client) ListCreators(ctx context.Context, page int) (*Page[Creator], error) {
	return listPage[Creator](ctx, c, "/api/v1/creators", "creators", page)
}

func (c *Client) ListCalls(ctx context.Context, page int) (*Page[CallRecord], error) {
	return listPage[CallRecord](ctx, c, "/api/v1/calls", "calls", page)
}

func (c *Client) ListTransactions(ctx context.Context, page int) (*Page[Transaction], error) {
	return listPage[Transaction](ctx, c, "/api/v1/wallet/transactions", "transactions", page)
}

func (c *Client) DeleteCall(ctx context.Context, id string) error {
	resp, err := c.delete(ctx, "/api/v1/calls/"+url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete call: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.parseError(resp)
	}
	return nil
}

func listPage[T any](ctx context.Context, c *Client, path, what string, page int) (*Page[T], error) {
	perPage := c.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))
	q.Set("per_page", strconv.Itoa(perPage))

	resp, err := c.get(ctx, path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var result Page[T]
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return &result, nil
}

// -- HTTP helpers -------------------------------------------------------------

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.HTTPClient.Do(req)
}

func (c *Client) delete(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{
		Status:    resp.StatusCode,
		RequestID: resp.Request.Header.Get("X-Request-ID"),
	}
	var er ErrorResponse
	if json.Unmarshal(body, &er) == nil && er.Error != "" {
		apiErr.Message, apiErr.Details = er.Error, er.Details
		return apiErr
	}
	apiErr.Message = string(body)
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
