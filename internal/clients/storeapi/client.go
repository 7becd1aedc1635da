// Package storeapi is the REST client of the remote storefront backend.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

const (
	pathProducts      = "/product"
	pathBusiness      = "/business"
	pathFilterOptions = "/filter-options"
	pathOnlineOrder   = "/online-order"

	maxErrorBody = 4 << 10
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("store api: status %d", e.Status)
	}
	return fmt.Sprintf("store api: status %d: %s", e.Status, e.Message)
}

// UserMessage is the message the API meant for the customer.
func (e *APIError) UserMessage() string { return e.Message }

// envelope is the wrapper most endpoints answer with.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the store API over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// New creates a client for baseURL with a per-request timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	const op = "storeapi.New"

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: base url %q must be absolute", op, baseURL)
	}

	c := &Client{baseURL: u, http: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListProducts fetches one page of products.
func (c *Client) ListProducts(ctx context.Context, page, limit int, category string) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if category != "" {
		q.Set("category", category)
	}

	var products []domain.Product
	if err := c.get(ctx, pathProducts, q, &products); err != nil {
		return nil, fmt.Errorf("list products page %d: %w", page, err)
	}
	return products, nil
}

// Business fetches the store configuration.
func (c *Client) Business(ctx context.Context) (domain.Business, error) {
	var b domain.Business
	if err := c.get(ctx, pathBusiness, nil, &b); err != nil {
		return domain.Business{}, fmt.Errorf("get business: %w", err)
	}
	return b, nil
}

// FilterOptions fetches server-computed facets for the requested flags.
func (c *Client) FilterOptions(ctx context.Context, flags domain.FacetFlags) (domain.Facets, error) {
	q := url.Values{}
	q.Set("isCategories", strconv.FormatBool(flags.Categories))
	q.Set("isPriceRange", strconv.FormatBool(flags.PriceRange))
	q.Set("isVariantsValues", strconv.FormatBool(flags.VariantValues))
	q.Set("isConditions", strconv.FormatBool(flags.Conditions))
	q.Set("isTags", strconv.FormatBool(flags.Tags))

	var f domain.Facets
	if err := c.get(ctx, pathFilterOptions, q, &f); err != nil {
		return domain.Facets{}, fmt.Errorf("get filter options: %w", err)
	}
	return f, nil
}

// CreateOrder posts an order. It is sent exactly once; the caller decides
// what a failure means.
func (c *Client) CreateOrder(ctx context.Context, payload domain.OrderPayload) (domain.OrderResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(pathOnlineOrder, nil), bytes.NewReader(body))
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	var result domain.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.OrderResult{}, fmt.Errorf("decode order result: %w", err)
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	return decodeData(raw, dst)
}

// do sends req and turns non-2xx responses into *APIError. The caller
// closes the body of a successful response.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}
	// Only an envelope message is meant for the customer. Other bodies, such
	// as proxy error pages, stay out of the error.
	var env envelope
	if json.Unmarshal(raw, &env) == nil {
		apiErr.Message = env.Message
	}
	return nil, apiErr
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.baseURL
	u.Path = u.Path + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// decodeData accepts either a bare JSON value or a {success, message, data}
// envelope around it.
func decodeData(raw []byte, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil {
			if env.Success != nil && !*env.Success {
				return &APIError{Status: http.StatusOK, Message: env.Message}
			}
			if env.Data != nil {
				trimmed = env.Data
			}
		}
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
