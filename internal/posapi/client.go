// Package posapi is the typed client for the POS REST backend. Every call
// carries bearer auth, unwraps the {data, meta} envelope and normalizes
// failures into messages the UI can show as-is.
package posapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrConnectivity replaces transport-level failures. The exact wording is
// what the terminal UI displays, so it stays a fixed string.
var ErrConnectivity = errors.New("Unable to connect to the server. Please check your internet connection.")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// ListOptions mirrors the query filters the list endpoints accept. Zero
// values are omitted from the query string.
type ListOptions struct {
	Page     int
	PerPage  int
	Search   string
	Status   string
	UserID   int
	DateFrom string
	DateTo   string
}

func (o ListOptions) query() string {
	q := url.Values{}
	page := o.Page
	if page < 1 {
		page = 1
	}
	perPage := o.PerPage
	if perPage < 1 {
		perPage = 10
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if o.Status != "" && o.Status != "all" {
		q.Set("status", o.Status)
	}
	if o.UserID != 0 {
		q.Set("user_id", strconv.Itoa(o.UserID))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.DateFrom != "" {
		q.Set("date_from", o.DateFrom)
	}
	if o.DateTo != "" {
		q.Set("date_to", o.DateTo)
	}
	return q.Encode()
}

// do issues one request and decodes the response envelope into out. fallback
// is the operation's user-facing message when the server rejects a request
// without a message of its own.
func (c *Client) do(ctx context.Context, method, path, token string, body any, out any, fallback string) (*Meta, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrConnectivity
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return nil, errors.New(apiErr.Message)
		}
		return nil, errors.New(fallback)
	}

	if out == nil {
		return nil, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Data == nil {
		return nil, errors.New("No data received from API")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, fmt.Errorf("decode response data: %w", err)
	}
	return env.Meta, nil
}

// Login is the only unauthenticated call. Its response is not wrapped in
// the {data, meta} envelope.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrConnectivity
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return nil, errors.New(apiErr.Message)
		}
		return nil, errors.New("Invalid credentials")
	}

	var result LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.Token == "" {
		return nil, errors.New("Invalid credentials")
	}
	return &result, nil
}
