package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/notion-ingest/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com"

	// APIVersion is the Notion-Version header value this client speaks.
	APIVersion = "2022-06-28"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is the page size requested from paginated listings.
	DefaultPageSize = 100
)

// Client is a minimal Notion REST client covering the surface the
// connector needs. All listing calls drain pagination before returning.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
}

// Ensure Client satisfies the traversal contract.
var _ Fetcher = (*Client)(nil)

// NewClient creates a Notion API client with a token provider.
func NewClient(tokenProvider driven.TokenProvider) *Client {
	return &Client{
		baseURL:       DefaultBaseURL,
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
	}
}

// NewClientWithToken creates a Notion client with a static access token.
// Works for internal integration tokens and OAuth access tokens alike.
func NewClientWithToken(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  tc,
		rateLimiter: NewRateLimiter(),
	}
}

// NewClientWithHTTPClient creates a client with a custom http.Client and
// base URL. Used by tests to point at a local server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(),
	}
}

// ensureClient initializes the HTTP client if not already done.
// This is called lazily so we can get the token when needed.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.httpClient != nil {
		return nil
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	c.httpClient = tc

	return nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// do performs one API request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Notion-Version", APIVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckResponse(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, data)
	}

	return data, nil
}

// decodeAPIError maps a non-2xx response to an APIError.
func decodeAPIError(status int, data []byte) error {
	var apiErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(data, &apiErr)
	return &APIError{
		StatusCode: status,
		Code:       apiErr.Code,
		Message:    apiErr.Message,
	}
}

// listEnvelope is the shared shape of paginated list responses.
type listEnvelope struct {
	Object     string            `json:"object"`
	Results    []json.RawMessage `json:"results"`
	NextCursor string            `json:"next_cursor"`
	HasMore    bool              `json:"has_more"`
}

// GetBlock retrieves a single block. A page id is a valid block id.
func (c *Client) GetBlock(ctx context.Context, blockID string) (*Block, error) {
	data, err := c.do(ctx, http.MethodGet, "/v1/blocks/"+blockID, nil, nil)
	if err != nil {
		return nil, err
	}
	return DecodeBlock(data)
}

// GetBlockChildren retrieves ALL children of a block, draining
// pagination, preserving return order.
func (c *Client) GetBlockChildren(ctx context.Context, blockID string) ([]*Block, error) {
	var blocks []*Block
	cursor := ""

	for {
		query := url.Values{"page_size": []string{strconv.Itoa(DefaultPageSize)}}
		if cursor != "" {
			query.Set("start_cursor", cursor)
		}

		data, err := c.do(ctx, http.MethodGet, "/v1/blocks/"+blockID+"/children", query, nil)
		if err != nil {
			return nil, err
		}

		var envelope listEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, &DecodeError{BlockID: blockID, Kind: "block children", Reason: err.Error()}
		}

		for _, raw := range envelope.Results {
			block, err := DecodeBlock(raw)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
		}

		if !envelope.HasMore {
			break
		}
		cursor = envelope.NextCursor
	}

	return blocks, nil
}

// GetPage retrieves a page's metadata.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	data, err := c.do(ctx, http.MethodGet, "/v1/pages/"+pageID, nil, nil)
	if err != nil {
		return nil, err
	}
	return DecodePage(data)
}

// GetDatabase retrieves a database's metadata and property schema.
func (c *Client) GetDatabase(ctx context.Context, databaseID string) (*Database, error) {
	data, err := c.do(ctx, http.MethodGet, "/v1/databases/"+databaseID, nil, nil)
	if err != nil {
		return nil, err
	}
	return DecodeDatabase(data)
}

// QueryDatabase retrieves ALL rows of a database, draining pagination.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]*Row, error) {
	var rows []*Row
	cursor := ""

	for {
		body := map[string]any{"page_size": DefaultPageSize}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		data, err := c.do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", nil, body)
		if err != nil {
			return nil, err
		}

		var envelope listEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, &DecodeError{BlockID: databaseID, Kind: "database query", Reason: err.Error()}
		}

		for _, raw := range envelope.Results {
			row, err := DecodeRow(raw)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}

		if !envelope.HasMore {
			break
		}
		cursor = envelope.NextCursor
	}

	return rows, nil
}

// ValidateCredentials checks if the configured token is valid by making
// an API call.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/v1/users/me", nil, nil)
	return err
}
