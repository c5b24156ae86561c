package hn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fragmede/hnmcp/internal/config"
)

const userAgent = "hnmcp/1.0"

// Client talks to the HN Firebase API and the Algolia search API.
// It holds no mutable state beyond the connection pool and is safe
// for concurrent use.
type Client struct {
	http          *http.Client
	baseURL       string
	algoliaURL    string
	maxConcurrent int
}

// NewClient creates an HN API client from the given config.
func NewClient(cfg config.Config) *Client {
	return &Client{
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:       cfg.BaseURL,
		algoliaURL:    cfg.AlgoliaURL,
		maxConcurrent: cfg.MaxConcurrent,
	}
}

// getBody fetches a URL and returns the raw response body.
func (c *Client) getBody(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, string(body))
	}
	return body, nil
}

// get fetches a URL and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, url string, dst any) error {
	body, err := c.getBody(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// isNull reports whether a response body represents an absent record.
// The item and user endpoints return a JSON null for unknown ids.
func isNull(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// GetItem fetches a single item by ID. An absent item returns
// (nil, nil); every failure returns a *FetchError.
func (c *Client) GetItem(ctx context.Context, id int) (*Item, error) {
	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	body, err := c.getBody(ctx, url)
	if err != nil {
		return nil, &FetchError{ID: id, Err: err}
	}
	if isNull(body) {
		return nil, nil
	}
	var item Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, &FetchError{ID: id, Err: fmt.Errorf("decoding item: %w", err)}
	}
	if item.ID == 0 {
		return nil, &FetchError{ID: id, Err: ErrMissingID}
	}
	return &item, nil
}

// GetUser fetches a user profile by username. An unknown username
// returns (nil, nil).
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	u := fmt.Sprintf("%s/user/%s.json", c.baseURL, url.PathEscape(username))
	body, err := c.getBody(ctx, u)
	if err != nil {
		return nil, err
	}
	if isNull(body) {
		return nil, nil
	}
	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", username, err)
	}
	return &user, nil
}

// GetMaxItem returns the current largest item ID.
func (c *Client) GetMaxItem(ctx context.Context) (int, error) {
	var maxID int
	if err := c.get(ctx, c.baseURL+"/maxitem.json", &maxID); err != nil {
		return 0, err
	}
	return maxID, nil
}

// BatchGetItems fetches multiple items concurrently with a concurrency
// limit. Results come back in the same order as the input IDs; a failed
// or absent item leaves a nil entry.
func (c *Client) BatchGetItems(ctx context.Context, ids []int) ([]*Item, error) {
	results := make([]*Item, len(ids))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)

	for i, id := range ids {
		g.Go(func() error {
			item, err := c.GetItem(ctx, id)
			if err != nil {
				// Non-fatal: individual items can fail.
				return nil
			}
			mu.Lock()
			results[i] = item
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
