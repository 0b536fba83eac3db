package digikey

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is the production Digikey API endpoint.
	DefaultBaseURL = "https://api.digikey.com"

	tokenPath   = "/v1/oauth2/token"
	productPath = "/products/v4/search/%s/productdetails"

	// tokenExpirySlack refreshes tokens slightly before the server-side
	// deadline so an in-flight request never carries a stale token.
	tokenExpirySlack = 30 * time.Second

	// batchConcurrency bounds parallel product lookups so bulk CSV
	// imports stay under the API rate limit.
	batchConcurrency = 4
)

// token holds an OAuth2 client-credentials access token.
type token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`

	expiry time.Time
}

func (t *token) valid() bool {
	return t != nil && t.AccessToken != "" && time.Now().Before(t.expiry)
}

// Client fetches product details from the Digikey API, caching raw
// responses on disk so repeated lookups of the same part work offline.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	cache        *Cache
	log          *zap.Logger

	mu    sync.Mutex
	token *token
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache enables the on-disk response cache rooted at dir.
func WithCache(dir string) Option {
	return func(c *Client) { c.cache = NewCache(dir) }
}

// NewClient creates a Digikey API client with the given credentials.
func NewClient(clientID, clientSecret string, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      DefaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		log:          log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// accessToken returns a valid token, requesting a new one when the
// cached token is missing or expired.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.valid() {
		return c.token.AccessToken, nil
	}

	if c.clientID == "" || c.clientSecret == "" {
		return "", fmt.Errorf("digikey credentials not configured")
	}

	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned %d: %s", resp.StatusCode, body)
	}

	var tok token
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	tok.expiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpirySlack)
	c.token = &tok

	c.log.Debug("obtained digikey access token",
		zap.Int("expires_in", tok.ExpiresIn))
	return tok.AccessToken, nil
}

// productDetailsResponse is the wire shape of the product details
// endpoint.
type productDetailsResponse struct {
	Product Product `json:"Product"`
}

// ProductDetails looks up a single part by Digikey part number. Cached
// responses are served without hitting the API.
func (c *Client) ProductDetails(ctx context.Context, partNumber string) (*Product, error) {
	reqID := uuid.NewString()
	log := c.log.With(
		zap.String("part_number", partNumber),
		zap.String("request_id", reqID))

	if c.cache != nil {
		if raw, ok := c.cache.Get(partNumber); ok {
			log.Debug("serving digikey response from cache")
			return parseProduct(raw)
		}
	}

	tok, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	u := c.baseURL + fmt.Sprintf(productPath, url.PathEscape(partNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("X-DIGIKEY-Client-Id", c.clientID)
	req.Header.Set("Accept", "application/json")

	log.Debug("fetching product details from digikey")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product lookup failed for %s: %w", partNumber, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("no part found for part number %s", partNumber)
	default:
		return nil, fmt.Errorf("product lookup for %s returned %d: %s",
			partNumber, resp.StatusCode, body)
	}

	if c.cache != nil {
		if err := c.cache.Put(partNumber, body); err != nil {
			log.Warn("failed to cache digikey response", zap.Error(err))
		}
	}
	return parseProduct(body)
}

// ProductResult holds the outcome of one lookup in a batch.
type ProductResult struct {
	PartNumber string
	Product    *Product
	Err        error
}

// ProductsDetails looks up several part numbers concurrently, preserving
// input order in the results. A failed lookup is recorded in its result
// and does not stop the rest of the batch.
func (c *Client) ProductsDetails(ctx context.Context, partNumbers []string) []ProductResult {
	results := make([]ProductResult, len(partNumbers))

	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, pn := range partNumbers {
		i, pn := i, pn
		g.Go(func() error {
			p, err := c.ProductDetails(ctx, pn)
			results[i] = ProductResult{PartNumber: pn, Product: p, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func parseProduct(raw []byte) (*Product, error) {
	var pr productDetailsResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse product response: %w", err)
	}
	pr.Product.Raw = raw
	return &pr.Product, nil
}
