// =============================================================================
// Sales Analytics System - Product Catalog Client
// =============================================================================
//
// This module fetches product metadata from the catalog service (a
// DummyJSON-style products endpoint) and turns it into the numeric-key
// mapping consumed by the enrichment merger.
//
// BEHAVIOR:
//   - Responses are cached in-process with a TTL so repeated runs inside one
//     session do not hammer the service
//   - Outgoing requests are throttled by a token-bucket rate limiter
//   - The client never authenticates; the catalog endpoint is public
//
// The pipeline treats catalog failures as a degraded-but-successful run: the
// caller maps a fetch error to an empty mapping and every record comes out
// unmatched.
//
// =============================================================================

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/ginjaninja78/sales-analytics/internal/config"
	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// Product is one product as returned by the catalog service.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// productsResponse is the catalog service response envelope.
type productsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client fetches products from the catalog service.
type Client struct {
	baseURL string
	limit   int

	httpClient *http.Client
	cache      *gocache.Cache
	cacheTTL   time.Duration
	limiter    *rate.Limiter
}

// NewClient creates a catalog client from the configured settings.
func NewClient(settings config.CatalogSettings) *Client {
	ttl := time.Duration(settings.CacheTTLMinutes) * time.Minute

	return &Client{
		baseURL: settings.BaseURL,
		limit:   settings.Limit,
		httpClient: &http.Client{
			Timeout: time.Duration(settings.TimeoutSeconds) * time.Second,
		},
		cache:    gocache.New(ttl, 2*ttl),
		cacheTTL: ttl,
		limiter:  rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), 1),
	}
}

// FetchAll retrieves the product list from the catalog service, honoring the
// rate limit and reusing a cached response when one is fresh.
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	url := fmt.Sprintf("%s?limit=%d", c.baseURL, c.limit)

	if cached, found := c.cache.Get(url); found {
		return cached.([]Product), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("catalog rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}

	var envelope productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}

	c.cache.Set(url, envelope.Products, c.cacheTTL)

	return envelope.Products, nil
}

// ProductMapping fetches the catalog and returns the mapping from numeric
// product key to catalog entry.
func (c *Client) ProductMapping(ctx context.Context) (map[int]types.CatalogEntry, error) {
	products, err := c.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMapping(products), nil
}

// BuildMapping indexes a product list by its numeric identifier. Later
// duplicates overwrite earlier ones, matching the service's own semantics of
// one entry per ID.
func BuildMapping(products []Product) map[int]types.CatalogEntry {
	mapping := make(map[int]types.CatalogEntry, len(products))
	for _, p := range products {
		mapping[p.ID] = types.CatalogEntry{
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}
	return mapping
}
