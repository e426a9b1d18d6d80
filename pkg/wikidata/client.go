// Package wikidata provides the Wikidata API client and the JSON-LD
// document model the extraction stages operate on.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tagus/canto-bench/pkg/config"
	"github.com/tagus/canto-bench/pkg/interfaces"
	"github.com/tagus/canto-bench/pkg/logging"
	"github.com/tagus/canto-bench/pkg/retry"
)

// maxEntitiesPerRequest is the wbgetentities batch limit for anonymous clients
const maxEntitiesPerRequest = 50

// Client talks to the Wikidata API and entity-data endpoints
type Client struct {
	httpClient    *http.Client
	apiURL        string
	entityDataURL string
	userAgent     string
	searchLimit   int
	cache         interfaces.EntityCache
	retryPolicy   *retry.Policy
	logger        logging.Logger
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIURL sets the MediaWiki API endpoint
func WithAPIURL(apiURL string) Option {
	return func(c *Client) {
		c.apiURL = apiURL
	}
}

// WithEntityDataURL sets the Special:EntityData base URL
func WithEntityDataURL(entityDataURL string) Option {
	return func(c *Client) {
		c.entityDataURL = entityDataURL
	}
}

// WithUserAgent sets the User-Agent header sent on every request
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithSearchLimit caps the number of results returned per entity search
func WithSearchLimit(limit int) Option {
	return func(c *Client) {
		c.searchLimit = limit
	}
}

// WithCache stores fetched entity documents in the given cache
func WithCache(cache interfaces.EntityCache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithRetryPolicy sets the retry policy for HTTP calls
func WithRetryPolicy(policy *retry.Policy) Option {
	return func(c *Client) {
		c.retryPolicy = policy
	}
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Wikidata client with defaults from configuration
func NewClient(options ...Option) *Client {
	cfg := config.Get()
	client := &Client{
		httpClient:    &http.Client{Timeout: cfg.Wikidata.Timeout},
		apiURL:        cfg.Wikidata.APIURL,
		entityDataURL: cfg.Wikidata.EntityDataURL,
		userAgent:     cfg.Wikidata.UserAgent,
		searchLimit:   cfg.Wikidata.SearchLimit,
		retryPolicy:   retry.DefaultPolicy(),
		logger:        logging.New(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// SearchResult is one hit from an entity search
type SearchResult struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// SearchEntities searches Wikidata for entities matching the query and
// returns candidate Q-IDs in the API's relevance order.
func (c *Client) SearchEntities(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", "en")
	params.Set("format", "json")
	params.Set("limit", fmt.Sprintf("%d", c.searchLimit))

	body, err := c.get(ctx, c.apiURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("entity search for %q failed: %w", query, err)
	}

	var response struct {
		Search []SearchResult `json:"search"`
		Error  *struct {
			Code string `json:"code"`
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("wikidata API error: %s: %s", response.Error.Code, response.Error.Info)
	}

	return response.Search, nil
}

// GetClaims fetches claims for up to 50 entities per API call and returns
// them keyed by Q-ID. Entities missing from the response are omitted.
func (c *Client) GetClaims(ctx context.Context, entityIDs []string) (map[string]Claims, error) {
	result := make(map[string]Claims, len(entityIDs))

	for start := 0; start < len(entityIDs); start += maxEntitiesPerRequest {
		end := start + maxEntitiesPerRequest
		if end > len(entityIDs) {
			end = len(entityIDs)
		}
		batch := entityIDs[start:end]

		params := url.Values{}
		params.Set("action", "wbgetentities")
		params.Set("ids", strings.Join(batch, "|"))
		params.Set("props", "claims")
		params.Set("format", "json")

		body, err := c.get(ctx, c.apiURL+"?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("claims fetch failed: %w", err)
		}

		var response struct {
			Entities map[string]struct {
				Claims Claims `json:"claims"`
			} `json:"entities"`
		}
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("failed to parse claims response: %w", err)
		}

		for id, entity := range response.Entities {
			if entity.Claims != nil {
				result[id] = entity.Claims
			}
		}
	}

	return result, nil
}

// FetchEntityDocument retrieves the JSON-LD document for an entity,
// consulting the cache first when one is configured.
func (c *Client) FetchEntityDocument(ctx context.Context, entityID string) (*Document, error) {
	cacheKey := entityID + ".jsonld"

	if c.cache != nil {
		cached, found, err := c.cache.Get(ctx, cacheKey)
		if err != nil {
			c.logger.Warn(ctx, "Cache read failed, fetching from API", map[string]interface{}{
				"entity_id": entityID,
				"error":     err.Error(),
			})
		} else if found {
			return ParseDocument(cached)
		}
	}

	body, err := c.get(ctx, c.entityDataURL+entityID+".jsonld")
	if err != nil {
		return nil, fmt.Errorf("entity data fetch for %s failed: %w", entityID, err)
	}

	doc, err := ParseDocument(body)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body); err != nil {
			c.logger.Warn(ctx, "Cache write failed", map[string]interface{}{
				"entity_id": entityID,
				"error":     err.Error(),
			})
		}
	}

	return doc, nil
}

// get performs a GET request with retries and returns the response body
func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	var body []byte

	err := retry.Do(ctx, c.retryPolicy, c.logger, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, requestURL)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}
