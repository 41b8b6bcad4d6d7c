package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/config"
)

const (
	maxRetries = 3

	// Sub-resources expanded on every detail fetch.
	detailAppend = "credits,recommendations,images,reviews,watch/providers,videos"
)

// retryInterval is the fixed pause between attempts after a transient
// upstream failure. Variable so tests can shorten it.
var retryInterval = 1500 * time.Millisecond

var upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cinevault_upstream_requests_total",
	Help: "Upstream catalog API requests by outcome",
}, []string{"outcome"})

// Client wraps direct catalog API HTTP calls
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new catalog API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("catalog API key is required")
	}

	return &Client{
		baseURL: cfg.TMDBBaseURL,
		apiKey:  cfg.TMDBAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
		logger: logger,
	}, nil
}

// get performs a GET against the catalog API and decodes the JSON
// response into result. Transient network failures (timeouts, connection
// resets) are retried up to 3 times with a fixed 1.5s pause; every other
// error propagates immediately.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	apiURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid catalog URL: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	apiURL.RawQuery = params.Encode()
	finalURL := apiURL.String()

	c.logger.WithField("path", path).Debug("Performing catalog API request")

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("User-Agent", "cinevault/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if isTransient(err) {
				upstreamRequests.WithLabelValues("transient").Inc()
				c.logger.WithError(err).Warn("Transient catalog API failure, will retry")
				return err
			}
			upstreamRequests.WithLabelValues("error").Inc()
			return backoff.Permanent(fmt.Errorf("catalog API request failed: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			upstreamRequests.WithLabelValues("not_found").Inc()
			return backoff.Permanent(ErrNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			upstreamRequests.WithLabelValues("error").Inc()
			return backoff.Permanent(fmt.Errorf("catalog API returned status %d: %s", resp.StatusCode, string(body)))
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			upstreamRequests.WithLabelValues("error").Inc()
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}

		upstreamRequests.WithLabelValues("ok").Inc()
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), maxRetries), ctx)
	return backoff.Retry(operation, policy)
}

// ErrNotFound is returned when the upstream catalog has no such resource.
var ErrNotFound = errors.New("catalog resource not found")

// isTransient reports whether the request failure is worth retrying.
func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, io.ErrUnexpectedEOF)
}

// Details fetches the full detail payload for one title with all
// sub-resources expanded. endpoint is "movie" or "tv".
func (c *Client) Details(ctx context.Context, endpoint string, externalID int64) (*TitleDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", detailAppend)

	var details TitleDetails
	path := fmt.Sprintf("/%s/%d", endpoint, externalID)
	if err := c.get(ctx, path, params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// SearchMulti runs a free-text search across movies, tv and people.
func (c *Client) SearchMulti(ctx context.Context, query string) (*ListPage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	var page ListPage
	if err := c.get(ctx, "/search/multi", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Videos fetches the video list for one title.
func (c *Client) Videos(ctx context.Context, endpoint string, externalID int64) (*VideoList, error) {
	var videos VideoList
	path := fmt.Sprintf("/%s/%d/videos", endpoint, externalID)
	if err := c.get(ctx, path, nil, &videos); err != nil {
		return nil, err
	}
	return &videos, nil
}

// Person fetches a person with combined credits and external ids.
func (c *Client) Person(ctx context.Context, personID int64) (*PersonDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "combined_credits,external_ids")

	var person PersonDetails
	path := fmt.Sprintf("/person/%d", personID)
	if err := c.get(ctx, path, params, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// Season fetches one season of a tv series. The shape is passed through
// to the client untyped.
func (c *Client) Season(ctx context.Context, seriesID int64, season int) (map[string]interface{}, error) {
	var payload map[string]interface{}
	path := fmt.Sprintf("/tv/%d/season/%d", seriesID, season)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Episode fetches one episode with its sub-resources expanded.
func (c *Client) Episode(ctx context.Context, seriesID int64, season, episode int) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("append_to_response", "images,credits,videos,external_ids")

	var payload map[string]interface{}
	path := fmt.Sprintf("/tv/%d/season/%d/episode/%d", seriesID, season, episode)
	if err := c.get(ctx, path, params, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// WatchProviders fetches the streaming availability map for a tv series.
func (c *Client) WatchProviders(ctx context.Context, seriesID int64) (*ProviderList, error) {
	var providers ProviderList
	path := fmt.Sprintf("/tv/%d/watch/providers", seriesID)
	if err := c.get(ctx, path, nil, &providers); err != nil {
		return nil, err
	}
	return &providers, nil
}

// List fetches one page of a paged list endpoint (discover, popular).
// extra carries endpoint-specific filters such as genre and language.
func (c *Client) List(ctx context.Context, path string, extra url.Values, page int) (*ListPage, error) {
	params := url.Values{}
	for key, values := range extra {
		for _, value := range values {
			params.Add(key, value)
		}
	}
	params.Set("language", "en-US")
	params.Set("page", strconv.Itoa(page))

	var result ListPage
	if err := c.get(ctx, path, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
