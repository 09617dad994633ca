package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vadimtrunov/tmdbsearch/internal/httpclient"
)

const (
	// DefaultBaseURL is the TMDb API v3 root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	searchLanguage = "en-US"
	maxErrorBody   = 4 << 10
)

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // defaults to httpclient.DefaultConfig().Timeout
}

// Client is a TMDb API v3 client.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	logger  *slog.Logger
}

// New creates a new TMDb client.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	httpCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		http:    httpclient.New(httpCfg, logger),
		logger:  logger,
	}
}

// SearchMovies runs one search against /search/movie and keeps at most
// q.Limit movies from the requested page, in the order TMDb returned them.
// Failures wrap a *SearchError.
func (c *Client) SearchMovies(ctx context.Context, q SearchQuery) (*SearchOutcome, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{
		"query":    {q.Text},
		"language": {searchLanguage},
		"page":     {strconv.Itoa(page)},
	}
	if q.Year != nil && *q.Year > 0 {
		params.Set("year", strconv.Itoa(*q.Year))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	n := min(max(q.Limit, 0), len(resp.Results))
	movies := make([]MovieRecord, 0, n)
	for _, r := range resp.Results[:n] {
		movies = append(movies, MovieRecord{
			Title:       r.Title,
			Overview:    r.Overview,
			ReleaseDate: r.ReleaseDate,
		})
	}

	return &SearchOutcome{
		Movies:       movies,
		Page:         resp.Page,
		TotalResults: resp.TotalResults,
		TotalPages:   resp.TotalPages,
	}, nil
}

// get performs an authenticated GET request to the TMDb API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return NetworkError(fmt.Errorf("invalid URL: %w", err))
	}

	q := u.Query()
	q.Set("api_key", c.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return NetworkError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(NetworkError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return c.fail(statusError(resp.StatusCode,
			fmt.Errorf("tmdb API error %d: %s", resp.StatusCode, string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return c.fail(&SearchError{
			Kind:       KindDecode,
			StatusCode: resp.StatusCode,
			Message:    msgDecode,
			Err:        fmt.Errorf("decode response: %w", err),
		})
	}
	return nil
}

func (c *Client) fail(e *SearchError) error {
	c.logger.Debug("tmdb request failed",
		slog.String("kind", e.Kind.String()),
		slog.Int("status", e.StatusCode),
	)
	return e
}
