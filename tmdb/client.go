// Package tmdb implements the outbound movie catalog port against a
// TMDB-compatible HTTP API. Every call is a single GET of the first result
// page with a fixed response language; there are no retries, any upstream
// failure surfaces as an unavailable error.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"filmoteca/errs"
	"filmoteca/movie"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "es-ES"

	defaultTimeout = 10 * time.Second
)

type Client struct {
	baseURL  string
	apiKey   string
	language string

	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey, language string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if language == "" {
		language = DefaultLanguage
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		language:   language,
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "tmdb_client")),
	}
}

// movieResult is the catalog's wire shape for a single movie.
type movieResult struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Overview     *string  `json:"overview"`
	ReleaseDate  string   `json:"release_date"`
	GenreIDs     []int64  `json:"genre_ids"`
	VoteAverage  *float64 `json:"vote_average"`
	VoteCount    *int64   `json:"vote_count"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
}

type pageResult struct {
	Page    int           `json:"page"`
	Results []movieResult `json:"results"`
}

// MovieByID fetches a single catalog record.
func (c *Client) MovieByID(ctx context.Context, tmdbID int64) (movie.CatalogMovie, error) {
	var res movieResult
	endpoint := fmt.Sprintf("%s/movie/%d", c.baseURL, tmdbID)
	if err := c.get(ctx, endpoint, nil, &res); err != nil {
		return movie.CatalogMovie{}, err
	}
	return toCatalogMovie(res), nil
}

// PopularMovies fetches the first page of the ranked popular list.
func (c *Client) PopularMovies(ctx context.Context) ([]movie.CatalogMovie, error) {
	var page pageResult
	params := url.Values{"page": {"1"}}
	if err := c.get(ctx, c.baseURL+"/movie/popular", params, &page); err != nil {
		return nil, err
	}
	return toCatalogMovies(page.Results), nil
}

// SearchMovies fetches the first page of free-text matches.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]movie.CatalogMovie, error) {
	var page pageResult
	params := url.Values{"query": {query}, "page": {"1"}}
	if err := c.get(ctx, c.baseURL+"/search/movie", params, &page); err != nil {
		return nil, err
	}
	return toCatalogMovies(page.Results), nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "endpoint", endpoint, "error", err)
		return errs.Errorf(errs.EUNAVAILABLE, "movie catalog unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("catalog returned non-success status", "endpoint", endpoint, "status", resp.StatusCode)
		return errs.Errorf(errs.EUNAVAILABLE, "movie catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Errorf(errs.EUNAVAILABLE, "movie catalog sent malformed response")
	}
	return nil
}

func toCatalogMovie(r movieResult) movie.CatalogMovie {
	return movie.CatalogMovie{
		ID:           r.ID,
		Title:        r.Title,
		Overview:     r.Overview,
		ReleaseDate:  r.ReleaseDate,
		GenreIDs:     r.GenreIDs,
		VoteAverage:  r.VoteAverage,
		VoteCount:    r.VoteCount,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
	}
}

func toCatalogMovies(rs []movieResult) []movie.CatalogMovie {
	out := make([]movie.CatalogMovie, len(rs))
	for i, r := range rs {
		out[i] = toCatalogMovie(r)
	}
	return out
}
