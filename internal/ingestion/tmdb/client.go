package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"

	// TMDB allows ~50 req/s; stay well under it
	rateLimit = 20
	rateBurst = 40

	// Retry configuration
	maxRetries   = 3
	initialDelay = 1 * time.Second
	maxDelay     = 32 * time.Second
)

// API is the surface the sync service consumes
type API interface {
	GetGenres(ctx context.Context) ([]Genre, error)
	GetMovies(ctx context.Context, page int) (*MovieList, error)
}

// Client handles TMDB API requests with rate limiting and retry logic
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter

	// retry knobs, overridable in tests
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
}

// NewClient creates a new TMDB API client. baseURL falls back to the public
// API when empty.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
	}
}

// GetGenres fetches the full movie genre list
func (c *Client) GetGenres(ctx context.Context) ([]Genre, error) {
	var response genreListResponse
	if err := c.doRequest(ctx, "/genre/movie/list", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}

	genres := make([]Genre, 0, len(response.Genres))
	for _, g := range response.Genres {
		genres = append(genres, Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

// GetMovies fetches one page of popular movies
func (c *Client) GetMovies(ctx context.Context, page int) (*MovieList, error) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("page", fmt.Sprintf("%d", page))

	var response moviesResponse
	if err := c.doRequest(ctx, "/movie/popular", params, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch movies page %d: %w", page, err)
	}

	movies := make([]Movie, 0, len(response.Results))
	for _, m := range response.Results {
		movies = append(movies, Movie{
			TmdbID:       m.ID,
			Title:        m.Title,
			Overview:     m.Overview,
			ReleaseDate:  m.ReleaseDate,
			PosterPath:   m.PosterPath,
			BackdropPath: m.BackdropPath,
			VoteAverage:  m.VoteAverage,
			VoteCount:    m.VoteCount,
			Popularity:   m.Popularity,
			GenreIDs:     m.GenreIDs,
		})
	}

	return &MovieList{
		Movies:      movies,
		CurrentPage: response.Page,
		TotalPages:  response.TotalPages,
	}, nil
}

// doRequest performs an HTTP request with rate limiting and retry logic
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var lastErr error
	delay := c.initialDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Rate limit
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries {
				slog.Warn("TMDB request failed, retrying",
					"attempt", attempt+1, "max", c.maxRetries, "delay", delay, "error", err)
				if err := sleepContext(ctx, delay); err != nil {
					return err
				}
				delay = minDuration(delay*2, c.maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries, err)
		}

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			// Retry on rate limit or server errors
			if shouldRetry(resp.StatusCode) && attempt < c.maxRetries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
				slog.Warn("TMDB returned retryable status",
					"status", resp.StatusCode, "attempt", attempt+1, "delay", delay)
				if err := sleepContext(ctx, delay); err != nil {
					return err
				}
				delay = minDuration(delay*2, c.maxDelay)
				continue
			}

			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries, lastErr)
}

// shouldRetry determines if an HTTP status code warrants a retry
func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || // 429
		statusCode >= 500 // 500-504
}

// sleepContext waits out the backoff delay but returns early when the caller
// cancels, so a shutdown never hangs behind a 32s backoff.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// minDuration returns the smaller of two durations
func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
