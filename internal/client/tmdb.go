package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"CineShelf/internal/apperr"
)

const (
	tmdbBaseURL     = "https://api.themoviedb.org/3"
	upstreamTimeout = 20 * time.Second
)

// TMDBClient is a thin pass-through client for The Movie Database API.
// It attaches the server-held API key and returns the upstream JSON
// body verbatim; no retry, no circuit breaking.
type TMDBClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewTMDBClient(apiKey string) *TMDBClient {
	return &TMDBClient{
		apiKey:  apiKey,
		baseURL: tmdbBaseURL,
		client: &http.Client{
			Timeout: upstreamTimeout,
		},
	}
}

// Get forwards a GET to the given TMDB path with the caller's query
// parameters plus the API key, returning the raw JSON body.
func (c *TMDBClient) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("TMDB API key not configured: %w", apperr.ErrUpstream)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, fmt.Errorf("TMDB request timed out: %w", apperr.ErrUpstream)
		}
		return nil, fmt.Errorf("TMDB request failed: %w", apperr.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("TMDB returned status %d: %w", resp.StatusCode, apperr.ErrUpstream)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode TMDB response: %w", apperr.ErrUpstream)
	}
	return body, nil
}

// BoxOfficeEntry is one movie in the revenue-sorted projection. Revenue
// arrives in USD; RevenueINR applies a fixed conversion rate.
type BoxOfficeEntry struct {
	TmdbID      int     `json:"tmdbId"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"posterPath"`
	ReleaseDate string  `json:"releaseDate"`
	Revenue     int64   `json:"revenue"`
	RevenueINR  int64   `json:"revenueInr"`
	VoteAverage float64 `json:"voteAverage"`
}

const usdToINR = 83

type tmdbListResponse struct {
	Results []struct {
		ID int `json:"id"`
	} `json:"results"`
}

type tmdbMovieDetails struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Revenue     int64   `json:"revenue"`
	VoteAverage float64 `json:"vote_average"`
}

// BoxOffice fetches the currently playing movies, resolves revenue from
// the per-movie details, and returns the top entries sorted by revenue.
func (c *TMDBClient) BoxOffice(ctx context.Context, limit int) ([]BoxOfficeEntry, error) {
	raw, err := c.Get(ctx, "/movie/now_playing", nil)
	if err != nil {
		return nil, err
	}

	var listing tmdbListResponse
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode now playing list: %w", apperr.ErrUpstream)
	}

	if limit <= 0 || limit > len(listing.Results) {
		limit = len(listing.Results)
	}

	entries := make([]BoxOfficeEntry, 0, limit)
	for _, item := range listing.Results[:limit] {
		detailRaw, err := c.Get(ctx, fmt.Sprintf("/movie/%d", item.ID), nil)
		if err != nil {
			return nil, err
		}
		var details tmdbMovieDetails
		if err := json.Unmarshal(detailRaw, &details); err != nil {
			return nil, fmt.Errorf("failed to decode movie details: %w", apperr.ErrUpstream)
		}
		entries = append(entries, BoxOfficeEntry{
			TmdbID:      details.ID,
			Title:       details.Title,
			PosterPath:  details.PosterPath,
			ReleaseDate: details.ReleaseDate,
			Revenue:     details.Revenue,
			RevenueINR:  details.Revenue * usdToINR,
			VoteAverage: details.VoteAverage,
		})
	}

	// Highest revenue first.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Revenue > entries[j-1].Revenue; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	return entries, nil
}

// WatchProviders returns streaming availability for a movie or show.
func (c *TMDBClient) WatchProviders(ctx context.Context, mediaType string, id string) (json.RawMessage, error) {
	if mediaType != "movie" && mediaType != "tv" {
		return nil, fmt.Errorf("unknown media type %q: %w", mediaType, apperr.ErrValidation)
	}
	return c.Get(ctx, fmt.Sprintf("/%s/%s/watch/providers", mediaType, id), nil)
}
