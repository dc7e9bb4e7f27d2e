package model

import (
	"fmt"
	"strconv"
	"time"
)

// ContextField selects which timestamp a normalized record carries.
const (
	ContextWatchedAt = "watchedAt"
	ContextAddedAt   = "addedAt"
)

// MovieRecord is the canonical stored shape of a movie or TV entry.
// Clients forward TMDB payloads with inconsistent field names; every
// record passes through NormalizeMovieRecord before it is persisted.
type MovieRecord struct {
	TmdbID      int64      `json:"tmdbId" bson:"tmdb_id"`
	Title       string     `json:"title" bson:"title"`
	Poster      string     `json:"poster" bson:"poster"`
	PosterURL   string     `json:"posterUrl" bson:"poster_url"`
	Overview    string     `json:"overview" bson:"overview"`
	ReleaseDate string     `json:"releaseDate" bson:"release_date"`
	VoteAverage float64    `json:"voteAverage" bson:"vote_average"`
	GenreIDs    []int      `json:"genreIds" bson:"genre_ids"`
	MediaType   string     `json:"mediaType" bson:"media_type"`
	Rating      float64    `json:"rating,omitempty" bson:"rating,omitempty"`
	Review      string     `json:"review,omitempty" bson:"review,omitempty"`
	WatchedAt   *time.Time `json:"watchedAt,omitempty" bson:"watched_at,omitempty"`
	AddedAt     *time.Time `json:"addedAt,omitempty" bson:"added_at,omitempty"`
}

// NormalizeMovieRecord resolves an arbitrary movie/TV payload into a
// MovieRecord. Each field falls back through the known naming variants
// (movie vs TV shape, camelCase vs snake_case). ctxField selects which
// of watchedAt/addedAt gets stamped; it defaults to now when the input
// does not carry one. Absent fields resolve to zero values; the caller
// is responsible for rejecting records without a resolvable tmdbId.
func NormalizeMovieRecord(raw map[string]interface{}, ctxField string, now time.Time) MovieRecord {
	rec := MovieRecord{
		TmdbID:      coerceID(pick(raw, "tmdbId", "id")),
		Title:       coerceString(pick(raw, "title", "name")),
		Poster:      coerceString(pick(raw, "poster", "posterUrl", "poster_path")),
		PosterURL:   coerceString(pick(raw, "posterUrl", "poster_path", "poster")),
		Overview:    coerceString(raw["overview"]),
		ReleaseDate: coerceString(pick(raw, "releaseDate", "release_date", "first_air_date")),
		VoteAverage: coerceFloat(pick(raw, "voteAverage", "vote_average")),
		GenreIDs:    coerceIntSlice(pick(raw, "genreIds", "genre_ids")),
		MediaType:   coerceString(raw["mediaType"]),
	}
	if rec.MediaType == "" {
		rec.MediaType = "movie"
	}

	switch ctxField {
	case ContextWatchedAt:
		t := coerceTime(raw["watchedAt"], now)
		rec.WatchedAt = &t
		rec.Rating = coerceFloat(raw["rating"])
		rec.Review = coerceString(raw["review"])
	case ContextAddedAt:
		t := coerceTime(raw["addedAt"], now)
		rec.AddedAt = &t
	}
	return rec
}

func pick(raw map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			// An empty string is treated as absent so the next variant wins.
			if s, isStr := v.(string); isStr && s == "" {
				continue
			}
			return v
		}
	}
	return nil
}

// coerceID accepts numeric and string ids so "603" and 603 compare equal.
func coerceID(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return id
	default:
		return 0
	}
}

func coerceString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

func coerceFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func coerceIntSlice(v interface{}) []int {
	switch s := v.(type) {
	case []int:
		return s
	case []interface{}:
		out := make([]int, 0, len(s))
		for _, e := range s {
			out = append(out, int(coerceFloat(e)))
		}
		return out
	default:
		return nil
	}
}

func coerceTime(v interface{}, fallback time.Time) time.Time {
	if s, ok := v.(string); ok && s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return fallback
}
