package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"CineShelf/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTMDBClient(handler http.Handler) (*TMDBClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewTMDBClient("test-key")
	c.baseURL = srv.URL
	return c, srv
}

func TestGetInjectsAPIKey(t *testing.T) {
	var gotKey string
	c, srv := newTestTMDBClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	body, err := c.Get(context.Background(), "/movie/603", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "test-key", gotKey)
}

func TestGetWithoutAPIKey(t *testing.T) {
	c := NewTMDBClient("")

	_, err := c.Get(context.Background(), "/movie/603", nil)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestGetUpstreamError(t *testing.T) {
	c, srv := newTestTMDBClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := c.Get(context.Background(), "/movie/0", nil)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestBoxOfficeSortsByRevenue(t *testing.T) {
	revenues := map[string]int64{
		"1": 100,
		"2": 300,
		"3": 200,
	}
	c, srv := newTestTMDBClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/now_playing" {
			fmt.Fprint(w, `{"results":[{"id":1},{"id":2},{"id":3}]}`)
			return
		}
		id := r.URL.Path[len("/movie/"):]
		fmt.Fprintf(w, `{"id":%s,"title":"Movie %s","revenue":%d}`, id, id, revenues[id])
	}))
	defer srv.Close()

	entries, err := c.BoxOffice(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, int64(300), entries[0].Revenue)
	assert.Equal(t, int64(200), entries[1].Revenue)
	assert.Equal(t, int64(100), entries[2].Revenue)
	assert.Equal(t, int64(300*83), entries[0].RevenueINR)
}

func TestBoxOfficeHonorsLimit(t *testing.T) {
	c, srv := newTestTMDBClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/now_playing" {
			fmt.Fprint(w, `{"results":[{"id":1},{"id":2},{"id":3}]}`)
			return
		}
		fmt.Fprint(w, `{"id":1,"title":"x","revenue":1}`)
	}))
	defer srv.Close()

	entries, err := c.BoxOffice(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWatchProvidersValidatesMediaType(t *testing.T) {
	c := NewTMDBClient("test-key")

	_, err := c.WatchProviders(context.Background(), "podcast", "1")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
