package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"CineShelf/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMood(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":" Nostalgic \n"}}]}`)
	}))
	defer srv.Close()

	c := NewOpenRouterClient("test-key")
	c.url = srv.URL

	mood, err := c.ClassifyMood(context.Background(), "thinking about old summers")
	require.NoError(t, err)
	assert.Equal(t, "nostalgic", mood, "reply is trimmed and lowercased")
	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "thinking about old summers", gotReq.Messages[1].Content)
}

func TestClassifyMoodEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	c := NewOpenRouterClient("test-key")
	c.url = srv.URL

	_, err := c.ClassifyMood(context.Background(), "hello")
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestClassifyMoodWithoutAPIKey(t *testing.T) {
	c := NewOpenRouterClient("")

	_, err := c.ClassifyMood(context.Background(), "hello")
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}
