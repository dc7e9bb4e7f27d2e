package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"CineShelf/internal/apperr"
)

const (
	openRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	openRouterModel = "mistralai/mistral-7b-instruct"

	moodPrompt = "You classify a short text describing how someone feels into exactly one " +
		"of these moods: happy, sad, excited, relaxed, romantic, adventurous, nostalgic, " +
		"scared. Reply with the single mood word only."
)

// OpenRouterClient calls the LLM gateway for mood classification.
type OpenRouterClient struct {
	apiKey string
	url    string
	client *http.Client
}

func NewOpenRouterClient(apiKey string) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey: apiKey,
		url:    openRouterURL,
		client: &http.Client{
			Timeout: upstreamTimeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ClassifyMood asks the model to label the text with one mood word.
func (c *OpenRouterClient) ClassifyMood(ctx context.Context, text string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("OpenRouter API key not configured: %w", apperr.ErrUpstream)
	}

	payload, err := json.Marshal(chatRequest{
		Model: openRouterModel,
		Messages: []chatMessage{
			{Role: "system", Content: moodPrompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return "", fmt.Errorf("OpenRouter request timed out: %w", apperr.ErrUpstream)
		}
		return "", fmt.Errorf("OpenRouter request failed: %w", apperr.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("OpenRouter returned status %d: %w", resp.StatusCode, apperr.ErrUpstream)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode OpenRouter response: %w", apperr.ErrUpstream)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty completion: %w", apperr.ErrUpstream)
	}

	mood := strings.ToLower(strings.TrimSpace(parsed.Choices[0].Message.Content))
	return mood, nil
}
