// Package openai is a minimal client for the OpenAI chat completions
// endpoint: one POST per run, bounded by the common client timeout.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/databydepew/git-auto-commit/internal/clients/common"
)

const defaultBaseURL = "https://api.openai.com/v1"

// ErrNoChoices indicates the service answered 200 with an empty choice list.
var ErrNoChoices = errors.New("no choices in completion response")

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	config     common.ClientConfig
}

// NewClient builds a completions client for the given key and model.
// baseURL overrides the API root when non-empty (tests point it at a
// local server). If httpClient is nil, the common default client with
// its timeout is used.
func NewClient(apiKey, model, baseURL string, httpClient *http.Client) *Client {
	config := common.DefaultConfig()
	config.Headers["Content-Type"] = "application/json"
	config.Headers["Authorization"] = "Bearer " + apiKey

	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = common.NewHTTPClient(config)
	}

	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		config:     config,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one chat completion request and returns the raw
// completion text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	requestBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   100,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := common.NewRequest(ctx, http.MethodPost, c.baseURL+"/chat/completions", requestBody, c.config)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status code %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("API error (%s): %s", response.Error.Type, response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", ErrNoChoices
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
