// Package openai implements the completion backend on the OpenAI
// chat-completions wire format.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"dinneragent"
)

const (
	defaultAPIURL = "https://api.openai.com/v1/chat/completions"
	defaultModel  = "gpt-4o-mini"

	// Low temperature keeps the reply's structure stable; the parser depends
	// on the date/bullets/JSON layout the prompt asks for.
	defaultTemperature = 0.4
	defaultMaxTokens   = 900
)

type Client struct {
	apiURL      string
	apiKey      string
	model       string
	temperature float32
	maxTokens   int32
	httpClient  dinneragent.HTTPClient
}

type ClientOpts struct {
	APIURL      string
	APIKey      string
	ModelID     string
	Temperature float32
	MaxTokens   int32
	HTTPClient  dinneragent.HTTPClient
}

func NewClient(opts ClientOpts) *Client {
	if opts.APIURL == "" {
		opts.APIURL = defaultAPIURL
	}
	if opts.ModelID == "" {
		opts.ModelID = defaultModel
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	return &Client{
		apiURL:      opts.APIURL,
		apiKey:      opts.APIKey,
		model:       opts.ModelID,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		httpClient:  opts.HTTPClient,
	}
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int32         `json:"max_tokens"`
}

type wireResponse struct {
	Choices []struct {
		Message wireMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the first
// choice's content verbatim. All parsing is left to the caller.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "model", c.model, "prompt_len", len(prompt))

	reqBody := wireRequest{
		Model:       c.model,
		Messages:    []wireMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM_CLIENT: %s: %s", resp.Status, string(body))
	}

	var wr wireResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return "", fmt.Errorf("LLM_CLIENT: decode response: %w", err)
	}
	if len(wr.Choices) == 0 {
		return "", fmt.Errorf("LLM_CLIENT: response has no choices")
	}

	content := wr.Choices[0].Message.Content
	slog.Info("LLM_CLIENT: Completion received", "content_len", len(content))
	return content, nil
}
