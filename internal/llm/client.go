// Package llm asks an OpenAI-compatible chat endpoint to name the language
// of a code snippet.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cognicore/kcx/pkg/kcx/lang"
)

const (
	// labelTokens bounds the reply; every label fits in a few tokens.
	labelTokens = 8
	// maxSnippet caps the runes sent per request.
	maxSnippet = 2000
	// maxReply caps how much of the response body is decoded.
	maxReply = 1 << 20
)

const labelPrompt = "Name the programming language of this code read from a video frame. " +
	"Answer " + lang.LabelCCpp + ", " + lang.LabelJava + ", " + lang.LabelPython + " or unknown."

// Client is a lang.Model backed by a chat completion endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

var _ lang.Model = (*Client)(nil)

type labelRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type labelResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Label returns the model's answer for snippet, lower-cased with quotes and
// trailing dots removed. Mapping it to a language is the caller's job.
func (c *Client) Label(ctx context.Context, snippet string) (string, error) {
	if c.BaseURL == "" || c.Model == "" {
		return "", fmt.Errorf("llm: base URL and model required")
	}

	body, err := json.Marshal(labelRequest{
		Model: c.Model,
		Messages: []message{
			{Role: "system", Content: labelPrompt},
			{Role: "user", Content: truncate(snippet, maxSnippet)},
		},
		MaxTokens: labelTokens,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return normalize(resp.Choices[0].Message.Content), nil
}

func (c *Client) post(ctx context.Context, body []byte) (*labelResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	defer resp.Body.Close()

	var payload labelResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReply)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("llm: decode response (status %d): %w", resp.StatusCode, err)
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm: %s", payload.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm: HTTP %d", resp.StatusCode)
	}
	return &payload, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// normalize reduces a reply such as " `C_CPP`.\n" to "c_cpp". Only the first
// word counts.
func normalize(reply string) string {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Trim(fields[0], "`'\".,:"))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
