package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTrip func(*http.Request) *http.Response

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req), nil
}

func reply(body string) roundTrip {
	return func(*http.Request) *http.Response {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}
	}
}

func TestLabelSuccess(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "gpt-test",
		APIKey:  "secret",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				if got := req.Header.Get("Authorization"); got != "Bearer secret" {
					t.Fatalf("unexpected auth header %q", got)
				}
				var payload labelRequest
				if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
					t.Fatalf("decode request: %v", err)
				}
				if len(payload.Messages) != 2 || payload.Messages[1].Content != "for (int i = 0;" {
					t.Fatalf("expected snippet as user message, got %+v", payload.Messages)
				}
				if !strings.Contains(payload.Messages[0].Content, "c_cpp") {
					t.Fatalf("expected labels in system prompt")
				}
				if payload.MaxTokens != labelTokens || payload.Temperature != 0 {
					t.Fatalf("expected a short deterministic reply, got max_tokens=%d temperature=%v", payload.MaxTokens, payload.Temperature)
				}
				return reply(`{"choices":[{"message":{"role":"assistant","content":" C_CPP.\n"}}]}`)(req)
			}),
		},
	}

	out, err := client.Label(context.Background(), "for (int i = 0;")
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	if out != "c_cpp" {
		t.Fatalf("expected c_cpp, got %q", out)
	}
}

func TestLabelError(t *testing.T) {
	client := &Client{
		BaseURL:    "https://api.test/v1/chat/completions",
		Model:      "gpt-test",
		HTTPClient: &http.Client{Transport: reply(`{"error":{"message":"bad"}}`)},
	}
	if _, err := client.Label(context.Background(), "x = 1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLabelEmptyChoices(t *testing.T) {
	client := &Client{
		BaseURL:    "https://api.test/v1/chat/completions",
		Model:      "gpt-test",
		HTTPClient: &http.Client{Transport: reply(`{"choices":[]}`)},
	}
	if _, err := client.Label(context.Background(), "x = 1"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestLabelRequiresEndpoint(t *testing.T) {
	client := &Client{Model: "gpt-test"}
	if _, err := client.Label(context.Background(), "x = 1"); err == nil {
		t.Fatal("expected error without base URL")
	}
}

func TestLabelHTTPStatus(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "gpt-test",
		HTTPClient: &http.Client{Transport: roundTrip(func(*http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusServiceUnavailable,
				Body:       io.NopCloser(strings.NewReader(`{}`)),
				Header:     make(http.Header),
			}
		})},
	}
	if _, err := client.Label(context.Background(), "x = 1"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestLabelTruncatesSnippet(t *testing.T) {
	long := strings.Repeat("é", maxSnippet+50)
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "gpt-test",
		HTTPClient: &http.Client{Transport: roundTrip(func(req *http.Request) *http.Response {
			var payload labelRequest
			if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			if n := len([]rune(payload.Messages[1].Content)); n != maxSnippet {
				t.Fatalf("expected %d runes sent, got %d", maxSnippet, n)
			}
			return reply(`{"choices":[{"message":{"role":"assistant","content":"python"}}]}`)(req)
		})},
	}
	if _, err := client.Label(context.Background(), long); err != nil {
		t.Fatalf("Label: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		" C_CPP.\n":         "c_cpp",
		"`java`":            "java",
		"Python, probably.": "python",
		"   ":               "",
	}
	for in, want := range tests {
		if got := normalize(in); got != want {
			t.Errorf("normalize(%q) = %q, expected %q", in, got, want)
		}
	}
}
