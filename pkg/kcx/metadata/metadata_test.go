package metadata

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTrip func(*http.Request) *http.Response

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req), nil
}

func TestTimestampURL(t *testing.T) {
	got := TimestampURL("https://www.youtube.com/watch?v=abc", 42)
	if got != "https://www.youtube.com/watch?v=abc&t=42" {
		t.Fatalf("unexpected url: %s", got)
	}

	offset, ok := OffsetFromTimestamp(got)
	if !ok || offset != 42 {
		t.Fatalf("expected offset 42, got %d (ok=%v)", offset, ok)
	}

	if _, ok := OffsetFromTimestamp("https://example.com"); ok {
		t.Error("expected no offset without &t=")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"C++ Tutorial: Pointers!": "cpp-tutorial-pointers",
		"  Python for Beginners ": "python-for-beginners",
		"///":                     "untitled",
		"":                        "untitled",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractTitlePrefersOpenGraph(t *testing.T) {
	page := `<html><head><title>Learn C++ - YouTube</title>
<meta property="og:title" content="Learn C++"></head><body></body></html>`

	title, err := ExtractTitle(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractTitle: %v", err)
	}
	if title != "Learn C++" {
		t.Errorf("expected og:title, got %q", title)
	}
}

func TestExtractTitleFallsBackToTitleElement(t *testing.T) {
	title, err := ExtractTitle(strings.NewReader(`<html><head><title> Java Basics </title></head></html>`))
	if err != nil {
		t.Fatalf("ExtractTitle: %v", err)
	}
	if title != "Java Basics" {
		t.Errorf("unexpected title %q", title)
	}
}

func TestFetchTitle(t *testing.T) {
	f := &TitleFetcher{
		UserAgent: "kcx-test",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				if req.Header.Get("User-Agent") != "kcx-test" {
					t.Errorf("expected user agent header")
				}
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(`<title>Python in 1 hour</title>`)),
					Header:     make(http.Header),
				}
			}),
		},
	}

	title, err := f.FetchTitle(context.Background(), "https://video.test/watch?v=1")
	if err != nil {
		t.Fatalf("FetchTitle: %v", err)
	}
	if title != "Python in 1 hour" {
		t.Errorf("unexpected title %q", title)
	}
}

func TestFetchTitleHTTPError(t *testing.T) {
	f := &TitleFetcher{
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return &http.Response{
					StatusCode: 404,
					Body:       io.NopCloser(strings.NewReader("")),
					Header:     make(http.Header),
				}
			}),
		},
	}
	if _, err := f.FetchTitle(context.Background(), "https://video.test/missing"); err == nil {
		t.Fatal("expected error for 404")
	}
}
