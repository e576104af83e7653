package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/models"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

type fakeHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return f.DoFunc(req)
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

const releaseDoc = `{
  "tag_name": "v2.0",
  "assets": [
    {"name": "App-2.0-x86_64.AppImage", "browser_download_url": "https://dl.example/App-2.0-x86_64.AppImage"},
    {"name": "App-2.0-aarch64.AppImage", "browser_download_url": "https://dl.example/App-2.0-aarch64.AppImage"},
    {"name": "checksums.txt", "browser_download_url": "https://dl.example/checksums.txt"}
  ]
}`

func releaseClient(t *testing.T) *fakeHTTPClient {
	t.Helper()
	return &fakeHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			if req.URL.Host == "api.example" {
				return jsonResponse(releaseDoc), nil
			}
			return nil, fmt.Errorf("unexpected URL: %s", req.URL.String())
		},
	}
}

func TestResolveAsset_FirstMatchInDocumentOrder(t *testing.T) {
	tests := []struct {
		name    string
		match   *models.AssetMatch
		wantURL string
	}{
		{
			name:    "no predicates picks first asset",
			match:   nil,
			wantURL: "https://dl.example/App-2.0-x86_64.AppImage",
		},
		{
			name:    "contains",
			match:   &models.AssetMatch{Contains: "aarch64"},
			wantURL: "https://dl.example/App-2.0-aarch64.AppImage",
		},
		{
			name:    "all predicates must hold",
			match:   &models.AssetMatch{StartsWith: "App", Contains: "x86_64", EndsWith: ".AppImage"},
			wantURL: "https://dl.example/App-2.0-x86_64.AppImage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, url, err := ResolveAsset(context.Background(), releaseClient(t),
				"app", "https://api.example/releases/latest", tt.match)
			if err != nil {
				t.Fatalf("ResolveAsset: %v", err)
			}
			if tag != "v2.0" {
				t.Errorf("tag = %q, want v2.0", tag)
			}
			if url != tt.wantURL {
				t.Errorf("url = %q, want %q", url, tt.wantURL)
			}
		})
	}
}

func TestResolveAsset_NoMatchStillReturnsTag(t *testing.T) {
	tag, url, err := ResolveAsset(context.Background(), releaseClient(t),
		"app", "https://api.example/releases/latest",
		&models.AssetMatch{EndsWith: ".deb"})
	if err != nil {
		t.Fatalf("ResolveAsset: %v", err)
	}
	if tag != "v2.0" {
		t.Errorf("tag = %q, want v2.0", tag)
	}
	if url != "" {
		t.Errorf("url = %q, want empty", url)
	}
}

func TestResolveAsset_UnreachableAPI(t *testing.T) {
	client := &fakeHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 404,
				Body:       io.NopCloser(bytes.NewReader(nil)),
			}, nil
		},
	}

	tag, url, err := ResolveAsset(context.Background(), client,
		"app", "https://api.example/releases/latest", nil)
	if err != nil {
		t.Fatalf("ResolveAsset: %v", err)
	}
	if tag != "" || url != "" {
		t.Errorf("got (%q, %q), want empty pair", tag, url)
	}
}

func TestResolveAsset_MalformedDescriptor(t *testing.T) {
	client := &fakeHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return jsonResponse("{not json"), nil
		},
	}

	tag, url, err := ResolveAsset(context.Background(), client,
		"app", "https://api.example/releases/latest", nil)
	if err != nil {
		t.Fatalf("ResolveAsset: %v", err)
	}
	if tag != "" || url != "" {
		t.Errorf("got (%q, %q), want empty pair", tag, url)
	}
}

func TestResolveAsset_CancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	client := &fakeHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				// Probe succeeds, then the user interrupts before the
				// descriptor download.
				return jsonResponse("ok"), nil
			}
			cancel()
			return nil, context.Canceled
		},
	}

	_, _, err := ResolveAsset(ctx, client, "app", "https://api.example/releases/latest", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
