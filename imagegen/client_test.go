package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"math-buddy/config"
)

func testConfig(t *testing.T, apiURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ImageAPIURL:     apiURL,
		ImageAPITimeout: 5 * time.Second,
		StaticDir:       t.TempDir(),
	}
}

func TestGenerateDisabledWithoutURL(t *testing.T) {
	client := New(testConfig(t, ""), zap.NewNop())
	res := client.Generate(context.Background(), "a rocket", "Space", "")
	if res.Status != "disabled" {
		t.Errorf("Status = %q, want disabled", res.Status)
	}
	if res.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty", res.ImageURL)
	}
}

func TestGenerateSavesImage(t *testing.T) {
	fakePNG := []byte("\x89PNG fake image bytes")
	var gotReq generateImageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write(fakePNG)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	client := New(cfg, zap.NewNop())

	res := client.Generate(context.Background(), "a rocket", "Space", "square")
	if res.Status != "success" {
		t.Fatalf("Status = %q (%s), want success", res.Status, res.Message)
	}
	if gotReq.Width != 512 || gotReq.Height != 512 {
		t.Errorf("square format sent %dx%d, want 512x512", gotReq.Width, gotReq.Height)
	}
	if !strings.Contains(gotReq.Prompt, "Space theme") {
		t.Errorf("prompt missing theme: %q", gotReq.Prompt)
	}
	if !strings.HasPrefix(res.ImageURL, "/static/images/") || !strings.HasSuffix(res.ImageURL, ".png") {
		t.Fatalf("ImageURL = %q", res.ImageURL)
	}

	saved := filepath.Join(cfg.StaticDir, "images", filepath.Base(res.ImageURL))
	data, err := os.ReadFile(saved)
	if err != nil {
		t.Fatalf("read saved image: %v", err)
	}
	if string(data) != string(fakePNG) {
		t.Error("saved image bytes differ from service response")
	}
}

func TestGenerateServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL), zap.NewNop())
	res := client.Generate(context.Background(), "a rocket", "", "")
	if res.Status != "error" {
		t.Errorf("Status = %q, want error", res.Status)
	}
}
