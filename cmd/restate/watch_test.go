package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bassista/go_restate/internal/config"
	"github.com/bassista/go_restate/internal/resource"
	"github.com/bassista/go_restate/internal/store"
)

func setupCLI(t *testing.T, baseURL string) {
	t.Helper()
	var err error
	httpClient = &http.Client{Timeout: time.Second}
	handler, err = resource.NewHandler(resource.HandlerOptions{
		BaseURL:  baseURL,
		Resource: "post",
		Client:   httpClient,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st = store.New()
	st.Mount(storeKey, handler.Reducer())
}

func TestRunWatch_RefreshesArchivesUntilCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "title": "one"}})
	}))
	defer srv.Close()
	setupCLI(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := runWatch(ctx, []string{"recent"}, resource.StaticQuery{}, 20*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := resource.GetArchive(resourceState(), "recent")
	if len(got) != 1 {
		t.Fatalf("expected watched archive with 1 entity, got %v", got)
	}
	if got[0]["title"] != "one" {
		t.Errorf("unexpected entity: %v", got[0])
	}
}

func TestWatchInterval_Resolution(t *testing.T) {
	orig := cfg
	defer func() { cfg = orig }()

	cfg = &config.Config{}
	cfg.Client.RefreshInterval = 10 * time.Second

	if got := watchInterval(2 * time.Second); got != 2*time.Second {
		t.Errorf("expected flag to win, got %v", got)
	}
	if got := watchInterval(0); got != 10*time.Second {
		t.Errorf("expected config refresh interval, got %v", got)
	}

	cfg = &config.Config{}
	if got := watchInterval(0); got != fallbackWatchInterval {
		t.Errorf("expected fallback interval, got %v", got)
	}
}

func TestInitHandler_AppliesClientRequestTimeout(t *testing.T) {
	t.Chdir(t.TempDir())

	orig := flagBaseURL
	flagBaseURL = "http://localhost:8080/posts"
	defer func() { flagBaseURL = orig }()

	if err := initHandler(archiveCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if httpClient == nil {
		t.Fatal("expected an HTTP client to be built")
	}
	if httpClient.Timeout != cfg.Client.RequestTimeout {
		t.Errorf("expected client timeout %v, got %v", cfg.Client.RequestTimeout, httpClient.Timeout)
	}
	if httpClient.Timeout == 0 {
		t.Error("expected a non-zero default request timeout")
	}
}
