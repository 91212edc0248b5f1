package app

import (
	"testing"

	"github.com/bassista/go_restate/internal/cache"
	"github.com/bassista/go_restate/internal/config"
	"github.com/bassista/go_restate/internal/repository"
)

func testDeps(t *testing.T) (*config.Config, repository.Repository, cache.AppStore) {
	t.Helper()
	cfg := &config.Config{}
	repo, err := repository.NewJSONRepository(t.TempDir() + "/posts.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store := cache.NewStore(repository.PostDocument{NextID: 1})
	return cfg, repo, store
}

func TestNew_RequiresDependencies(t *testing.T) {
	cfg, repo, store := testDeps(t)

	if _, err := New(nil, repo, store); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := New(cfg, nil, store); err == nil {
		t.Error("expected error for nil repo")
	}
	if _, err := New(cfg, repo, nil); err == nil {
		t.Error("expected error for nil store")
	}
}

func TestNew_And_Shutdown(t *testing.T) {
	cfg, repo, store := testDeps(t)

	a, err := New(cfg, repo, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-a.BaseCtx.Done():
		t.Fatal("expected base context to be live")
	default:
	}

	a.Shutdown()

	select {
	case <-a.BaseCtx.Done():
	default:
		t.Error("expected base context to be canceled after shutdown")
	}
}

func TestShutdown_NilSafe(t *testing.T) {
	var a *App
	a.Shutdown() // must not panic
}
