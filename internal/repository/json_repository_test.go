package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func testDocument() *PostDocument {
	return &PostDocument{
		Metadata: Metadata{LastUpdate: 1000},
		Posts: []Post{
			{ID: 1, Title: "one", Status: "publish", Date: "2026-01-01T00:00:00Z"},
		},
		NextID: 2,
	}
}

func TestNewJSONRepository_RequiresPath(t *testing.T) {
	if _, err := NewJSONRepository(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestJSONRepository_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.json")

	repo, err := NewJSONRepository(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := testDocument()
	if err := repo.Save(context.Background(), doc); err != nil {
		t.Fatalf("save error: %v", err)
	}

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if len(loaded.Posts) != 1 || loaded.Posts[0].Title != "one" {
		t.Errorf("unexpected loaded document: %+v", loaded)
	}
	if loaded.NextID != 2 {
		t.Errorf("expected nextId 2, got %d", loaded.NextID)
	}

	// Atomic save leaves no temp files behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the posts file in dir, got %d entries", len(entries))
	}
}

func TestJSONRepository_Load_MissingFile(t *testing.T) {
	repo, err := NewJSONRepository(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestJSONRepository_Load_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.json")
	// Title is required: this document must fail validation
	if err := os.WriteFile(path, []byte(`{"posts":[{"id":1}],"nextId":2}`), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	repo, err := NewJSONRepository(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected validation error")
	}
}

func TestJSONRepository_Save_RejectsInvalid(t *testing.T) {
	repo, err := NewJSONRepository(filepath.Join(t.TempDir(), "posts.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := testDocument()
	doc.Posts[0].Title = ""
	if err := repo.Save(context.Background(), doc); err == nil {
		t.Error("expected validation error for empty title")
	}
}

func TestJSONRepository_Save_NilDocument(t *testing.T) {
	repo, err := NewJSONRepository(filepath.Join(t.TempDir(), "posts.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Save(context.Background(), nil); err == nil {
		t.Error("expected error for nil document")
	}
}
