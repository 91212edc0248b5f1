package resource

import "testing"

func TestIsArchiveLoading(t *testing.T) {
	s := DefaultState()
	if IsArchiveLoading(s, "featured") {
		t.Error("expected false on idle state")
	}

	s.LoadingArchive = "featured"
	if !IsArchiveLoading(s, "featured") {
		t.Error("expected true for the tracked key")
	}
	if IsArchiveLoading(s, "recent") {
		t.Error("expected false for another key")
	}
}

func TestGetArchive_AbsentSubstate(t *testing.T) {
	// Zero-value state has nil collections: substate absent
	var s State
	if got := GetArchive(s, "featured"); got != nil {
		t.Errorf("expected nil for absent substate, got %v", got)
	}
}

func TestGetArchive_UnknownKey(t *testing.T) {
	s := DefaultState()
	if got := GetArchive(s, "never-fetched"); got != nil {
		t.Errorf("expected nil for never-fetched key, got %v", got)
	}
}

func TestGetArchive_ReturnsMatchingEntities(t *testing.T) {
	s := State{
		Archives: map[string][]ID{"featured": {"1", "2"}},
		Posts: []Entity{
			{"id": float64(3), "title": "other"},
			{"id": float64(1), "title": "one"},
			{"id": float64(2), "title": "two"},
		},
	}

	got := GetArchive(s, "featured")
	if len(got) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(got))
	}
	ids := map[ID]bool{}
	for _, e := range got {
		id, _ := EntityID(e)
		ids[id] = true
	}
	if !ids["1"] || !ids["2"] {
		t.Errorf("expected entities 1 and 2, got %v", ids)
	}
}

func TestGetArchive_EmptyResultSet(t *testing.T) {
	s := State{
		Archives: map[string][]ID{"empty": {}},
		Posts:    []Entity{{"id": float64(1)}},
	}
	got := GetArchive(s, "empty")
	if got == nil {
		t.Fatal("expected non-nil result for a fetched-but-empty archive")
	}
	if len(got) != 0 {
		t.Errorf("expected 0 entities, got %d", len(got))
	}
}

func TestIsPostLoading(t *testing.T) {
	s := DefaultState()
	if IsPostLoading(s, "5") {
		t.Error("expected false on idle state")
	}
	s.LoadingPost = "5"
	if !IsPostLoading(s, "5") {
		t.Error("expected true for the tracked id")
	}
	if IsPostLoading(s, "6") {
		t.Error("expected false for another id")
	}
}

func TestGetSingle(t *testing.T) {
	s := State{Posts: []Entity{{"id": float64(5), "title": "x"}}}
	if e := GetSingle(s, "5"); e == nil || e["title"] != "x" {
		t.Errorf("expected post 5, got %v", e)
	}
	if e := GetSingle(s, "6"); e != nil {
		t.Errorf("expected nil for unknown id, got %v", e)
	}
}

func TestIsPostSavingAndCreating(t *testing.T) {
	s := DefaultState()
	if IsPostSaving(s, "5") || IsPostCreating(s) {
		t.Error("expected idle state to report nothing saving")
	}

	s.Saving = "5"
	if !IsPostSaving(s, "5") {
		t.Error("expected true for the tracked id")
	}
	if IsPostCreating(s) {
		t.Error("expected creating false for a real id")
	}

	s.Saving = "_tmp_7"
	if !IsPostCreating(s) {
		t.Error("expected creating true for a temp id")
	}
	if !IsPostSaving(s, "_tmp_7") {
		t.Error("expected saving true for the temp id itself")
	}
}
