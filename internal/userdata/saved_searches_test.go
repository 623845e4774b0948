package userdata

import (
	"testing"
	"time"

	"github.com/helixmed/helix-core/internal/models"
)

func TestSavedSearchStoreRoundTrip(t *testing.T) {
	store := NewSavedSearchStore(NewMemoryKV())

	search := models.SavedSearch{
		Name:       "clinical docs",
		Expression: models.NewAnd(models.NewTag("documentation"), models.NewNot(models.NewTag("draft"))),
		TextQuery:  "summary",
	}
	if err := store.Save(search); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get("clinical docs")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.TextQuery != "summary" || got.CreatedAt == "" || got.UpdatedAt == "" {
		t.Errorf("Unexpected stored search: %+v", got)
	}
	if !got.Expression.Evaluate([]string{"documentation"}) {
		t.Error("Expected expression to survive the round trip")
	}
	if got.Expression.Evaluate([]string{"documentation", "draft"}) {
		t.Error("Expected NOT branch to survive the round trip")
	}
}

func TestSavedSearchStoreUpsertKeepsCreatedAt(t *testing.T) {
	store := NewSavedSearchStore(NewMemoryKV())
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return first }

	if err := store.Save(models.SavedSearch{Name: "mine", TextQuery: "a"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store.now = func() time.Time { return first.Add(48 * time.Hour) }
	if err := store.Save(models.SavedSearch{Name: "mine", TextQuery: "b"}); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, err := store.Get("mine")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.TextQuery != "b" {
		t.Errorf("Expected replacement to win, got %q", got.TextQuery)
	}
	if got.CreatedAt != first.Format(time.RFC3339) {
		t.Errorf("Expected original creation time kept, got %s", got.CreatedAt)
	}
	if got.UpdatedAt == got.CreatedAt {
		t.Error("Expected update time to advance")
	}
}

func TestSavedSearchStoreListSortedByName(t *testing.T) {
	store := NewSavedSearchStore(NewMemoryKV())
	for _, name := range []string{"zebra", "alpha", "mid"} {
		if err := store.Save(models.SavedSearch{Name: name}); err != nil {
			t.Fatalf("Save %s failed: %v", name, err)
		}
	}

	searches, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(searches) != 3 {
		t.Fatalf("Expected 3 searches, got %d", len(searches))
	}
	want := []string{"alpha", "mid", "zebra"}
	for i, name := range want {
		if searches[i].Name != name {
			t.Errorf("Expected %s at position %d, got %s", name, i, searches[i].Name)
		}
	}
}

func TestSavedSearchStoreDelete(t *testing.T) {
	store := NewSavedSearchStore(NewMemoryKV())
	if err := store.Delete("ghost"); err == nil {
		t.Error("Expected error deleting a missing search")
	}

	if err := store.Save(models.SavedSearch{Name: "keepers"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete("keepers"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get("keepers"); err == nil {
		t.Error("Expected deleted search to be gone")
	}
}
