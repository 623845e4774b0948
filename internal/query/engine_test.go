package query

import (
	"testing"

	"github.com/helixmed/helix-core/internal/models"
)

func samplePrompts() []*models.Prompt {
	return []*models.Prompt{
		{ID: "clinical-summary", Title: "Clinical Summary Draft", Description: "Summarize an encounter", Category: "documentation", Tags: []string{"notes"}},
		{ID: "abstract-polish", Title: "Abstract Polish", Description: "Tighten an abstract", Category: "writing", Tags: []string{"abstract", "english"}},
		{ID: "journal-reply", Title: "Reviewer Reply", Description: "Draft a response to reviewers", Category: "writing", Tags: []string{"peer-review"}},
	}
}

func TestFilterPrompts(t *testing.T) {
	prompts := samplePrompts()

	got := FilterPrompts(prompts, "abstract")
	if len(got) != 1 || got[0].ID != "abstract-polish" {
		t.Errorf("Expected abstract-polish, got %v", ids(got))
	}

	// Case-insensitive, matches tags too.
	got = FilterPrompts(prompts, "PEER")
	if len(got) != 1 || got[0].ID != "journal-reply" {
		t.Errorf("Expected journal-reply via tag, got %v", ids(got))
	}

	// Empty query matches everything.
	if got := FilterPrompts(prompts, ""); len(got) != 3 {
		t.Errorf("Expected all prompts, got %d", len(got))
	}

	// No match yields an empty result.
	if got := FilterPrompts(prompts, "radiology"); len(got) != 0 {
		t.Errorf("Expected no match, got %v", ids(got))
	}
}

func TestFilterPromptsByCategory(t *testing.T) {
	prompts := samplePrompts()

	got := FilterPromptsByCategory(prompts, "writing")
	if len(got) != 2 {
		t.Errorf("Expected 2 writing prompts, got %v", ids(got))
	}
	if got := FilterPromptsByCategory(prompts, "all"); len(got) != 3 {
		t.Errorf("Expected sentinel to match all, got %d", len(got))
	}
}

func TestSearchPromptsRanks(t *testing.T) {
	prompts := samplePrompts()

	got := SearchPrompts(prompts, "summ")
	if len(got) == 0 || got[0].ID != "clinical-summary" {
		t.Errorf("Expected clinical-summary first, got %v", ids(got))
	}
	if got := SearchPrompts(prompts, ""); len(got) != 3 {
		t.Errorf("Empty query should pass through, got %d", len(got))
	}
}

func TestFilterPromptsByTags(t *testing.T) {
	prompts := samplePrompts()

	expr := models.NewOr(models.NewTag("abstract"), models.NewTag("peer-review"))
	got := FilterPromptsByTags(prompts, expr)
	if len(got) != 2 {
		t.Errorf("Expected 2 matches, got %v", ids(got))
	}

	not := models.NewNot(models.NewTag("english"))
	got = FilterPromptsByTags(prompts, not)
	if len(got) != 2 {
		t.Errorf("Expected 2 non-english prompts, got %v", ids(got))
	}

	if got := FilterPromptsByTags(prompts, nil); len(got) != 3 {
		t.Errorf("Nil expression should match all, got %d", len(got))
	}
}

func TestSortJournalsByImpactFactor(t *testing.T) {
	journals := []models.Journal{
		{ID: "a", Title: "Journal A", ImpactFactor: 3.2},
		{ID: "b", Title: "Journal B", ImpactFactor: 91.2},
		{ID: "c", Title: "Journal C", ImpactFactor: 3.2},
		{ID: "d", Title: "Journal D", ImpactFactor: 12.8},
	}

	got := SortJournals(journals, SortImpactFactorDesc)
	wantOrder := []string{"b", "d", "a", "c"} // ties keep input order
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("Position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	// Input must be untouched.
	if journals[0].ID != "a" {
		t.Error("SortJournals mutated its input")
	}
}

func TestSortJournalsByTitle(t *testing.T) {
	journals := []models.Journal{
		{ID: "2", Title: "内科学会誌"},
		{ID: "1", Title: "Annals of Medicine"},
		{ID: "3", Title: "BMJ Open"},
	}

	got := SortJournals(journals, SortTitleAsc)
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Unexpected title order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}

	desc := SortJournals(journals, SortTitleDesc)
	if desc[len(desc)-1].ID != got[0].ID {
		t.Error("Descending order should reverse ascending order")
	}
}

func TestSortGuidesByReadTime(t *testing.T) {
	guides := []models.Guide{
		{ID: "long", ReadTime: 45},
		{ID: "short", ReadTime: 10},
		{ID: "mid", ReadTime: 20},
	}

	got := SortGuides(guides, SortReadTimeAsc)
	if got[0].ID != "short" || got[2].ID != "long" {
		t.Errorf("Unexpected read-time order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestFilterGuides(t *testing.T) {
	guides := []models.Guide{
		{ID: "marw", Title: "Medical AI Research Workflow", Tags: []string{"research", "ai"}},
		{ID: "case-report", Title: "Case Report Writing", Description: "From encounter to submission"},
	}

	if got := FilterGuides(guides, "submission"); len(got) != 1 || got[0].ID != "case-report" {
		t.Errorf("Expected case-report via description, got %d", len(got))
	}
	if got := FilterGuides(guides, "research"); len(got) != 1 || got[0].ID != "marw" {
		t.Errorf("Expected marw via tag, got %d", len(got))
	}
}

func ids(prompts []*models.Prompt) []string {
	var out []string
	for _, p := range prompts {
		out = append(out, p.ID)
	}
	return out
}
