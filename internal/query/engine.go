// Package query implements filtering, sorting, and ranked search over
// the content catalogs, plus the incremental-reveal pager used by list
// views. All operations are pure: they never mutate their inputs.
package query

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/helixmed/helix-core/internal/models"
)

// SortOrder names a supported list ordering.
type SortOrder string

const (
	SortTitleAsc         SortOrder = "title-asc"
	SortTitleDesc        SortOrder = "title-desc"
	SortImpactFactorDesc SortOrder = "impact-desc"
	SortReadTimeAsc      SortOrder = "read-time-asc"
	SortReadTimeDesc     SortOrder = "read-time-desc"
)

// titleCollator orders titles the way the app's Japanese-language UI
// does. collate.Collator is not safe for concurrent use, so callers go
// through compareTitles which guards it.
var (
	titleCollator = collate.New(language.Japanese)
	collMu        sync.Mutex
)

func compareTitles(a, b string) int {
	collMu.Lock()
	defer collMu.Unlock()
	return titleCollator.CompareString(a, b)
}

// FilterPrompts returns prompts whose title, description, id, or tags
// contain the query, case-insensitively. An empty query matches all.
func FilterPrompts(prompts []*models.Prompt, query string) []*models.Prompt {
	if query == "" {
		return prompts
	}
	q := strings.ToLower(query)
	var out []*models.Prompt
	for _, p := range prompts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.ID), q) ||
			containsTag(p.Tags, q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterPromptsByCategory keeps prompts in the given category. The
// sentinel "all" (or empty) matches everything.
func FilterPromptsByCategory(prompts []*models.Prompt, category string) []*models.Prompt {
	if category == "" || category == "all" {
		return prompts
	}
	var out []*models.Prompt
	for _, p := range prompts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// FilterJournals returns journals whose name or categories contain the
// query, case-insensitively.
func FilterJournals(journals []models.Journal, query string) []models.Journal {
	if query == "" {
		return journals
	}
	q := strings.ToLower(query)
	var out []models.Journal
	for _, j := range journals {
		if strings.Contains(strings.ToLower(j.Title), q) || containsTag(j.Categories, q) {
			out = append(out, j)
		}
	}
	return out
}

// FilterJournalsByCategory keeps journals listed under the category.
func FilterJournalsByCategory(journals []models.Journal, category string) []models.Journal {
	if category == "" || category == "all" {
		return journals
	}
	var out []models.Journal
	for _, j := range journals {
		if j.InCategory(category) {
			out = append(out, j)
		}
	}
	return out
}

// FilterGuides returns guides whose title, description, or tags contain
// the query, case-insensitively.
func FilterGuides(guides []models.Guide, query string) []models.Guide {
	if query == "" {
		return guides
	}
	q := strings.ToLower(query)
	var out []models.Guide
	for _, g := range guides {
		if strings.Contains(strings.ToLower(g.Title), q) ||
			strings.Contains(strings.ToLower(g.Description), q) ||
			containsTag(g.Tags, q) {
			out = append(out, g)
		}
	}
	return out
}

// SortJournals orders a copy of journals. Ties keep input order.
func SortJournals(journals []models.Journal, order SortOrder) []models.Journal {
	out := make([]models.Journal, len(journals))
	copy(out, journals)

	switch order {
	case SortTitleAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return compareTitles(out[i].Title, out[j].Title) < 0
		})
	case SortTitleDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return compareTitles(out[i].Title, out[j].Title) > 0
		})
	case SortImpactFactorDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ImpactFactor > out[j].ImpactFactor
		})
	}
	return out
}

// SortGuides orders a copy of guides. Ties keep input order.
func SortGuides(guides []models.Guide, order SortOrder) []models.Guide {
	out := make([]models.Guide, len(guides))
	copy(out, guides)

	switch order {
	case SortTitleAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return compareTitles(out[i].Title, out[j].Title) < 0
		})
	case SortTitleDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return compareTitles(out[i].Title, out[j].Title) > 0
		})
	case SortReadTimeAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReadTime < out[j].ReadTime
		})
	case SortReadTimeDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReadTime > out[j].ReadTime
		})
	}
	return out
}

// SortPromptsByTitle orders a copy of prompts by title.
func SortPromptsByTitle(prompts []*models.Prompt, desc bool) []*models.Prompt {
	out := make([]*models.Prompt, len(prompts))
	copy(out, prompts)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return compareTitles(out[i].Title, out[j].Title) > 0
		}
		return compareTitles(out[i].Title, out[j].Title) < 0
	})
	return out
}

func containsTag(tags []string, q string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
