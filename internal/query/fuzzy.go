package query

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/helixmed/helix-core/internal/models"
)

// SearchPrompts ranks prompts against the query using fuzzy matching
// over title, description, id, and tags. An empty query returns the
// input unchanged.
func SearchPrompts(prompts []*models.Prompt, query string) []*models.Prompt {
	if query == "" {
		return prompts
	}

	var searchStrings []string
	for _, p := range prompts {
		searchStrings = append(searchStrings, fmt.Sprintf("%s %s %s %s",
			p.Title,
			p.Description,
			p.ID,
			strings.Join(p.Tags, " ")))
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []*models.Prompt
	for _, match := range matches {
		results = append(results, prompts[match.Index])
	}
	return results
}

// FilterPromptsByTags keeps prompts matching the tag expression. A nil
// expression matches everything.
func FilterPromptsByTags(prompts []*models.Prompt, expr *models.TagExpr) []*models.Prompt {
	if expr == nil {
		return prompts
	}
	var out []*models.Prompt
	for _, p := range prompts {
		if expr.Evaluate(p.Tags) {
			out = append(out, p)
		}
	}
	return out
}
