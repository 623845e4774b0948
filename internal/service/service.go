// Package service wires the content library, persistence adapter, and
// derived-state engines into the operations the API and CLI expose.
package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/helixmed/helix-core/internal/errors"
	"github.com/helixmed/helix-core/internal/models"
	"github.com/helixmed/helix-core/internal/progress"
	"github.com/helixmed/helix-core/internal/query"
	"github.com/helixmed/helix-core/internal/storage"
	"github.com/helixmed/helix-core/internal/userdata"
)

// Service provides the content and personalization operations.
type Service struct {
	library       *storage.Library
	data          *userdata.Adapter
	aggregator    *progress.Aggregator
	gamification  *progress.Gamification
	savedSearches *userdata.SavedSearchStore
	logger        *zap.Logger

	mu      sync.Mutex
	prompts []*models.Prompt // Cached prompt metadata for fast access
}

// New creates a service over the given stores.
func New(library *storage.Library, kv userdata.KV, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	data := userdata.NewAdapter(kv, logger.Named("userdata"))
	return &Service{
		library:       library,
		data:          data,
		aggregator:    progress.NewAggregator(data, library),
		gamification:  progress.NewGamification(data, logger.Named("gamification")),
		savedSearches: userdata.NewSavedSearchStore(kv),
		logger:        logger,
	}
}

// InitLibrary initializes the content library directory structure.
func (s *Service) InitLibrary() error {
	return s.library.InitLibrary()
}

// ListPrompts returns all prompts, loading and caching metadata on
// first use.
func (s *Service) ListPrompts() ([]*models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prompts == nil {
		prompts, err := s.library.ListPrompts()
		if err != nil {
			return nil, apperrors.ContentError("failed to load prompt library", err)
		}
		s.prompts = prompts
	}
	return s.prompts, nil
}

// ReloadPrompts drops the in-memory prompt cache.
func (s *Service) ReloadPrompts() {
	s.mu.Lock()
	s.prompts = nil
	s.mu.Unlock()
}

// GetPrompt returns a prompt by id with its template loaded.
func (s *Service) GetPrompt(id string) (*models.Prompt, error) {
	prompts, err := s.ListPrompts()
	if err != nil {
		return nil, err
	}

	for _, p := range prompts {
		if p.ID != id {
			continue
		}
		if p.Template == "" && p.FilePath != "" {
			full, err := s.library.LoadPrompt(p.FilePath)
			if err != nil {
				return nil, apperrors.ContentError("failed to load prompt template", err)
			}
			return full, nil
		}
		return p, nil
	}

	return nil, apperrors.NotFoundError(fmt.Sprintf("prompt %q", id))
}

// SearchPrompts runs ranked fuzzy search over the prompt catalog.
func (s *Service) SearchPrompts(queryText string) ([]*models.Prompt, error) {
	prompts, err := s.ListPrompts()
	if err != nil {
		return nil, err
	}
	return query.SearchPrompts(prompts, queryText), nil
}

// FilterPrompts applies a plain substring filter and optional category.
func (s *Service) FilterPrompts(queryText, category string) ([]*models.Prompt, error) {
	prompts, err := s.ListPrompts()
	if err != nil {
		return nil, err
	}
	return query.FilterPrompts(query.FilterPromptsByCategory(prompts, category), queryText), nil
}

// SearchPromptsByTags filters prompts with a tag expression, optionally
// combined with ranked text search.
func (s *Service) SearchPromptsByTags(expr *models.TagExpr, textQuery string) ([]*models.Prompt, error) {
	prompts, err := s.ListPrompts()
	if err != nil {
		return nil, err
	}
	results := query.FilterPromptsByTags(prompts, expr)
	if textQuery != "" {
		results = query.SearchPrompts(results, textQuery)
	}
	return results, nil
}

// Categories returns the prompt categories: the curated catalog if one
// exists, otherwise categories derived from the prompts themselves.
func (s *Service) Categories() ([]models.PromptCategory, error) {
	curated, err := s.library.LoadPromptCategories()
	if err != nil {
		return nil, apperrors.ContentError("failed to load categories", err)
	}
	if len(curated) > 0 {
		return curated, nil
	}

	prompts, err := s.ListPrompts()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var categories []models.PromptCategory
	for _, p := range prompts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, models.PromptCategory{ID: p.Category, Label: p.Category})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// AllTags returns every tag in use, sorted and deduplicated.
func (s *Service) AllTags() ([]string, error) {
	prompts, err := s.ListPrompts()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var tags []string
	for _, p := range prompts {
		for _, tag := range p.Tags {
			lower := strings.ToLower(tag)
			if !seen[lower] {
				seen[lower] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// RecommendedPrompts returns the curated home-view prompts, preserving
// catalog listing order. Ids without a matching prompt are skipped.
func (s *Service) RecommendedPrompts() ([]*models.Prompt, error) {
	catalog, err := s.library.LoadRecommended()
	if err != nil {
		return nil, apperrors.ContentError("failed to load recommendations", err)
	}
	return s.promptsByIDs(catalog.Recommended)
}

// CategoryRecommendedPrompts returns the curated highlights for one
// category.
func (s *Service) CategoryRecommendedPrompts(category string) ([]*models.Prompt, error) {
	catalog, err := s.library.LoadRecommended()
	if err != nil {
		return nil, apperrors.ContentError("failed to load recommendations", err)
	}
	return s.promptsByIDs(catalog.ByCategory[category])
}

func (s *Service) promptsByIDs(ids []string) ([]*models.Prompt, error) {
	prompts, err := s.ListPrompts()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Prompt, len(prompts))
	for _, p := range prompts {
		byID[p.ID] = p
	}
	var out []*models.Prompt
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_-]+)\s*\}\}`)

// RenderPrompt substitutes input values into a prompt template. Every
// declared input must be supplied; unknown values are rejected. Using a
// prompt awards the small XP bonus.
func (s *Service) RenderPrompt(id string, values map[string]string) (string, error) {
	prompt, err := s.GetPrompt(id)
	if err != nil {
		return "", err
	}

	declared := make(map[string]bool)
	var missing []string
	for _, key := range prompt.PlaceholderKeys() {
		declared[key] = true
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return "", apperrors.MissingFieldError(strings.Join(missing, ", "))
	}
	for key := range values {
		if !declared[key] {
			return "", apperrors.InvalidInputError(fmt.Sprintf("unknown input %q", key))
		}
	}

	rendered := placeholderPattern.ReplaceAllStringFunc(prompt.Template, func(m string) string {
		key := placeholderPattern.FindStringSubmatch(m)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})

	s.gamification.RecordPromptUse()
	return rendered, nil
}
