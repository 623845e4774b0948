package service

import (
	apperrors "github.com/helixmed/helix-core/internal/errors"
	"github.com/helixmed/helix-core/internal/models"
)

// SaveSearch stores a named tag search, replacing any with the same name.
func (s *Service) SaveSearch(search models.SavedSearch) error {
	if search.Name == "" {
		return apperrors.ValidationError("saved search needs a name")
	}
	if err := s.savedSearches.Save(search); err != nil {
		return apperrors.StorageError("failed to save search", err)
	}
	return nil
}

// ListSavedSearches returns all saved searches.
func (s *Service) ListSavedSearches() ([]models.SavedSearch, error) {
	searches, err := s.savedSearches.List()
	if err != nil {
		return nil, apperrors.StorageError("failed to load saved searches", err)
	}
	return searches, nil
}

// DeleteSavedSearch removes a saved search by name.
func (s *Service) DeleteSavedSearch(name string) error {
	if err := s.savedSearches.Delete(name); err != nil {
		return apperrors.NotFoundError("saved search " + name)
	}
	return nil
}

// ExecuteSavedSearch runs a saved search. A non-empty textOverride
// replaces the stored text query for this execution only.
func (s *Service) ExecuteSavedSearch(name, textOverride string) ([]*models.Prompt, error) {
	search, err := s.savedSearches.Get(name)
	if err != nil {
		return nil, apperrors.NotFoundError("saved search " + name)
	}

	textQuery := search.TextQuery
	if textOverride != "" {
		textQuery = textOverride
	}
	return s.SearchPromptsByTags(search.Expression, textQuery)
}
