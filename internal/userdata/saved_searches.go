package userdata

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/helixmed/helix-core/internal/models"
)

// SavedSearchStore persists named tag searches through the KV store,
// one record per search. Unlike the Adapter's personalization records,
// saved searches are explicit user actions, so failures surface as
// errors instead of degrading silently.
type SavedSearchStore struct {
	kv  KV
	now func() time.Time
}

// NewSavedSearchStore creates a store over the KV backend.
func NewSavedSearchStore(kv KV) *SavedSearchStore {
	return &SavedSearchStore{kv: kv, now: time.Now}
}

// Save upserts a search under its name. The creation timestamp of an
// existing record with the same name is preserved.
func (s *SavedSearchStore) Save(search models.SavedSearch) error {
	now := s.now().Format(time.RFC3339)
	if existing, err := s.Get(search.Name); err == nil {
		search.CreatedAt = existing.CreatedAt
	} else if search.CreatedAt == "" {
		search.CreatedAt = now
	}
	search.UpdatedAt = now

	data, err := json.Marshal(search)
	if err != nil {
		return fmt.Errorf("failed to encode saved search %s: %w", search.Name, err)
	}
	if err := s.kv.Set(Key(KindSavedSearch, search.Name), string(data)); err != nil {
		return fmt.Errorf("failed to store saved search %s: %w", search.Name, err)
	}
	return nil
}

// Get returns the search stored under name.
func (s *SavedSearchStore) Get(name string) (*models.SavedSearch, error) {
	raw, ok, err := s.kv.Get(Key(KindSavedSearch, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read saved search %s: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("saved search not found: %s", name)
	}
	var search models.SavedSearch
	if err := json.Unmarshal([]byte(raw), &search); err != nil {
		return nil, fmt.Errorf("failed to parse saved search %s: %w", name, err)
	}
	return &search, nil
}

// List returns all saved searches ordered by name.
func (s *SavedSearchStore) List() ([]models.SavedSearch, error) {
	keys, err := s.kv.Keys(string(KindSavedSearch) + "-")
	if err != nil {
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}
	sort.Strings(keys)

	searches := make([]models.SavedSearch, 0, len(keys))
	for _, key := range keys {
		name, ok := KeyID(KindSavedSearch, key)
		if !ok {
			continue
		}
		search, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		searches = append(searches, *search)
	}
	return searches, nil
}

// Delete removes the search stored under name.
func (s *SavedSearchStore) Delete(name string) error {
	if _, err := s.Get(name); err != nil {
		return err
	}
	if err := s.kv.Delete(Key(KindSavedSearch, name)); err != nil {
		return fmt.Errorf("failed to delete saved search %s: %w", name, err)
	}
	return nil
}
