package service

import (
	"github.com/helixmed/helix-core/internal/models"
)

// ToggleFavorite adds the prompt id to the favorites list or removes
// it if already present. Returns true when the prompt is a favorite
// after the call. Unknown ids are accepted; the join drops them.
func (s *Service) ToggleFavorite(promptID string) bool {
	favorites := s.data.GetFavorites()
	kept := make([]string, 0, len(favorites)+1)
	removed := false
	for _, id := range favorites {
		if id == promptID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		kept = append(kept, promptID)
	}
	s.data.SetFavorites(kept)
	return !removed
}

// IsFavorite reports whether the prompt id is currently favorited.
func (s *Service) IsFavorite(promptID string) bool {
	for _, id := range s.data.GetFavorites() {
		if id == promptID {
			return true
		}
	}
	return false
}

// FavoriteIDs returns the raw favorites list in insertion order.
func (s *Service) FavoriteIDs() []string {
	return s.data.GetFavorites()
}

// FavoritePrompts joins the favorites list against the prompt catalog,
// preserving insertion order. Ids with no matching prompt are skipped
// but stay stored: a prompt pulled from the catalog comes back as a
// favorite if it returns.
func (s *Service) FavoritePrompts() ([]*models.Prompt, error) {
	return s.promptsByIDs(s.data.GetFavorites())
}
