package userdata

import "strings"

// Kind identifies a class of persisted personalization records. The key
// layout below is stable storage format; changing a template is a data
// migration.
type Kind string

const (
	KindFavorites       Kind = "favorites"
	KindLessonProgress  Kind = "lesson-progress"
	KindCourseProgress  Kind = "course-progress"
	KindCourseCompleted Kind = "course-completed"
	KindStats           Kind = "gamification-stats"
	KindGuideProgress   Kind = "guide-progress"
	KindSavedSearch     Kind = "saved-search"
)

// Key builds the storage key for a kind and id. Singleton kinds
// (favorites, stats) ignore the id.
func Key(kind Kind, id string) string {
	switch kind {
	case KindFavorites, KindStats:
		return string(kind)
	default:
		return string(kind) + "-" + id
	}
}

// KeyID extracts the record id from a storage key of the given kind.
// Returns false if the key does not belong to the kind.
func KeyID(kind Kind, key string) (string, bool) {
	prefix := string(kind) + "-"
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	return key[len(prefix):], true
}
