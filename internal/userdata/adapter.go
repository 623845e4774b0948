package userdata

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/helixmed/helix-core/internal/models"
)

// Adapter exposes typed read/write operations over a KV store. Writes
// try the fast-path encoder first and degrade to encoding/json; reads
// that hit missing or unparsable data return safe defaults. Neither
// path surfaces an error to the caller: availability wins over strict
// integrity for personalization state.
type Adapter struct {
	kv     KV
	logger *zap.Logger
}

// NewAdapter wraps a KV store. A nil logger disables logging.
func NewAdapter(kv KV, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{kv: kv, logger: logger}
}

// write persists encoded bytes, falling back to the generic encoder
// when the fast path bailed. Storage failures are logged and swallowed.
func (a *Adapter) write(key string, fast []byte, fastErr error, value interface{}) {
	data := fast
	if fastErr != nil {
		a.logger.Debug("fast-path encode bailed, using generic encoder",
			zap.String("key", key), zap.Error(fastErr))
		generic, err := json.Marshal(value)
		if err != nil {
			a.logger.Error("failed to encode user data", zap.String("key", key), zap.Error(err))
			return
		}
		data = generic
	}
	if err := a.kv.Set(key, string(data)); err != nil {
		a.logger.Warn("failed to persist user data", zap.String("key", key), zap.Error(err))
	}
}

// read fetches and decodes a record into out. Returns false when the
// key is absent or the stored value cannot be parsed.
func (a *Adapter) read(key string, out interface{}) bool {
	raw, ok, err := a.kv.Get(key)
	if err != nil {
		a.logger.Warn("failed to read user data", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		a.logger.Warn("discarding unparsable user data", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetFavorites overwrites the full favorites list, preserving order.
func (a *Adapter) SetFavorites(ids []string) {
	data, err := encodeFavorites(ids)
	a.write(Key(KindFavorites, ""), data, err, ids)
}

// GetFavorites returns the stored favorites in insertion order, or an
// empty list when nothing valid is stored.
func (a *Adapter) GetFavorites() []string {
	var ids []string
	if !a.read(Key(KindFavorites, ""), &ids) || ids == nil {
		return []string{}
	}
	return ids
}

// SetLessonProgress stores the completion record for one lesson.
func (a *Adapter) SetLessonProgress(lessonID string, p models.LessonProgress) {
	data, err := encodeLessonProgress(p)
	a.write(Key(KindLessonProgress, lessonID), data, err, p)
}

// GetLessonProgress returns the lesson record, or nil when absent.
func (a *Adapter) GetLessonProgress(lessonID string) *models.LessonProgress {
	var p models.LessonProgress
	if !a.read(Key(KindLessonProgress, lessonID), &p) {
		return nil
	}
	return &p
}

// SetCourseProgress stores the per-course completed lesson set.
func (a *Adapter) SetCourseProgress(courseID string, p models.CourseProgress) {
	data, err := encodeCourseProgress(p)
	a.write(Key(KindCourseProgress, courseID), data, err, p)
}

// GetCourseProgress returns the course record, or nil when absent.
func (a *Adapter) GetCourseProgress(courseID string) *models.CourseProgress {
	var p models.CourseProgress
	if !a.read(Key(KindCourseProgress, courseID), &p) {
		return nil
	}
	return &p
}

// SetCourseCompleted marks a whole course finished.
func (a *Adapter) SetCourseCompleted(courseID string, c models.CourseCompletion) {
	data, err := encodeCourseCompletion(c)
	a.write(Key(KindCourseCompleted, courseID), data, err, c)
}

// GetCourseCompleted returns the completion marker, or nil when absent.
func (a *Adapter) GetCourseCompleted(courseID string) *models.CourseCompletion {
	var c models.CourseCompletion
	if !a.read(Key(KindCourseCompleted, courseID), &c) {
		return nil
	}
	return &c
}

// SetStats stores the aggregate gamification record.
func (a *Adapter) SetStats(s models.GamificationStats) {
	data, err := encodeStats(s)
	a.write(Key(KindStats, ""), data, err, s)
}

// GetStats returns the stored stats, or a zero record at level 1.
func (a *Adapter) GetStats() models.GamificationStats {
	var s models.GamificationStats
	if !a.read(Key(KindStats, ""), &s) {
		return models.GamificationStats{CurrentLevel: 1}
	}
	return s
}

// SetGuideProgress stores the completed step ids for one guide.
func (a *Adapter) SetGuideProgress(guideID string, steps models.GuideProgress) {
	data, err := encodeFavorites(steps)
	a.write(Key(KindGuideProgress, guideID), data, err, steps)
}

// GetGuideProgress returns the completed step ids, empty when absent.
func (a *Adapter) GetGuideProgress(guideID string) models.GuideProgress {
	var steps models.GuideProgress
	if !a.read(Key(KindGuideProgress, guideID), &steps) || steps == nil {
		return models.GuideProgress{}
	}
	return steps
}
