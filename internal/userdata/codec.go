package userdata

import (
	"fmt"
	"strconv"
	"time"

	"github.com/helixmed/helix-core/internal/models"
)

// Fast-path serializers for the handful of record shapes written on
// every interaction. Each encoder emits exactly the bytes encoding/json
// would produce for the same value, but without reflection. A string
// that would need JSON escaping makes the fast path bail with
// errNeedsEscape; the adapter then falls back to the generic encoder.
// Content ids are plain ASCII slugs, so the fast path covers the hot
// writes (favorites, progress toggles) while anything unusual still
// round-trips correctly through encoding/json.

var errNeedsEscape = fmt.Errorf("string requires JSON escaping")

// appendPlainString appends s as a JSON string, failing if any byte
// would require escaping. The excluded set matches what encoding/json
// escapes: control bytes, quote, backslash, and the HTML-escaped
// characters < > &. Non-ASCII bytes also bail, which sidesteps the
// U+2028/U+2029 special cases.
func appendPlainString(b []byte, s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c > 0x7e || c == '"' || c == '\\' || c == '<' || c == '>' || c == '&' {
			return nil, errNeedsEscape
		}
	}
	b = append(b, '"')
	b = append(b, s...)
	return append(b, '"'), nil
}

// appendTime appends t as a quoted RFC 3339 timestamp, the same form
// time.Time.MarshalJSON produces.
func appendTime(b []byte, t time.Time) []byte {
	b = append(b, '"')
	b = t.AppendFormat(b, time.RFC3339Nano)
	return append(b, '"')
}

// appendStringSlice appends ids as a JSON array. A nil slice encodes as
// null, matching encoding/json.
func appendStringSlice(b []byte, ids []string) ([]byte, error) {
	if ids == nil {
		return append(b, "null"...), nil
	}
	b = append(b, '[')
	var err error
	for i, id := range ids {
		if i > 0 {
			b = append(b, ',')
		}
		if b, err = appendPlainString(b, id); err != nil {
			return nil, err
		}
	}
	return append(b, ']'), nil
}

// encodeFavorites encodes a favorites (or guide progress) id list.
func encodeFavorites(ids []string) ([]byte, error) {
	return appendStringSlice(make([]byte, 0, 16+16*len(ids)), ids)
}

// encodeLessonProgress encodes a per-lesson completion record.
func encodeLessonProgress(p models.LessonProgress) ([]byte, error) {
	b := make([]byte, 0, 80)
	b = append(b, `{"completed":`...)
	b = strconv.AppendBool(b, p.Completed)
	b = append(b, `,"completedAt":`...)
	b = appendTime(b, p.CompletedAt)
	return append(b, '}'), nil
}

// encodeCourseProgress encodes a per-course completion record.
func encodeCourseProgress(p models.CourseProgress) ([]byte, error) {
	b := make([]byte, 0, 64+16*len(p.CompletedLessons))
	b = append(b, `{"completedLessons":`...)
	var err error
	if b, err = appendStringSlice(b, p.CompletedLessons); err != nil {
		return nil, err
	}
	b = append(b, `,"lastUpdated":`...)
	b = appendTime(b, p.LastUpdated)
	return append(b, '}'), nil
}

// encodeCourseCompletion encodes a whole-course completion marker.
func encodeCourseCompletion(c models.CourseCompletion) ([]byte, error) {
	b := make([]byte, 0, 112)
	b = append(b, `{"completed":`...)
	b = strconv.AppendBool(b, c.Completed)
	b = append(b, `,"completedDate":`...)
	var err error
	if b, err = appendPlainString(b, c.CompletedDate); err != nil {
		return nil, err
	}
	b = append(b, `,"completedAt":`...)
	b = appendTime(b, c.CompletedAt)
	return append(b, '}'), nil
}

// encodeStats encodes the aggregate gamification record.
func encodeStats(s models.GamificationStats) ([]byte, error) {
	b := make([]byte, 0, 192)
	b = append(b, `{"totalXP":`...)
	b = strconv.AppendInt(b, int64(s.TotalXP), 10)
	b = append(b, `,"currentLevel":`...)
	b = strconv.AppendInt(b, int64(s.CurrentLevel), 10)
	b = append(b, `,"currentStreak":`...)
	b = strconv.AppendInt(b, int64(s.CurrentStreak), 10)
	b = append(b, `,"longestStreak":`...)
	b = strconv.AppendInt(b, int64(s.LongestStreak), 10)
	b = append(b, `,"totalLessonsCompleted":`...)
	b = strconv.AppendInt(b, int64(s.TotalLessonsCompleted), 10)
	b = append(b, `,"totalQuizzesPassed":`...)
	b = strconv.AppendInt(b, int64(s.TotalQuizzesPassed), 10)
	b = append(b, `,"lastStudyDate":`...)
	b = appendTime(b, s.LastStudyDate)
	return append(b, '}'), nil
}
