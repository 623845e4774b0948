package models

import "time"

// LessonProgress is the persisted completion record for a single lesson.
type LessonProgress struct {
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completedAt"`
}

// CourseProgress tracks which lessons of a course the user has completed.
// CompletedLessons preserves completion order; entries must be lesson ids
// of the owning course (dangling ids are ignored at read time, not pruned).
type CourseProgress struct {
	CompletedLessons []string  `json:"completedLessons"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// Contains reports whether the lesson id is recorded as completed.
func (cp *CourseProgress) Contains(lessonID string) bool {
	if cp == nil {
		return false
	}
	for _, id := range cp.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// CourseCompletion marks a whole course as finished.
type CourseCompletion struct {
	Completed     bool      `json:"completed"`
	CompletedDate string    `json:"completedDate"`
	CompletedAt   time.Time `json:"completedAt"`
}

// GamificationStats is the aggregate study record. Counters are
// monotone: un-completing a lesson never claws back XP.
type GamificationStats struct {
	TotalXP               int       `json:"totalXP"`
	CurrentLevel          int       `json:"currentLevel"`
	CurrentStreak         int       `json:"currentStreak"`
	LongestStreak         int       `json:"longestStreak"`
	TotalLessonsCompleted int       `json:"totalLessonsCompleted"`
	TotalQuizzesPassed    int       `json:"totalQuizzesPassed"`
	LastStudyDate         time.Time `json:"lastStudyDate"`
}

// GuideProgress is the set of completed step ids for one guide,
// persisted as a JSON array in completion order.
type GuideProgress []string

// Contains reports whether the step id is recorded as completed.
func (gp GuideProgress) Contains(stepID string) bool {
	for _, id := range gp {
		if id == stepID {
			return true
		}
	}
	return false
}
