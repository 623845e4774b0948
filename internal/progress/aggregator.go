// Package progress derives course completion and onboarding state from
// persisted personalization records. Nothing here is stored: every
// summary is recomputed from the content catalog and the user data
// adapter on each read, so catalog changes (new lessons, pulled
// lessons) are reflected immediately.
package progress

import (
	"math"

	"github.com/helixmed/helix-core/internal/models"
	"github.com/helixmed/helix-core/internal/userdata"
)

// OnboardingCourseIDs are the courses a new user works through before
// the rest of the learning content unlocks.
var OnboardingCourseIDs = []string{"ai-basics", "generative-ai-basics"}

// OnboardingState gates access to non-introductory learning content.
type OnboardingState string

const (
	OnboardingLocked   OnboardingState = "locked"
	OnboardingUnlocked OnboardingState = "unlocked"
)

// ContentChecker reports whether a lesson's content has been authored.
// Cataloged lessons without content never count toward denominators.
type ContentChecker interface {
	HasLessonContent(lessonID string) bool
}

// CourseSummary is the derived completion state of one course.
type CourseSummary struct {
	CourseID   string `json:"courseId"`
	Completed  int    `json:"completed"`
	Available  int    `json:"available"`
	Percentage int    `json:"percentage"`
}

// GettingStartedSummary aggregates the onboarding courses.
type GettingStartedSummary struct {
	Completed  int             `json:"completed"`
	Total      int             `json:"total"`
	Percentage int             `json:"percentage"`
	State      OnboardingState `json:"state"`
}

// Aggregator computes summaries from user data and content availability.
type Aggregator struct {
	data    *userdata.Adapter
	content ContentChecker
}

// NewAggregator creates an aggregator over the given stores.
func NewAggregator(data *userdata.Adapter, content ContentChecker) *Aggregator {
	return &Aggregator{data: data, content: content}
}

// CourseSummary computes the completion state of one course. Only
// lessons with authored content count; completion records for lessons
// no longer in the catalog are ignored, not deleted.
func (a *Aggregator) CourseSummary(course models.Course) CourseSummary {
	available := 0
	completed := 0

	record := a.data.GetCourseProgress(course.ID)
	for _, lesson := range course.Lessons {
		if !a.content.HasLessonContent(lesson.ID) {
			continue
		}
		available++
		if record != nil && record.Contains(lesson.ID) {
			completed++
		}
	}

	return CourseSummary{
		CourseID:   course.ID,
		Completed:  completed,
		Available:  available,
		Percentage: percentage(completed, available),
	}
}

// IsCourseComplete reports whether every available lesson is done. A
// course with no available lessons is never complete.
func (a *Aggregator) IsCourseComplete(course models.Course) bool {
	s := a.CourseSummary(course)
	return s.Available > 0 && s.Completed == s.Available
}

// GettingStarted aggregates progress across the onboarding courses.
// Courses absent from the catalog contribute nothing; with no
// available onboarding lessons at all the gate stays locked.
func (a *Aggregator) GettingStarted(courses []models.Course) GettingStartedSummary {
	total := 0
	completed := 0

	for _, id := range OnboardingCourseIDs {
		for _, course := range courses {
			if course.ID != id {
				continue
			}
			s := a.CourseSummary(course)
			total += s.Available
			completed += s.Completed
		}
	}

	summary := GettingStartedSummary{
		Completed:  completed,
		Total:      total,
		Percentage: percentage(completed, total),
		State:      OnboardingLocked,
	}
	if total > 0 && completed == total {
		summary.State = OnboardingUnlocked
	}
	return summary
}

// GuideSummary computes completion for a step-based guide.
func (a *Aggregator) GuideSummary(guide models.Guide) CourseSummary {
	steps := a.data.GetGuideProgress(guide.ID)
	completed := 0
	for _, step := range guide.Steps {
		if steps.Contains(step.ID) {
			completed++
		}
	}
	return CourseSummary{
		CourseID:   guide.ID,
		Completed:  completed,
		Available:  len(guide.Steps),
		Percentage: percentage(completed, len(guide.Steps)),
	}
}

// percentage rounds half away from zero, matching Math.round.
func percentage(completed, available int) int {
	if available <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(available) * 100))
}
