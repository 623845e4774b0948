package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/helixmed/helix-core/internal/errors"
	"github.com/helixmed/helix-core/internal/models"
	"github.com/helixmed/helix-core/internal/progress"
	"github.com/helixmed/helix-core/internal/query"
)

// CourseView is a course joined with its derived completion state.
type CourseView struct {
	models.Course
	Summary   progress.CourseSummary   `json:"summary"`
	Completed *models.CourseCompletion `json:"completedRecord,omitempty"`
}

// ListCourses returns every cataloged course with completion summaries.
func (s *Service) ListCourses() ([]CourseView, error) {
	courses, err := s.library.LoadCourses()
	if err != nil {
		return nil, apperrors.ContentError("failed to load courses", err)
	}

	views := make([]CourseView, 0, len(courses))
	for _, course := range courses {
		views = append(views, CourseView{
			Course:    course,
			Summary:   s.aggregator.CourseSummary(course),
			Completed: s.data.GetCourseCompleted(course.ID),
		})
	}
	return views, nil
}

// GetCourse returns one course with completion state.
func (s *Service) GetCourse(id string) (*CourseView, error) {
	courses, err := s.library.LoadCourses()
	if err != nil {
		return nil, apperrors.ContentError("failed to load courses", err)
	}
	for _, course := range courses {
		if course.ID == id {
			view := CourseView{
				Course:    course,
				Summary:   s.aggregator.CourseSummary(course),
				Completed: s.data.GetCourseCompleted(course.ID),
			}
			return &view, nil
		}
	}
	return nil, apperrors.NotFoundError(fmt.Sprintf("course %q", id))
}

// SectionView groups course views for the learn overview.
type SectionView struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Courses []CourseView `json:"courses"`
}

// CourseSections returns courses grouped into the cataloged overview
// sections, in catalog order. Section entries naming unknown course ids
// are skipped.
func (s *Service) CourseSections() ([]SectionView, error) {
	courses, err := s.ListCourses()
	if err != nil {
		return nil, err
	}
	sections, err := s.library.LoadCourseSections()
	if err != nil {
		return nil, apperrors.ContentError("failed to load course sections", err)
	}

	byID := make(map[string]CourseView, len(courses))
	for _, view := range courses {
		byID[view.ID] = view
	}

	views := make([]SectionView, 0, len(sections))
	for _, section := range sections {
		view := SectionView{ID: section.ID, Title: section.Title}
		for _, id := range section.CourseIDs {
			if course, ok := byID[id]; ok {
				view.Courses = append(view.Courses, course)
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// GettingStarted returns aggregate onboarding progress and the gate
// state, recomputed on every call.
func (s *Service) GettingStarted() (progress.GettingStartedSummary, error) {
	courses, err := s.library.LoadCourses()
	if err != nil {
		return progress.GettingStartedSummary{}, apperrors.ContentError("failed to load courses", err)
	}
	return s.aggregator.GettingStarted(courses), nil
}

// LessonContent returns a lesson's markdown body.
func (s *Service) LessonContent(courseID, lessonID string) (string, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return "", err
	}
	if course.LessonByID(lessonID) == nil {
		return "", apperrors.NotFoundError(fmt.Sprintf("lesson %q", lessonID))
	}
	content, err := s.library.LessonContent(lessonID)
	if err != nil {
		return "", apperrors.ContentError("failed to load lesson", err)
	}
	return content, nil
}

// CompleteLesson marks a lesson done, updates the course record, awards
// XP, and stamps the course completion record when the course finishes.
// Completing an already-complete lesson is a no-op.
func (s *Service) CompleteLesson(courseID, lessonID string) (progress.CourseSummary, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return progress.CourseSummary{}, err
	}
	if course.LessonByID(lessonID) == nil {
		return progress.CourseSummary{}, apperrors.NotFoundError(fmt.Sprintf("lesson %q", lessonID))
	}

	now := time.Now()

	record := s.data.GetCourseProgress(courseID)
	if record == nil {
		record = &models.CourseProgress{}
	}
	if record.Contains(lessonID) {
		return s.aggregator.CourseSummary(course.Course), nil
	}

	record.CompletedLessons = append(record.CompletedLessons, lessonID)
	record.LastUpdated = now
	s.data.SetCourseProgress(courseID, *record)
	s.data.SetLessonProgress(lessonID, models.LessonProgress{Completed: true, CompletedAt: now})

	s.gamification.RecordLessonCompletion()

	summary := s.aggregator.CourseSummary(course.Course)
	if s.aggregator.IsCourseComplete(course.Course) && s.data.GetCourseCompleted(courseID) == nil {
		s.data.SetCourseCompleted(courseID, models.CourseCompletion{
			Completed:     true,
			CompletedDate: now.UTC().Format("2006-01-02"),
			CompletedAt:   now,
		})
		s.logger.Info("course completed",
			zap.String("course", courseID),
			zap.Int("lessons", summary.Available))
	}
	return summary, nil
}

// UncompleteLesson removes a lesson from the course record. Stats and
// XP are not clawed back; the course completion marker stays as a
// historical fact.
func (s *Service) UncompleteLesson(courseID, lessonID string) (progress.CourseSummary, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return progress.CourseSummary{}, err
	}

	record := s.data.GetCourseProgress(courseID)
	if record != nil && record.Contains(lessonID) {
		kept := record.CompletedLessons[:0]
		for _, id := range record.CompletedLessons {
			if id != lessonID {
				kept = append(kept, id)
			}
		}
		record.CompletedLessons = kept
		record.LastUpdated = time.Now()
		s.data.SetCourseProgress(courseID, *record)
	}
	s.data.SetLessonProgress(lessonID, models.LessonProgress{Completed: false})

	return s.aggregator.CourseSummary(course.Course), nil
}

// RecordQuizPass awards quiz XP and bumps the quiz counter.
func (s *Service) RecordQuizPass() models.GamificationStats {
	return s.gamification.RecordQuizPass()
}

// Stats returns the current gamification record.
func (s *Service) Stats() models.GamificationStats {
	return s.gamification.Stats()
}

// GuideView is a guide joined with its derived completion state.
type GuideView struct {
	models.Guide
	Summary progress.CourseSummary `json:"summary"`
}

// ListGuides returns every guide with step completion summaries.
func (s *Service) ListGuides() ([]GuideView, error) {
	guides, err := s.library.LoadGuides()
	if err != nil {
		return nil, apperrors.ContentError("failed to load guides", err)
	}
	views := make([]GuideView, 0, len(guides))
	for _, guide := range guides {
		views = append(views, GuideView{Guide: guide, Summary: s.aggregator.GuideSummary(guide)})
	}
	return views, nil
}

// GetGuide returns one guide with completion state.
func (s *Service) GetGuide(id string) (*GuideView, error) {
	guides, err := s.library.LoadGuides()
	if err != nil {
		return nil, apperrors.ContentError("failed to load guides", err)
	}
	for _, guide := range guides {
		if guide.ID == id {
			view := GuideView{Guide: guide, Summary: s.aggregator.GuideSummary(guide)}
			return &view, nil
		}
	}
	return nil, apperrors.NotFoundError(fmt.Sprintf("guide %q", id))
}

// GuideStepContent returns the markdown body of one guide step.
func (s *Service) GuideStepContent(guideID, stepID string) (string, error) {
	guide, err := s.GetGuide(guideID)
	if err != nil {
		return "", err
	}
	step := guide.StepByID(stepID)
	if step == nil {
		return "", apperrors.NotFoundError(fmt.Sprintf("guide step %q", stepID))
	}
	content, err := s.library.GuideStepContent(*step)
	if err != nil {
		return "", apperrors.ContentError("failed to load guide step", err)
	}
	return content, nil
}

// CompleteGuideStep marks one guide step done. Idempotent.
func (s *Service) CompleteGuideStep(guideID, stepID string) (progress.CourseSummary, error) {
	guide, err := s.GetGuide(guideID)
	if err != nil {
		return progress.CourseSummary{}, err
	}
	if guide.StepByID(stepID) == nil {
		return progress.CourseSummary{}, apperrors.NotFoundError(fmt.Sprintf("guide step %q", stepID))
	}

	steps := s.data.GetGuideProgress(guideID)
	if !steps.Contains(stepID) {
		steps = append(steps, stepID)
		s.data.SetGuideProgress(guideID, steps)
	}
	return s.aggregator.GuideSummary(guide.Guide), nil
}

// ListJournals returns the journal directory.
func (s *Service) ListJournals() ([]models.Journal, error) {
	journals, err := s.library.LoadJournals()
	if err != nil {
		return nil, apperrors.ContentError("failed to load journals", err)
	}
	return journals, nil
}

// QueryJournals applies text filter, category filter, and sort order
// to a journal list. Unknown sort values leave the order unchanged.
func (s *Service) QueryJournals(journals []models.Journal, text, category, sortOrder string) []models.Journal {
	journals = query.FilterJournalsByCategory(journals, category)
	journals = query.FilterJournals(journals, text)
	if sortOrder != "" {
		journals = query.SortJournals(journals, query.SortOrder(sortOrder))
	}
	return journals
}
