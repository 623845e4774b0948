package progress

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/helixmed/helix-core/internal/models"
	"github.com/helixmed/helix-core/internal/userdata"
)

// fakeContent reports content as authored for a fixed set of lessons.
type fakeContent map[string]bool

func (f fakeContent) HasLessonContent(lessonID string) bool { return f[lessonID] }

func testCourse(id string, lessonIDs ...string) models.Course {
	c := models.Course{ID: id, Title: id}
	for _, l := range lessonIDs {
		c.Lessons = append(c.Lessons, models.Lesson{ID: l, Title: l})
	}
	return c
}

func TestCourseSummaryCountsOnlyAvailableLessons(t *testing.T) {
	data := userdata.NewAdapter(userdata.NewMemoryKV(), zap.NewNop())
	content := fakeContent{"l1": true, "l2": true} // l3 cataloged but unwritten
	agg := NewAggregator(data, content)

	course := testCourse("ai-basics", "l1", "l2", "l3")
	data.SetCourseProgress("ai-basics", models.CourseProgress{
		CompletedLessons: []string{"l1"},
		LastUpdated:      time.Now(),
	})

	s := agg.CourseSummary(course)
	if s.Available != 2 {
		t.Errorf("Expected 2 available lessons, got %d", s.Available)
	}
	if s.Completed != 1 {
		t.Errorf("Expected 1 completed lesson, got %d", s.Completed)
	}
	if s.Percentage != 50 {
		t.Errorf("Expected 50%%, got %d", s.Percentage)
	}
}

func TestCourseSummaryIgnoresStaleLessonIDs(t *testing.T) {
	data := userdata.NewAdapter(userdata.NewMemoryKV(), zap.NewNop())
	content := fakeContent{"l1": true}
	agg := NewAggregator(data, content)

	// Progress references a lesson that has since left the catalog.
	data.SetCourseProgress("ai-basics", models.CourseProgress{
		CompletedLessons: []string{"l1", "removed-lesson"},
		LastUpdated:      time.Now(),
	})

	s := agg.CourseSummary(testCourse("ai-basics", "l1"))
	if s.Completed != 1 || s.Available != 1 || s.Percentage != 100 {
		t.Errorf("Stale id leaked into summary: %+v", s)
	}
}

func TestCourseSummaryEmptyCourse(t *testing.T) {
	data := userdata.NewAdapter(userdata.NewMemoryKV(), zap.NewNop())
	agg := NewAggregator(data, fakeContent{})

	s := agg.CourseSummary(testCourse("empty", "l1", "l2"))
	if s.Available != 0 || s.Percentage != 0 {
		t.Errorf("Expected zero summary for contentless course, got %+v", s)
	}
	if agg.IsCourseComplete(testCourse("empty", "l1")) {
		t.Error("Course with no available lessons must not be complete")
	}
}

func TestPercentageRounding(t *testing.T) {
	cases := []struct {
		completed, available, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds up
		{3, 3, 100},
	}
	for _, c := range cases {
		if got := percentage(c.completed, c.available); got != c.want {
			t.Errorf("percentage(%d, %d) = %d, want %d", c.completed, c.available, got, c.want)
		}
	}
}

func TestGettingStartedGate(t *testing.T) {
	data := userdata.NewAdapter(userdata.NewMemoryKV(), zap.NewNop())
	content := fakeContent{"a1": true, "a2": true, "g1": true}
	agg := NewAggregator(data, content)

	courses := []models.Course{
		testCourse("ai-basics", "a1", "a2"),
		testCourse("generative-ai-basics", "g1"),
		testCourse("advanced-prompting", "p1"), // not part of onboarding
	}

	s := agg.GettingStarted(courses)
	if s.Total != 3 || s.Completed != 0 || s.State != OnboardingLocked {
		t.Errorf("Expected locked 0/3, got %+v", s)
	}

	data.SetCourseProgress("ai-basics", models.CourseProgress{
		CompletedLessons: []string{"a1", "a2"}, LastUpdated: time.Now(),
	})
	s = agg.GettingStarted(courses)
	if s.Completed != 2 || s.Percentage != 67 || s.State != OnboardingLocked {
		t.Errorf("Expected locked 2/3 at 67%%, got %+v", s)
	}

	data.SetCourseProgress("generative-ai-basics", models.CourseProgress{
		CompletedLessons: []string{"g1"}, LastUpdated: time.Now(),
	})
	s = agg.GettingStarted(courses)
	if s.State != OnboardingUnlocked || s.Percentage != 100 {
		t.Errorf("Expected unlocked at 100%%, got %+v", s)
	}

	// A newly authored onboarding lesson re-locks the gate on the next read.
	courses[1] = testCourse("generative-ai-basics", "g1", "g2")
	content["g2"] = true
	s = agg.GettingStarted(courses)
	if s.State != OnboardingLocked || s.Completed != 3 || s.Total != 4 {
		t.Errorf("Expected re-locked 3/4, got %+v", s)
	}
}

func TestGettingStartedNoContentStaysLocked(t *testing.T) {
	data := userdata.NewAdapter(userdata.NewMemoryKV(), zap.NewNop())
	agg := NewAggregator(data, fakeContent{})

	s := agg.GettingStarted([]models.Course{testCourse("ai-basics", "a1")})
	if s.State != OnboardingLocked || s.Percentage != 0 {
		t.Errorf("Expected locked gate with no content, got %+v", s)
	}
}

func TestGuideSummary(t *testing.T) {
	data := userdata.NewAdapter(userdata.NewMemoryKV(), zap.NewNop())
	agg := NewAggregator(data, fakeContent{})

	guide := models.Guide{
		ID: "marw",
		Steps: []models.GuideStep{
			{ID: "step-1"}, {ID: "step-2"}, {ID: "step-3"},
		},
	}
	data.SetGuideProgress("marw", models.GuideProgress{"step-1", "step-3"})

	s := agg.GuideSummary(guide)
	if s.Completed != 2 || s.Available != 3 || s.Percentage != 67 {
		t.Errorf("Unexpected guide summary: %+v", s)
	}
}
