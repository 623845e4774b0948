package progress

import (
	"time"

	"go.uber.org/zap"

	"github.com/helixmed/helix-core/internal/models"
	"github.com/helixmed/helix-core/internal/userdata"
)

// XP awarded per action.
const (
	XPLessonComplete = 10
	XPQuizCorrect    = 5
	XPPromptUse      = 2
	XPStreak7Days    = 20
	XPStreak30Days   = 50
)

// Level thresholds: level n is held until totalXP reaches the next
// threshold. Level 5 is the cap.
var levelThresholds = []int{100, 300, 600, 1000}

// LevelForXP returns the level for a total XP amount.
func LevelForXP(totalXP int) int {
	for i, threshold := range levelThresholds {
		if totalXP < threshold {
			return i + 1
		}
	}
	return len(levelThresholds) + 1
}

// XPForNextLevel returns the total XP needed to leave the given level.
// The second return is false at the level cap.
func XPForNextLevel(level int) (int, bool) {
	if level < 1 || level > len(levelThresholds) {
		return 0, false
	}
	return levelThresholds[level-1], true
}

// Gamification applies XP, level, and streak updates to the persisted
// stats record. Counters only ever increase: undoing a lesson does not
// claw back XP.
type Gamification struct {
	data   *userdata.Adapter
	logger *zap.Logger
	now    func() time.Time
}

// NewGamification creates an engine over the user data adapter.
func NewGamification(data *userdata.Adapter, logger *zap.Logger) *Gamification {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gamification{data: data, logger: logger, now: time.Now}
}

// RecordLessonCompletion awards lesson XP, bumps the lesson counter,
// and updates the study streak. Returns the updated stats.
func (g *Gamification) RecordLessonCompletion() models.GamificationStats {
	stats := g.data.GetStats()
	stats.TotalLessonsCompleted++
	return g.award(stats, XPLessonComplete, "lesson")
}

// RecordQuizPass awards quiz XP and bumps the quiz counter.
func (g *Gamification) RecordQuizPass() models.GamificationStats {
	stats := g.data.GetStats()
	stats.TotalQuizzesPassed++
	return g.award(stats, XPQuizCorrect, "quiz")
}

// RecordPromptUse awards the small XP bonus for rendering a prompt.
func (g *Gamification) RecordPromptUse() models.GamificationStats {
	return g.award(g.data.GetStats(), XPPromptUse, "prompt")
}

// Stats returns the current persisted record.
func (g *Gamification) Stats() models.GamificationStats {
	return g.data.GetStats()
}

func (g *Gamification) award(stats models.GamificationStats, xp int, action string) models.GamificationStats {
	today := g.now()
	stats, extended := updateStreak(stats, today)

	stats.TotalXP += xp
	// Milestone bonuses pay out once, on the action that extends the
	// streak to the milestone. Later same-day actions must not re-award.
	if extended {
		switch stats.CurrentStreak {
		case 7:
			stats.TotalXP += XPStreak7Days
		case 30:
			stats.TotalXP += XPStreak30Days
		}
	}

	oldLevel := stats.CurrentLevel
	stats.CurrentLevel = LevelForXP(stats.TotalXP)
	if stats.CurrentLevel > oldLevel {
		g.logger.Info("level up",
			zap.Int("level", stats.CurrentLevel),
			zap.Int("total_xp", stats.TotalXP),
			zap.String("action", action))
	}

	g.data.SetStats(stats)
	return stats
}

// updateStreak advances the daily study streak and reports whether the
// streak value changed. Same-day activity is a no-op; activity on the
// day after the last study extends the streak; any longer gap restarts
// it at 1 while keeping the longest on record.
func updateStreak(stats models.GamificationStats, today time.Time) (models.GamificationStats, bool) {
	todayDay := dateOf(today)

	if stats.LastStudyDate.IsZero() {
		stats.CurrentStreak = 1
		stats.LongestStreak = max(stats.LongestStreak, 1)
		stats.LastStudyDate = todayDay
		return stats, true
	}

	lastDay := dateOf(stats.LastStudyDate)
	switch {
	case lastDay.Equal(todayDay):
		// Already studied today.
		return stats, false
	case lastDay.Equal(todayDay.AddDate(0, 0, -1)):
		stats.CurrentStreak++
		stats.LongestStreak = max(stats.LongestStreak, stats.CurrentStreak)
		stats.LastStudyDate = todayDay
	default:
		stats.CurrentStreak = 1
		stats.LongestStreak = max(stats.LongestStreak, 1)
		stats.LastStudyDate = todayDay
	}
	return stats, true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
