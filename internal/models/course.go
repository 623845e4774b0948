package models

// Lesson is one unit of a course. Content availability is a storage
// concern: a lesson may be cataloged before its markdown is authored.
type Lesson struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Duration    int    `yaml:"duration" json:"duration"` // minutes
	Slides      int    `yaml:"slides" json:"slides"`
}

// Course is an ordered sequence of lessons plus display metadata.
type Course struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Level       int      `yaml:"level" json:"level"`
	XPReward    int      `yaml:"xp_reward" json:"xpReward"`
	Badge       string   `yaml:"badge" json:"badge"`
	Locked      bool     `yaml:"locked" json:"locked"`
	Lessons     []Lesson `yaml:"lessons" json:"lessons"`
}

// LessonByID returns the lesson with the given id, or nil.
func (c *Course) LessonByID(id string) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].ID == id {
			return &c.Lessons[i]
		}
	}
	return nil
}

// CourseSection groups courses for the learn overview. Sections refer
// to courses by id; assembly happens at read time.
type CourseSection struct {
	ID        string   `yaml:"id" json:"id"`
	Title     string   `yaml:"title" json:"title"`
	CourseIDs []string `yaml:"courses" json:"courses"`
}
