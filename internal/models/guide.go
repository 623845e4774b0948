package models

// GuideStep is one step of a long-form guide. Content is a markdown file
// resolved by the storage layer.
type GuideStep struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	ContentPath string `yaml:"content" json:"-"`
}

// Guide is a multi-step long-form article (case report writing, paper
// reading, and so on). Step completion is tracked per user.
type Guide struct {
	ID          string      `yaml:"id" json:"id"`
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description" json:"description"`
	Category    string      `yaml:"category" json:"category"`
	ReadTime    int         `yaml:"read_time" json:"readTime"` // minutes
	Tags        []string    `yaml:"tags,omitempty" json:"tags,omitempty"`
	Steps       []GuideStep `yaml:"steps" json:"steps"`
}

// StepByID returns the step with the given id, or nil.
func (g *Guide) StepByID(id string) *GuideStep {
	for i := range g.Steps {
		if g.Steps[i].ID == id {
			return &g.Steps[i]
		}
	}
	return nil
}
