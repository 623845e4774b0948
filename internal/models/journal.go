package models

// JournalRequirements summarizes a journal's manuscript constraints.
type JournalRequirements struct {
	WordCount  string `yaml:"word_count" json:"wordCount"`
	Abstract   string `yaml:"abstract" json:"abstract"`
	Figures    string `yaml:"figures" json:"figures"`
	References string `yaml:"references" json:"references"`
}

// Journal is curated metadata about a medical journal, used by the
// journal finder. A journal can belong to several categories.
type Journal struct {
	ID             string              `yaml:"id" json:"id"`
	Title          string              `yaml:"title" json:"title"`
	Publisher      string              `yaml:"publisher" json:"publisher"`
	ImpactFactor   float64             `yaml:"impact_factor" json:"impactFactor"`
	Categories     []string            `yaml:"categories" json:"categories"`
	AcceptanceRate string              `yaml:"acceptance_rate,omitempty" json:"acceptanceRate,omitempty"`
	ReviewSpeed    string              `yaml:"review_speed,omitempty" json:"reviewSpeed,omitempty"`
	OpenAccess     bool                `yaml:"open_access" json:"openAccess"`
	URL            string              `yaml:"url" json:"url"`
	GuidelinesURL  string              `yaml:"guidelines_url" json:"guidelinesUrl"`
	Requirements   JournalRequirements `yaml:"requirements" json:"requirements"`
}

// InCategory reports whether the journal is listed under the category.
func (j *Journal) InCategory(category string) bool {
	for _, c := range j.Categories {
		if c == category {
			return true
		}
	}
	return false
}
