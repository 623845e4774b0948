package models

import (
	"strings"
	"time"
)

// RiskLevel classifies how carefully a prompt's output must be reviewed
// before it touches patient care.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether the risk level is one of the known values.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// InputType describes how a prompt input should be collected.
type InputType string

const (
	InputText     InputType = "text"
	InputTextarea InputType = "textarea"
	InputSelect   InputType = "select"
)

// PromptInput is one fillable field of a prompt template. Inputs are
// ordered; Key matches a {{key}} placeholder in the template body.
type PromptInput struct {
	Key         string    `yaml:"key" json:"key"`
	Label       string    `yaml:"label" json:"label"`
	Placeholder string    `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Type        InputType `yaml:"type" json:"type"`
	Options     []string  `yaml:"options,omitempty" json:"options,omitempty"`
}

// Prompt is a curated AI-instruction template with YAML frontmatter and a
// markdown template body. Prompts are immutable after load.
type Prompt struct {
	// Frontmatter fields
	ID             string        `yaml:"id" json:"id"`
	Title          string        `yaml:"title" json:"title"`
	Description    string        `yaml:"description" json:"description"`
	Category       string        `yaml:"category" json:"category"`
	Tags           []string      `yaml:"tags,omitempty" json:"tags,omitempty"`
	Inputs         []PromptInput `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Example        string        `yaml:"example,omitempty" json:"example,omitempty"`
	RiskLevel      RiskLevel     `yaml:"risk_level,omitempty" json:"riskLevel,omitempty"`
	WarningMessage string        `yaml:"warning_message,omitempty" json:"warningMessage,omitempty"`
	CreatedAt      time.Time     `yaml:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      time.Time     `yaml:"updated_at,omitempty" json:"updatedAt,omitempty"`

	// Content fields
	Template    string `yaml:"-" json:"template"` // markdown body after frontmatter
	FilePath    string `yaml:"-" json:"-"`
	ContentHash string `yaml:"-" json:"-"`
}

// HasTag reports whether the prompt carries the given tag (case-insensitive).
func (p *Prompt) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// PlaceholderKeys returns the input keys in declaration order.
func (p *Prompt) PlaceholderKeys() []string {
	keys := make([]string, 0, len(p.Inputs))
	for _, in := range p.Inputs {
		keys = append(keys, in.Key)
	}
	return keys
}

// PromptCategory describes one of the fixed content categories.
type PromptCategory struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
}
