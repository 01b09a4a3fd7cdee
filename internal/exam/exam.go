// Package exam holds the fixed structure of the supported YKS exam variants:
// the subjects that are scored, their question counts, and the composite
// tracks built from them.
package exam

// Variant IDs of the built-in exams.
const (
	TYT = "tyt"
	AYT = "ayt"
)

// SubjectSpec describes one scored section of an exam.
type SubjectSpec struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	MaxQuestions int    `yaml:"max_questions" json:"max_questions"`
}

// TrackDef describes a composite score: the ordered subjects whose nets are
// summed, and the denominator the sum is normalised against.
type TrackDef struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Members     []string `yaml:"members" json:"members"`
	Denominator float64  `yaml:"denominator" json:"denominator"`
}

// Variant is a complete exam configuration. Variants returned by this package
// are shared and must not be modified.
type Variant struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Title       string `yaml:"title" json:"title,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`

	// HideUnattempted drops subjects and tracks without any input from
	// result listings.
	HideUnattempted bool `yaml:"hide_unattempted" json:"hide_unattempted"`

	Subjects []SubjectSpec `yaml:"subjects" json:"subjects"`
	Tracks   []TrackDef    `yaml:"tracks" json:"tracks"`
}

// Subject returns the subject with the given ID.
func (v *Variant) Subject(id string) (SubjectSpec, bool) {
	for _, s := range v.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return SubjectSpec{}, false
}

// Track returns the track with the given ID.
func (v *Variant) Track(id string) (TrackDef, bool) {
	for _, t := range v.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return TrackDef{}, false
}

// TotalQuestions returns the number of questions across all subjects.
func (v *Variant) TotalQuestions() int {
	total := 0
	for _, s := range v.Subjects {
		total += s.MaxQuestions
	}
	return total
}
