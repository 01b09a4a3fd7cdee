// Package score implements net-score arithmetic for YKS exams: normalising
// raw correct/incorrect entries against a subject's question budget, and
// aggregating per-subject nets into track composites.
//
// Every function in this package is pure. Lifecycle concerns (when results
// are computed or invalidated) live in the sheet package.
package score

import "fmt"

// PenaltyDivisor is the number of incorrect answers that cancel one correct answer.
const PenaltyDivisor = 4

// Field selects one half of a subject's count pair.
type Field int

const (
	Correct Field = iota
	Incorrect
)

// Other returns the sibling field.
func (f Field) Other() Field {
	if f == Correct {
		return Incorrect
	}
	return Correct
}

// String returns the field name.
func (f Field) String() string {
	switch f {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ParseField parses "correct"/"incorrect" (and the Turkish "dogru"/"yanlis").
func ParseField(s string) (Field, error) {
	switch s {
	case "correct", "c", "dogru", "doğru":
		return Correct, nil
	case "incorrect", "i", "yanlis", "yanlış":
		return Incorrect, nil
	}
	return 0, fmt.Errorf("unknown field %q", s)
}

// Count is the user-entered answer tally for one subject.
type Count struct {
	Correct   int `json:"correct" yaml:"correct"`
	Incorrect int `json:"incorrect" yaml:"incorrect"`
}

// IsZero reports whether nothing has been entered for the subject.
func (c Count) IsZero() bool {
	return c.Correct == 0 && c.Incorrect == 0
}

// Get returns the value of a field.
func (c Count) Get(f Field) int {
	if f == Correct {
		return c.Correct
	}
	return c.Incorrect
}

// with returns a copy of c with field f set to n.
func (c Count) with(f Field, n int) Count {
	if f == Correct {
		c.Correct = n
	} else {
		c.Incorrect = n
	}
	return c
}

// SubjectResult is the derived score of one subject.
type SubjectResult struct {
	ID        string  `json:"id" yaml:"id"`
	Correct   int     `json:"correct" yaml:"correct"`
	Incorrect int     `json:"incorrect" yaml:"incorrect"`
	Net       float64 `json:"net" yaml:"net"`
}

// Attempted reports whether the subject had any input.
func (r SubjectResult) Attempted() bool {
	return r.Correct > 0 || r.Incorrect > 0
}

// TrackComposite is the derived score of one track.
type TrackComposite struct {
	ID          string  `json:"id" yaml:"id"`
	Total       float64 `json:"total" yaml:"total"`
	Percentage  float64 `json:"percentage" yaml:"percentage"`
	Denominator float64 `json:"denominator" yaml:"denominator"`

	// Attempted is true when any member subject had input.
	Attempted bool `json:"attempted" yaml:"attempted"`
}

// Aggregate holds every subject result and track composite of one variant,
// in the variant's display order.
type Aggregate struct {
	Variant  string           `json:"variant" yaml:"variant"`
	Subjects []SubjectResult  `json:"subjects" yaml:"subjects"`
	Tracks   []TrackComposite `json:"tracks" yaml:"tracks"`
}

// Subject returns the result for a subject ID.
func (a Aggregate) Subject(id string) (SubjectResult, bool) {
	for _, s := range a.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return SubjectResult{}, false
}

// Track returns the composite for a track ID.
func (a Aggregate) Track(id string) (TrackComposite, bool) {
	for _, t := range a.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return TrackComposite{}, false
}
