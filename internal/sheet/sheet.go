// Package sheet owns the per-variant score entry state: the counts a user
// has typed and the aggregate computed from them.
package sheet

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/score"
)

// ErrUnknownSubject is returned when an edit names a subject the variant lacks.
var ErrUnknownSubject = errors.New("unknown subject")

// State is the lifecycle state of a sheet's aggregate.
type State int

const (
	StateEmpty    State = iota // No trustworthy result
	StateComputed              // Result reflects the current counts
)

// String returns the state name.
func (s State) String() string {
	if s == StateComputed {
		return "computed"
	}
	return "empty"
}

// Result is a computed aggregate stamped with an ID and computation time.
type Result struct {
	ID         string
	ComputedAt time.Time
	score.Aggregate
}

// Sheet tracks counts for one exam variant. It is not safe for concurrent
// use; the UI event loop owns it.
type Sheet struct {
	variant *exam.Variant
	counts  map[string]score.Count
	result  *Result

	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithLogger sets the logger used for lifecycle transitions.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sheet) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(s *Sheet) { s.now = now }
}

// WithIDGenerator overrides the result ID generator.
func WithIDGenerator(f func() string) Option {
	return func(s *Sheet) { s.newID = f }
}

// New creates an empty sheet for v with every count at zero.
func New(v *exam.Variant, opts ...Option) *Sheet {
	s := &Sheet{
		variant: v,
		counts:  make(map[string]score.Count, len(v.Subjects)),
		logger:  zap.NewNop(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	s.resetCounts()
	return s
}

// Variant returns the exam variant this sheet scores.
func (s *Sheet) Variant() *exam.Variant {
	return s.variant
}

// State returns the aggregate lifecycle state.
func (s *Sheet) State() State {
	if s.result != nil {
		return StateComputed
	}
	return StateEmpty
}

// Result returns the computed result, or nil while the sheet is empty.
func (s *Sheet) Result() *Result {
	return s.result
}

// Count returns the current count of a subject.
func (s *Sheet) Count(subjectID string) score.Count {
	return s.counts[subjectID]
}

// Counts returns a copy of every subject's count.
func (s *Sheet) Counts() map[string]score.Count {
	out := make(map[string]score.Count, len(s.counts))
	for id, c := range s.counts {
		out[id] = c
	}
	return out
}

// HasAnyInput reports whether any subject has a nonzero count.
func (s *Sheet) HasAnyInput() bool {
	return score.HasAnyInput(s.counts)
}

// Edit applies raw text to one field of a subject, keeping the pair within
// the subject's question budget, and returns the new pair. Any edit
// invalidates a computed result.
func (s *Sheet) Edit(subjectID string, field score.Field, raw string) (score.Count, error) {
	sub, ok := s.variant.Subject(subjectID)
	if !ok {
		return score.Count{}, fmt.Errorf("%w %q in exam %q", ErrUnknownSubject, subjectID, s.variant.ID)
	}

	before := s.counts[subjectID]
	after := score.ApplyCount(before, field, raw, sub.MaxQuestions)
	s.counts[subjectID] = after

	if after.Get(field.Other()) != before.Get(field.Other()) {
		s.logger.Debug("sibling count reduced to fit question budget",
			zap.String("subject", subjectID),
			zap.Stringer("field", field.Other()),
			zap.Int("from", before.Get(field.Other())),
			zap.Int("to", after.Get(field.Other())))
	}
	s.invalidate("edit")
	return after, nil
}

// Set replaces a subject's count, routing both fields through Edit so the
// same clamping applies as for typed input.
func (s *Sheet) Set(subjectID string, c score.Count) (score.Count, error) {
	if _, err := s.Edit(subjectID, score.Correct, fmt.Sprint(c.Correct)); err != nil {
		return score.Count{}, err
	}
	return s.Edit(subjectID, score.Incorrect, fmt.Sprint(c.Incorrect))
}

// Compute aggregates the current counts. It is a no-op returning false when
// every count is zero.
func (s *Sheet) Compute() bool {
	if !s.HasAnyInput() {
		s.logger.Debug("compute skipped: no input", zap.String("exam", s.variant.ID))
		return false
	}

	s.result = &Result{
		ID:         s.newID(),
		ComputedAt: s.now(),
		Aggregate:  score.ComputeAll(s.variant, s.counts),
	}
	s.logger.Debug("aggregate computed",
		zap.String("exam", s.variant.ID),
		zap.String("result_id", s.result.ID))
	return true
}

// Clear resets every count to zero and discards any result.
func (s *Sheet) Clear() {
	s.resetCounts()
	s.invalidate("clear")
}

func (s *Sheet) resetCounts() {
	for _, sub := range s.variant.Subjects {
		s.counts[sub.ID] = score.Count{}
	}
}

func (s *Sheet) invalidate(reason string) {
	if s.result == nil {
		return
	}
	s.logger.Debug("aggregate invalidated",
		zap.String("exam", s.variant.ID),
		zap.String("result_id", s.result.ID),
		zap.String("reason", reason))
	s.result = nil
}
