package score

import "github.com/nethesap/nethesap/internal/exam"

// Net returns correct − incorrect/4 without rounding.
func Net(c Count) float64 {
	return float64(c.Correct) - float64(c.Incorrect)/PenaltyDivisor
}

// ComputeSubjectResult derives the result of one subject.
func ComputeSubjectResult(id string, c Count) SubjectResult {
	return SubjectResult{
		ID:        id,
		Correct:   c.Correct,
		Incorrect: c.Incorrect,
		Net:       Net(c),
	}
}

// ComputeTrack sums the nets of members and normalises the sum against
// denominator. Members missing from results contribute nothing. A
// non-positive denominator yields a zero percentage.
func ComputeTrack(results map[string]SubjectResult, members []string, denominator float64) TrackComposite {
	tc := TrackComposite{Denominator: denominator}
	for _, m := range members {
		r, ok := results[m]
		if !ok {
			continue
		}
		tc.Total += r.Net
		if r.Attempted() {
			tc.Attempted = true
		}
	}
	if denominator > 0 {
		tc.Percentage = tc.Total / denominator * 100
	}
	return tc
}

// ComputeAll computes every subject result and track composite of v.
// Subjects absent from counts are scored as {0, 0}.
func ComputeAll(v *exam.Variant, counts map[string]Count) Aggregate {
	agg := Aggregate{
		Variant:  v.ID,
		Subjects: make([]SubjectResult, 0, len(v.Subjects)),
		Tracks:   make([]TrackComposite, 0, len(v.Tracks)),
	}

	byID := make(map[string]SubjectResult, len(v.Subjects))
	for _, s := range v.Subjects {
		r := ComputeSubjectResult(s.ID, counts[s.ID])
		agg.Subjects = append(agg.Subjects, r)
		byID[s.ID] = r
	}

	for _, t := range v.Tracks {
		tc := ComputeTrack(byID, t.Members, t.Denominator)
		tc.ID = t.ID
		agg.Tracks = append(agg.Tracks, tc)
	}
	return agg
}

// HasAnyInput reports whether any subject has a nonzero count.
func HasAnyInput(counts map[string]Count) bool {
	for _, c := range counts {
		if !c.IsZero() {
			return true
		}
	}
	return false
}
