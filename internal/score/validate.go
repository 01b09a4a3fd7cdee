package score

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseCount reads a raw form value as a non-negative integer. Empty or
// unparsable text reads as 0, as do negative numbers. Like a numeric form
// field, leading digits are honoured and the rest ignored ("12abc" is 12).
func ParseCount(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflowing positives saturate; the caller clamps them anyway.
		if errors.Is(err, strconv.ErrRange) && s[0] != '-' {
			return math.MaxInt
		}
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// ApplyCount returns current with field set from raw, keeping the pair within
// the subject's question budget. The edited field is clamped to [0, max]; if
// the pair then exceeds max, the other field shrinks to fit. current is not
// modified.
func ApplyCount(current Count, field Field, raw string, max int) Count {
	if max < 0 {
		max = 0
	}

	value := ParseCount(raw)
	if value > max {
		value = max
	}

	other := current.Get(field.Other())
	if other < 0 {
		other = 0
	}
	if value+other > max {
		other = max - value
	}

	return current.with(field, value).with(field.Other(), other)
}
