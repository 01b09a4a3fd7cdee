package score

import (
	"fmt"
	"testing"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"0", 0},
		{"7", 7},
		{" 12 ", 12},
		{"+5", 5},
		{"-3", 0},
		{"-", 0},
		{"abc", 0},
		{"12abc", 12},
		{"3.9", 3},
		{"007", 7},
		{"99999999999999999999999", int(^uint(0) >> 1)},
		{"-99999999999999999999999", 0},
	}

	for _, tt := range tests {
		if got := ParseCount(tt.raw); got != tt.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestApplyCount(t *testing.T) {
	tests := []struct {
		name    string
		current Count
		field   Field
		raw     string
		max     int
		want    Count
	}{
		{"simple correct", Count{}, Correct, "12", 40, Count{12, 0}},
		{"simple incorrect", Count{12, 0}, Incorrect, "5", 40, Count{12, 5}},
		{"clamp edited to max", Count{}, Correct, "55", 40, Count{40, 0}},
		{"shrink other incorrect", Count{10, 25}, Correct, "30", 40, Count{30, 10}},
		{"shrink other correct", Count{35, 0}, Incorrect, "10", 40, Count{30, 10}},
		{"edited at max zeroes other", Count{5, 5}, Incorrect, "14", 14, Count{0, 14}},
		{"exact fit untouched", Count{20, 0}, Incorrect, "20", 40, Count{20, 20}},
		{"empty becomes zero", Count{8, 3}, Correct, "", 40, Count{0, 3}},
		{"garbage becomes zero", Count{8, 3}, Incorrect, "x", 40, Count{8, 0}},
		{"negative becomes zero", Count{8, 3}, Incorrect, "-2", 40, Count{8, 0}},
		{"zero max", Count{}, Correct, "3", 0, Count{0, 0}},
		{"negative max", Count{}, Correct, "3", -1, Count{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCount(tt.current, tt.field, tt.raw, tt.max)
			if got != tt.want {
				t.Errorf("ApplyCount(%+v, %s, %q, %d) = %+v, want %+v",
					tt.current, tt.field, tt.raw, tt.max, got, tt.want)
			}
		})
	}
}

func TestApplyCountDoesNotMutateInput(t *testing.T) {
	current := Count{Correct: 10, Incorrect: 30}
	_ = ApplyCount(current, Correct, "40", 40)
	if current != (Count{Correct: 10, Incorrect: 30}) {
		t.Errorf("input was modified: %+v", current)
	}
}

func TestApplyCountKeepsPairInBudget(t *testing.T) {
	for max := 0; max <= 20; max++ {
		for correct := 0; correct <= max; correct++ {
			for incorrect := 0; correct+incorrect <= max; incorrect++ {
				start := Count{Correct: correct, Incorrect: incorrect}
				for a := -2; a <= max+5; a++ {
					for _, f := range []Field{Correct, Incorrect} {
						got := ApplyCount(start, f, fmt.Sprint(a), max)
						if got.Correct < 0 || got.Incorrect < 0 {
							t.Fatalf("negative field: ApplyCount(%+v, %s, %d, %d) = %+v", start, f, a, max, got)
						}
						if got.Correct+got.Incorrect > max {
							t.Fatalf("over budget: ApplyCount(%+v, %s, %d, %d) = %+v", start, f, a, max, got)
						}
					}
				}
			}
		}
	}
}

func TestApplyCountEmptyEqualsZero(t *testing.T) {
	starts := []Count{{}, {5, 5}, {40, 0}, {0, 40}, {12, 7}}
	for _, start := range starts {
		for _, f := range []Field{Correct, Incorrect} {
			empty := ApplyCount(start, f, "", 40)
			zero := ApplyCount(start, f, "0", 40)
			if empty != zero {
				t.Errorf("start %+v field %s: empty %+v != zero %+v", start, f, empty, zero)
			}
		}
	}
}

func TestFieldOther(t *testing.T) {
	if Correct.Other() != Incorrect || Incorrect.Other() != Correct {
		t.Error("Other() should swap fields")
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{"correct", Correct, false},
		{"doğru", Correct, false},
		{"incorrect", Incorrect, false},
		{"yanlis", Incorrect, false},
		{"blank", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseField(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseField(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
