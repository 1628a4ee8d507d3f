package grading

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Authored answer keys use a small free-text grammar: alternatives joined
// by the word "or", and inclusive numeric ranges written "min-max".
// Each question type gets its own parsed spec, built once per grading pass.

var orSplit = regexp.MustCompile(`(?i)\s+or\s+`)

// natTolerance is the absolute tolerance for bare numeric values.
const natTolerance = 0.01

type Range struct {
	Min, Max float64
}

// NumericSpec is the parsed form of a NAT answer key.
type NumericSpec struct {
	Values []float64
	Ranges []Range
}

// ChoiceSpec is the parsed form of an MCQ answer key ("A or C" accepts both).
type ChoiceSpec struct {
	Accepted []string // trimmed, upper-cased
}

// MultiSpec is the parsed form of an MSQ answer key: the exact correct set.
type MultiSpec struct {
	Labels []string // normalized and sorted
}

// ParseNumericSpec parses values, ranges and "or" alternatives. Malformed
// parts are dropped; a spec with nothing parseable fails closed (Empty).
func ParseNumericSpec(raw string) NumericSpec {
	var spec NumericSpec
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return spec
	}
	for _, part := range orSplit.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if min, max, ok := parseRange(part); ok {
			spec.Ranges = append(spec.Ranges, Range{Min: min, Max: max})
			continue
		}
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			spec.Values = append(spec.Values, v)
		}
	}
	return spec
}

func (s NumericSpec) Empty() bool {
	return len(s.Values) == 0 && len(s.Ranges) == 0
}

// Effective collapses a parsed submission to one representative number:
// its first bare value, or the midpoint when only a range was given.
func (s NumericSpec) Effective() (float64, bool) {
	if len(s.Values) > 0 {
		return s.Values[0], true
	}
	if len(s.Ranges) > 0 {
		r := s.Ranges[0]
		return (r.Min + r.Max) / 2, true
	}
	return 0, false
}

// Accepts reports whether v matches any accepted value within tolerance or
// falls inside any accepted range (inclusive).
func (s NumericSpec) Accepts(v float64) bool {
	for _, want := range s.Values {
		if abs(v-want) <= natTolerance {
			return true
		}
	}
	for _, r := range s.Ranges {
		if v >= r.Min && v <= r.Max {
			return true
		}
	}
	return false
}

func ParseChoiceSpec(raw string) ChoiceSpec {
	var spec ChoiceSpec
	for _, part := range orSplit.Split(raw, -1) {
		if s := strings.ToUpper(strings.TrimSpace(part)); s != "" {
			spec.Accepted = append(spec.Accepted, s)
		}
	}
	return spec
}

func (s ChoiceSpec) Accepts(label string) bool {
	label = strings.ToUpper(strings.TrimSpace(label))
	for _, a := range s.Accepted {
		if a == label {
			return true
		}
	}
	return false
}

// NewMultiSpec normalizes the correct label set. Duplicates are kept on
// purpose: the comparison is element-wise over the sorted slices.
func NewMultiSpec(labels []string) MultiSpec {
	return MultiSpec{Labels: normalizeLabels(labels)}
}

func (s MultiSpec) Accepts(submitted []string) bool {
	if len(submitted) == 0 {
		return false
	}
	got := normalizeLabels(submitted)
	if len(got) != len(s.Labels) {
		return false
	}
	for i := range got {
		if got[i] != s.Labels[i] {
			return false
		}
	}
	return true
}

// parseRange accepts "min-max" with exactly two non-empty parseable sides
// and min <= max. The hyphen must be interior, so negative singletons like
// "-5" are left to the value parser.
func parseRange(part string) (float64, float64, bool) {
	idx := strings.Index(part, "-")
	if idx <= 0 || idx == len(part)-1 {
		return 0, 0, false
	}
	left := strings.TrimSpace(part[:idx])
	right := strings.TrimSpace(part[idx+1:])
	if left == "" || right == "" {
		return 0, 0, false
	}
	min, err1 := strconv.ParseFloat(left, 64)
	max, err2 := strconv.ParseFloat(right, 64)
	if err1 != nil || err2 != nil || min > max {
		return 0, 0, false
	}
	return min, max, true
}

func normalizeLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.ToUpper(strings.TrimSpace(s)); t != "" {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
