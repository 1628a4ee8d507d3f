package grading

import "testing"

func TestParseNumericSpec(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		values int
		ranges int
	}{
		{name: "single value", raw: "42", values: 1},
		{name: "decimal value", raw: "3.14", values: 1},
		{name: "negative value", raw: "-5", values: 1},
		{name: "range", raw: "10-12", ranges: 1},
		{name: "range with spaces", raw: "10 - 12", ranges: 1},
		{name: "value or range", raw: "3 or 10-12", values: 1, ranges: 1},
		{name: "or case-insensitive", raw: "3 OR 4", values: 2},
		{name: "malformed part dropped", raw: "abc or 7", values: 1},
		{name: "inverted range dropped", raw: "12-10"},
		{name: "fully malformed", raw: "abc"},
		{name: "empty", raw: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := ParseNumericSpec(tc.raw)
			if len(spec.Values) != tc.values {
				t.Fatalf("values: want %d, got %d (%v)", tc.values, len(spec.Values), spec.Values)
			}
			if len(spec.Ranges) != tc.ranges {
				t.Fatalf("ranges: want %d, got %d (%v)", tc.ranges, len(spec.Ranges), spec.Ranges)
			}
		})
	}
}

func TestNumericSpecEffective(t *testing.T) {
	if v, ok := ParseNumericSpec("7 or 10-12").Effective(); !ok || v != 7 {
		t.Fatalf("first value wins: got %v %v", v, ok)
	}
	if v, ok := ParseNumericSpec("10-12").Effective(); !ok || v != 11 {
		t.Fatalf("range collapses to midpoint: got %v %v", v, ok)
	}
	if _, ok := ParseNumericSpec("nope").Effective(); ok {
		t.Fatal("unparseable spec must have no effective value")
	}
}

func TestParseChoiceSpec(t *testing.T) {
	spec := ParseChoiceSpec("a or C")
	if len(spec.Accepted) != 2 || spec.Accepted[0] != "A" || spec.Accepted[1] != "C" {
		t.Fatalf("unexpected accepted set: %v", spec.Accepted)
	}
	if !spec.Accepts(" c ") {
		t.Fatal("trimmed case-insensitive compare expected")
	}
	if spec.Accepts("B") {
		t.Fatal("B is not accepted")
	}
}

func TestMultiSpec(t *testing.T) {
	spec := NewMultiSpec([]string{"c", "A"})
	if !spec.Accepts([]string{"A", "C"}) || !spec.Accepts([]string{"C", "A"}) {
		t.Fatal("order must not matter")
	}
	if spec.Accepts([]string{"A"}) || spec.Accepts([]string{"A", "C", "B"}) {
		t.Fatal("subset and superset must both fail")
	}
	if spec.Accepts(nil) {
		t.Fatal("empty submission is never correct")
	}
}
