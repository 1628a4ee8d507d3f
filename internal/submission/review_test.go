package submission

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/designprep/mocktest-server/internal/grading"
)

func TestReconstructOptionStates(t *testing.T) {
	paper := reviewPaper()
	// q2 correct set {A,C}; student picked {A,B}.
	rec, _ := Build(paper, "user-1", map[string]any{"q2": []any{"A", "B"}}, 100)

	views := Reconstruct(paper, rec)
	if len(views) != 3 {
		t.Fatalf("want a view per question, got %d", len(views))
	}

	var q2 QuestionReview
	for _, v := range views {
		if v.QuestionID == "q2" {
			q2 = v
		}
	}
	want := map[string]OptionState{
		"A": StateSelectedCorrect,
		"B": StateSelectedWrong,
		"C": StateCorrectMissed,
		"D": StateNeutral,
	}
	if len(q2.Options) != 4 {
		t.Fatalf("q2 options: %+v", q2.Options)
	}
	for _, ov := range q2.Options {
		if ov.State != want[ov.Label] {
			t.Fatalf("option %s: want %s, got %s", ov.Label, want[ov.Label], ov.State)
		}
	}
}

func TestReconstructNATComparison(t *testing.T) {
	paper := reviewPaper()
	rec, _ := Build(paper, "user-1", map[string]any{"q3": "11.5"}, 100)

	views := Reconstruct(paper, rec)
	q3 := views[2]
	if q3.QuestionID != "q3" {
		t.Fatalf("question numbering must follow paper order: %+v", q3)
	}
	if q3.Number != 3 {
		t.Fatalf("q3 number: %d", q3.Number)
	}
	if q3.SelectedValue != "11.5" || q3.CorrectValue != "10-12" {
		t.Fatalf("NAT comparison: %+v", q3)
	}
	if len(q3.Options) != 0 {
		t.Fatal("NAT review carries no option views")
	}
}

func TestReconstructUnattemptedNeutral(t *testing.T) {
	paper := reviewPaper()
	rec, _ := Build(paper, "user-1", map[string]any{}, 0)

	views := Reconstruct(paper, rec)
	q1 := views[0]
	if q1.Attempted {
		t.Fatal("nothing was attempted")
	}
	for _, ov := range q1.Options {
		if ov.State == StateSelectedCorrect || ov.State == StateSelectedWrong {
			t.Fatalf("no option may show as selected: %+v", ov)
		}
	}
	// The correct option still shows as missed so review stays informative.
	if q1.Options[0].State != StateCorrectMissed {
		t.Fatalf("correct option state: %+v", q1.Options[0])
	}
}

func TestReconstructLegacyPositionalIDs(t *testing.T) {
	paper := reviewPaper()
	// A record written by the old pipeline stored positional labels only.
	rec := Record{
		ExamID: paper.ID,
		Outcomes: []grading.Outcome{
			{QuestionID: "q1", Attempted: true, Correct: true, MarksEarned: 4,
				Selected: []string{"a"}, CorrectLabels: []string{"A"}},
		},
	}
	views := Reconstruct(paper, rec)
	if views[0].Options[0].State != StateSelectedCorrect {
		t.Fatalf("legacy label must resolve: %+v", views[0].Options[0])
	}
}

func TestReconstructIdempotent(t *testing.T) {
	paper := reviewPaper()
	rec, _ := Build(paper, "user-1", map[string]any{"q1": "A", "q2": []any{"C", "A"}, "q3": "11"}, 300)

	a, _ := json.Marshal(Reconstruct(paper, rec))
	b, _ := json.Marshal(Reconstruct(paper, rec))
	if !bytes.Equal(a, b) {
		t.Fatal("reconstruction must be deterministic")
	}
}
