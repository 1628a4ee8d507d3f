package grading

import (
	"reflect"
	"testing"

	"github.com/designprep/mocktest-server/internal/exam"
)

func mcqQuestion() exam.Question {
	q := exam.Question{
		ID:   "q1",
		Type: exam.TypeMCQ,
		Options: []exam.Option{
			{TextHTML: "first", IsCorrect: true},
			{TextHTML: "second"},
			{TextHTML: "third"},
		},
		AnswerKey:     []string{"A"},
		Marks:         4,
		NegativeMarks: 1,
	}
	exam.NormalizeQuestion(&q)
	return q
}

func TestGradeQuestionAttempted(t *testing.T) {
	q := mcqQuestion()

	tests := []struct {
		name    string
		resp    any
		present bool
		att     bool
		correct bool
		marks   float64
	}{
		{name: "correct", resp: "A", present: true, att: true, correct: true, marks: 4},
		{name: "wrong", resp: "B", present: true, att: true, marks: -1},
		{name: "missing key", present: false},
		{name: "empty string", resp: "", present: true},
		{name: "garbage still attempted", resp: "Z", present: true, att: true, marks: -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := GradeQuestion(q, tc.resp, tc.present)
			if out.Attempted != tc.att || out.Correct != tc.correct || out.MarksEarned != tc.marks {
				t.Fatalf("got attempted=%v correct=%v marks=%v", out.Attempted, out.Correct, out.MarksEarned)
			}
		})
	}
}

func TestGradeQuestionMSQEmptyArrayNotAttempted(t *testing.T) {
	q := exam.Question{ID: "q2", Type: exam.TypeMSQ, AnswerKey: []string{"A", "C"}, Marks: 4, NegativeMarks: 2}
	exam.NormalizeQuestion(&q)

	out := GradeQuestion(q, []any{}, true)
	if out.Attempted || out.MarksEarned != 0 {
		t.Fatalf("empty array must not attract negative marks: %+v", out)
	}
}

func TestGradeQuestionPreNegatedPenalty(t *testing.T) {
	// One legacy feed stored the penalty already negated; it must still be
	// subtracted, not added.
	q := mcqQuestion()
	q.NegativeMarks = -1
	out := GradeQuestion(q, "B", true)
	if out.MarksEarned != -1 {
		t.Fatalf("want -1, got %v", out.MarksEarned)
	}
}

func TestGradeQuestionPositionalFallback(t *testing.T) {
	// No option metadata: the answer key alone names the correct labels.
	q := exam.Question{ID: "q3", Type: exam.TypeMSQ, AnswerKey: []string{"B", "A"}, Marks: 2}
	exam.NormalizeQuestion(&q)

	out := GradeQuestion(q, []any{"a", "b"}, true)
	if !out.Correct {
		t.Fatalf("expected correct, got %+v", out)
	}
	if !reflect.DeepEqual(out.CorrectLabels, []string{"A", "B"}) {
		t.Fatalf("correct labels: %v", out.CorrectLabels)
	}
	if !reflect.DeepEqual(out.Selected, []string{"A", "B"}) {
		t.Fatalf("selected labels normalized and sorted: %v", out.Selected)
	}
}

func TestGradeQuestionMCQDisjunctiveRecord(t *testing.T) {
	q := exam.Question{ID: "q4", Type: exam.TypeMCQ, AnswerKey: []string{"A or C"}, Marks: 4, NegativeMarks: 1}
	exam.NormalizeQuestion(&q)

	out := GradeQuestion(q, "c", true)
	if !out.Correct || out.MarksEarned != 4 {
		t.Fatalf("disjunctive key must accept C: %+v", out)
	}
	if !reflect.DeepEqual(out.CorrectLabels, []string{"A", "C"}) {
		t.Fatalf("both alternatives recorded: %v", out.CorrectLabels)
	}
}

func TestGradeQuestionNATRecord(t *testing.T) {
	q := exam.Question{ID: "q5", Type: exam.TypeNAT, AnswerKey: []string{"10-12"}, Marks: 4}
	out := GradeQuestion(q, "11", true)
	if !out.Correct || out.SelectedValue != "11" || out.CorrectValue != "10-12" {
		t.Fatalf("NAT outcome: %+v", out)
	}
	if out.Selected != nil {
		t.Fatalf("NAT must not record option labels: %v", out.Selected)
	}
}

func TestGradeQuestionNoOptionsNoKey(t *testing.T) {
	// Degenerate authored data: never correct, no correct ids, no panic.
	q := exam.Question{ID: "q6", Type: exam.TypeMCQ, Marks: 4, NegativeMarks: 1}
	out := GradeQuestion(q, "A", true)
	if out.Correct || len(out.CorrectLabels) != 0 || out.MarksEarned != -1 {
		t.Fatalf("degenerate question must grade wrong: %+v", out)
	}
}
