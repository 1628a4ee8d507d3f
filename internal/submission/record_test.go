package submission

import (
	"testing"

	"github.com/designprep/mocktest-server/internal/exam"
)

func reviewPaper() exam.Paper {
	p := exam.Paper{
		ID:    "mock-01",
		Title: "Design Aptitude Mock 1",
		Sections: []exam.Section{
			{
				Name: "Aptitude",
				Questions: []exam.Question{
					{
						ID: "q1", Type: exam.TypeMCQ, Marks: 4, NegativeMarks: 1,
						Options:   []exam.Option{{TextHTML: "red", IsCorrect: true}, {TextHTML: "blue"}, {TextHTML: "green"}},
						AnswerKey: []string{"A"},
					},
					{
						ID: "q2", Type: exam.TypeMSQ, Marks: 4,
						Options:   []exam.Option{{IsCorrect: true}, {}, {IsCorrect: true}, {}},
						AnswerKey: []string{"A", "C"},
					},
				},
			},
			{
				Name: "Numerical",
				Questions: []exam.Question{
					{ID: "q3", Type: exam.TypeNAT, AnswerKey: []string{"10-12"}, Marks: 4},
				},
			},
		},
	}
	exam.Normalize(&p)
	return p
}

func TestBuildCoversEveryQuestion(t *testing.T) {
	paper := reviewPaper()
	rec, res := Build(paper, "user-1", map[string]any{"q1": "B"}, 540)

	if rec.TotalQuestions != 3 || len(rec.Outcomes) != 3 {
		t.Fatalf("record must cover all questions: %+v", rec)
	}
	if rec.TotalMarks != -1 || rec.MaxMarks != 12 {
		t.Fatalf("totals: %v/%v", rec.TotalMarks, rec.MaxMarks)
	}
	if rec.Passed {
		t.Fatal("negative total must fail")
	}
	if rec.TimeSpentSec != 540 || res.ElapsedSec != 540 {
		t.Fatal("elapsed time must flow through")
	}

	// Unattempted questions appear with a neutral outcome.
	for _, id := range []string{"q2", "q3"} {
		found := false
		for _, o := range rec.Outcomes {
			if o.QuestionID == id {
				found = true
				if o.Attempted || o.MarksEarned != 0 {
					t.Fatalf("unattempted outcome for %s: %+v", id, o)
				}
			}
		}
		if !found {
			t.Fatalf("outcome missing for %s", id)
		}
	}
}

func TestBuildZeroTotalPasses(t *testing.T) {
	paper := reviewPaper()
	rec, _ := Build(paper, "user-1", map[string]any{}, 0)
	if rec.TotalMarks != 0 || !rec.Passed {
		t.Fatalf("empty submission: marks=%v passed=%v", rec.TotalMarks, rec.Passed)
	}
}
