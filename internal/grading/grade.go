package grading

import (
	"math"
	"strings"

	"github.com/designprep/mocktest-server/internal/exam"
)

// Outcome is the per-question grading record. It is created fresh on every
// pass, never mutated afterwards, and is what the submission record
// persists for the review screen.
type Outcome struct {
	QuestionID  string  `json:"question_id"`
	Attempted   bool    `json:"attempted"`
	Correct     bool    `json:"correct"`
	MarksEarned float64 `json:"marks_earned"`

	// Choice questions: canonical option labels.
	Selected      []string `json:"selected,omitempty"`
	CorrectLabels []string `json:"correct_labels,omitempty"`

	// NAT: raw submitted string and the authored key.
	SelectedValue string `json:"selected_value,omitempty"`
	CorrectValue  string `json:"correct_value,omitempty"`
}

// GradeQuestion applies the marking rules to one question. present is false
// when the response map had no entry for the question.
func GradeQuestion(q exam.Question, resp any, present bool) Outcome {
	out := Outcome{QuestionID: q.ID}
	fillAnswerDetail(&out, q, resp)

	if !attempted(resp, present) {
		return out
	}
	out.Attempted = true

	if matchQuestion(q, resp) {
		out.Correct = true
		out.MarksEarned = q.Marks
		return out
	}
	// Stored penalties are magnitudes; one legacy feed pre-negated them,
	// so take the absolute value at this boundary.
	out.MarksEarned = -math.Abs(q.NegativeMarks)
	return out
}

func fillAnswerDetail(out *Outcome, q exam.Question, resp any) {
	switch q.Type {
	case exam.TypeNAT:
		if s, ok := asString(resp); ok {
			out.SelectedValue = s
		}
		out.CorrectValue = natKey(q)
	case exam.TypeMCQ:
		if s, ok := asString(resp); ok && s != "" {
			out.Selected = []string{strings.ToUpper(strings.TrimSpace(s))}
		}
		// The authored key may be disjunctive ("A or C"); record every
		// acceptable label.
		out.CorrectLabels = normalizeLabels(ParseChoiceSpec(mcqKey(q)).Accepted)
	case exam.TypeMSQ:
		if arr, ok := asStringSlice(resp); ok && len(arr) > 0 {
			out.Selected = normalizeLabels(arr)
		}
		out.CorrectLabels = normalizeLabels(q.CorrectLabels())
	}
}
