package grading

import (
	"math"

	"github.com/designprep/mocktest-server/internal/exam"
)

// PreviewMarks is the authoring-tool preview of a single question's marks.
// It differs from the live grader in exactly one place: MSQ earns
// proportional partial credit (k of n correct options selected, no wrong
// option selected, earns k/n of full marks). Live session scoring stays
// all-or-nothing; the two are kept separate on purpose and must not be
// unified without a product decision.
func PreviewMarks(q exam.Question, resp any, present bool) float64 {
	if !attempted(resp, present) {
		return 0
	}
	if q.Type != exam.TypeMSQ {
		out := GradeQuestion(q, resp, present)
		return out.MarksEarned
	}

	correct := NewMultiSpec(q.CorrectLabels())
	submitted, _ := asStringSlice(resp)
	got := normalizeLabels(submitted)
	if len(correct.Labels) == 0 || len(got) == 0 {
		return -math.Abs(q.NegativeMarks)
	}

	correctSet := map[string]bool{}
	for _, l := range correct.Labels {
		correctSet[l] = true
	}
	hit := map[string]bool{}
	for _, l := range got {
		if !correctSet[l] {
			// A wrong selection forfeits partial credit even in preview.
			return -math.Abs(q.NegativeMarks)
		}
		hit[l] = true
	}
	return q.Marks * float64(len(hit)) / float64(len(correctSet))
}
