package grading

import "github.com/designprep/mocktest-server/internal/exam"

// DefaultCategory buckets questions authored without a topic tag.
const DefaultCategory = "Uncategorized"

// Input is the immutable snapshot a grading pass runs on. The caller
// freezes the response map before invoking GradeExam; nothing here is
// mutated.
type Input struct {
	Paper      exam.Paper
	Responses  map[string]any // question id -> string (NAT/MCQ) or []string (MSQ)
	ElapsedSec int
}

type SectionResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxMarks float64 `json:"max_marks"`
	Correct  int     `json:"correct"`
	Wrong    int     `json:"wrong"`
	Skipped  int     `json:"skipped"`
}

// CategoryStat aggregates per topic tag, orthogonal to sections.
type CategoryStat struct {
	Name        string  `json:"name"`
	Questions   int     `json:"questions"`
	Correct     int     `json:"correct"`
	MaxMarks    float64 `json:"max_marks"`
	ScoredMarks float64 `json:"scored_marks"` // may go negative from wrong attempts
}

type Result struct {
	TotalMarks   float64 `json:"total_marks"`
	MaxMarks     float64 `json:"max_marks"`
	CorrectCount int     `json:"correct_count"`
	WrongCount   int     `json:"wrong_count"`
	SkippedCount int     `json:"skipped_count"`
	AccuracyPct  float64 `json:"accuracy_pct"`
	Passed       bool    `json:"passed"`
	ElapsedSec   int     `json:"elapsed_sec"`

	Sections   []SectionResult `json:"sections"`
	Categories []CategoryStat  `json:"categories"`
	Outcomes   []Outcome       `json:"outcomes"`
}

// GradeExam walks the paper in authored order, grades every question
// (attempted or not) and aggregates section totals, overall totals and the
// per-category breakdown. Responses for unknown question ids are ignored.
// The pass is deterministic: identical input produces identical output,
// including slice ordering (sections in paper order, categories in
// first-seen order).
func GradeExam(in Input) Result {
	res := Result{ElapsedSec: in.ElapsedSec}

	catIndex := map[string]int{}

	for _, sec := range in.Paper.Sections {
		sr := SectionResult{Name: sec.Name}
		for _, q := range sec.Questions {
			resp, present := in.Responses[q.ID]
			out := GradeQuestion(q, resp, present)

			sr.MaxMarks += q.Marks
			sr.Score += out.MarksEarned
			switch {
			case !out.Attempted:
				sr.Skipped++
			case out.Correct:
				sr.Correct++
			default:
				sr.Wrong++
			}

			cat := q.Category
			if cat == "" {
				cat = DefaultCategory
			}
			idx, ok := catIndex[cat]
			if !ok {
				idx = len(res.Categories)
				catIndex[cat] = idx
				res.Categories = append(res.Categories, CategoryStat{Name: cat})
			}
			cs := &res.Categories[idx]
			cs.Questions++
			cs.MaxMarks += q.Marks
			if out.Correct {
				cs.Correct++
			}
			if out.Attempted {
				cs.ScoredMarks += out.MarksEarned
			}

			res.Outcomes = append(res.Outcomes, out)
		}
		res.TotalMarks += sr.Score
		res.MaxMarks += sr.MaxMarks
		res.CorrectCount += sr.Correct
		res.WrongCount += sr.Wrong
		res.SkippedCount += sr.Skipped
		res.Sections = append(res.Sections, sr)
	}

	if n := res.CorrectCount + res.WrongCount; n > 0 {
		res.AccuracyPct = float64(res.CorrectCount) / float64(n) * 100
	}
	res.Passed = res.TotalMarks >= 0
	return res
}
