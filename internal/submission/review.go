package submission

import (
	"strings"

	"github.com/designprep/mocktest-server/internal/exam"
	"github.com/designprep/mocktest-server/internal/grading"
)

// Display state for one option on the review screen. Exactly one state
// applies to every option.
type OptionState string

const (
	StateSelectedCorrect OptionState = "selected_correct"
	StateSelectedWrong   OptionState = "selected_wrong"
	StateCorrectMissed   OptionState = "correct_missed"
	StateNeutral         OptionState = "neutral"
)

type OptionView struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	TextHTML string      `json:"text_html,omitempty"`
	ImageURL string      `json:"image_url,omitempty"`
	State    OptionState `json:"state"`
}

type QuestionReview struct {
	QuestionID  string  `json:"question_id"`
	Number      int     `json:"number"` // 1-based across the paper
	Section     string  `json:"section"`
	Type        string  `json:"type"`
	PromptHTML  string  `json:"prompt_html,omitempty"`
	Attempted   bool    `json:"attempted"`
	Correct     bool    `json:"correct"`
	MarksEarned float64 `json:"marks_earned"`

	Options []OptionView `json:"options,omitempty"`

	// NAT comparison.
	SelectedValue string `json:"selected_value,omitempty"`
	CorrectValue  string `json:"correct_value,omitempty"`

	// Label-scheme comparison for choice questions.
	SelectedLabels []string `json:"selected_labels,omitempty"`
	CorrectLabels  []string `json:"correct_labels,omitempty"`
}

// Reconstruct pairs a stored record with the re-fetched paper into a
// display-ready review. Stateless and idempotent; safe to call on every
// navigation. Stored outcome ids may be rich option ids or legacy
// positional labels; both resolve to the canonical label scheme.
func Reconstruct(paper exam.Paper, rec Record) []QuestionReview {
	byQuestion := make(map[string]grading.Outcome, len(rec.Outcomes))
	for _, o := range rec.Outcomes {
		byQuestion[o.QuestionID] = o
	}

	var views []QuestionReview
	num := 0
	for _, sec := range paper.Sections {
		for _, q := range sec.Questions {
			num++
			out := byQuestion[q.ID] // zero Outcome renders as not attempted
			views = append(views, reviewQuestion(sec.Name, num, q, out))
		}
	}
	return views
}

func reviewQuestion(section string, number int, q exam.Question, out grading.Outcome) QuestionReview {
	v := QuestionReview{
		QuestionID:  q.ID,
		Number:      number,
		Section:     section,
		Type:        q.Type,
		PromptHTML:  q.PromptHTML,
		Attempted:   out.Attempted,
		Correct:     out.Correct,
		MarksEarned: out.MarksEarned,
	}

	if q.Type == exam.TypeNAT {
		v.SelectedValue = out.SelectedValue
		v.CorrectValue = firstKey(q, out.CorrectValue)
		return v
	}

	selected := resolveLabels(q, out.Selected)
	correct := resolveLabels(q, out.CorrectLabels)
	if len(correct) == 0 {
		correct = resolveLabels(q, q.CorrectLabels())
	}
	v.SelectedLabels = selected
	v.CorrectLabels = correct

	selSet := toSet(selected)
	corSet := toSet(correct)
	for _, opt := range q.Options {
		ov := OptionView{ID: opt.ID, Label: opt.Label, TextHTML: opt.TextHTML, ImageURL: opt.ImageURL}
		switch {
		case selSet[opt.Label] && corSet[opt.Label]:
			ov.State = StateSelectedCorrect
		case selSet[opt.Label]:
			ov.State = StateSelectedWrong
		case corSet[opt.Label]:
			ov.State = StateCorrectMissed
		default:
			ov.State = StateNeutral
		}
		v.Options = append(v.Options, ov)
	}
	return v
}

// resolveLabels maps stored tokens (option ids or positional labels) onto
// canonical labels, falling back to the token itself.
func resolveLabels(q exam.Question, tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	byID := make(map[string]string, len(q.Options))
	labels := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		byID[o.ID] = o.Label
		labels[o.Label] = true
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if lbl, ok := byID[t]; ok {
			out = append(out, lbl)
			continue
		}
		if up := strings.ToUpper(strings.TrimSpace(t)); labels[up] {
			out = append(out, up)
			continue
		}
		out = append(out, t)
	}
	return out
}

func firstKey(q exam.Question, stored string) string {
	if stored != "" {
		return stored
	}
	if len(q.AnswerKey) > 0 {
		return q.AnswerKey[0]
	}
	return ""
}

func toSet(in []string) map[string]bool {
	m := make(map[string]bool, len(in))
	for _, s := range in {
		m[s] = true
	}
	return m
}
