package exam

import (
	"fmt"
	"strings"
)

// Normalize canonicalizes option identity once at load time: every option
// gets a positional label (A, B, C, ...) and an ID (falling back to the
// label for legacy data authored without ids). Downstream grading and
// review code only ever sees the canonical pair.
func Normalize(p *Paper) {
	for si := range p.Sections {
		sec := &p.Sections[si]
		for qi := range sec.Questions {
			NormalizeQuestion(&sec.Questions[qi])
		}
	}
}

func NormalizeQuestion(q *Question) {
	q.Type = strings.ToLower(strings.TrimSpace(q.Type))
	for i := range q.Options {
		opt := &q.Options[i]
		opt.Label = positionLabel(i)
		if strings.TrimSpace(opt.ID) == "" {
			opt.ID = opt.Label
		}
	}
}

// CorrectLabels returns the correct option labels for a choice question,
// derived from the option flags when options exist, else from the raw
// answer key (each element treated as a label).
func (q Question) CorrectLabels() []string {
	if len(q.Options) > 0 {
		var out []string
		for _, o := range q.Options {
			if o.IsCorrect {
				out = append(out, o.Label)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	out := make([]string, 0, len(q.AnswerKey))
	for _, k := range q.AnswerKey {
		if s := strings.ToUpper(strings.TrimSpace(k)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the invariants a stored paper must hold: non-empty
// sections, unique question ids, positive marks, non-negative penalties,
// and agreement between option flags and the authored answer key.
func Validate(p Paper) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("paper id required")
	}
	if len(p.Sections) == 0 {
		return fmt.Errorf("paper %s: at least one section required", p.ID)
	}
	seen := map[string]bool{}
	for _, s := range p.Sections {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("paper %s: section name required", p.ID)
		}
		for _, q := range s.Questions {
			if q.ID == "" {
				return fmt.Errorf("paper %s: question id required in section %s", p.ID, s.Name)
			}
			if seen[q.ID] {
				return fmt.Errorf("paper %s: duplicate question id %s", p.ID, q.ID)
			}
			seen[q.ID] = true
			switch q.Type {
			case TypeNAT, TypeMCQ, TypeMSQ:
			default:
				return fmt.Errorf("question %s: unsupported type %q", q.ID, q.Type)
			}
			if q.Marks <= 0 {
				return fmt.Errorf("question %s: marks must be positive", q.ID)
			}
			if q.NegativeMarks < 0 {
				return fmt.Errorf("question %s: negative_marks must be a magnitude", q.ID)
			}
			if q.Type != TypeNAT && len(q.Options) > 0 && len(q.Options) < 2 {
				return fmt.Errorf("question %s: at least 2 options required", q.ID)
			}
			if err := checkKeyAgreement(q); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkKeyAgreement enforces that the set derived from option flags equals
// the authored answer key when both are present (MCQ/MSQ only; NAT keys
// are free-form numeric specs).
func checkKeyAgreement(q Question) error {
	if q.Type == TypeNAT || len(q.Options) == 0 || len(q.AnswerKey) == 0 {
		return nil
	}
	flagged := map[string]bool{}
	for _, o := range q.Options {
		if o.IsCorrect {
			flagged[o.Label] = true
		}
	}
	if len(flagged) == 0 {
		return nil
	}
	keyed := map[string]bool{}
	for _, k := range q.AnswerKey {
		for _, alt := range strings.Split(strings.ToUpper(k), " OR ") {
			if s := strings.TrimSpace(alt); s != "" {
				keyed[s] = true
			}
		}
	}
	if q.Type == TypeMCQ {
		// Disjunctive keys ("A or C") are satisfied if every alternative is flagged.
		for k := range keyed {
			if !flagged[k] {
				return fmt.Errorf("question %s: answer key %q not among flagged options", q.ID, k)
			}
		}
		return nil
	}
	if len(keyed) != len(flagged) {
		return fmt.Errorf("question %s: answer key disagrees with option flags", q.ID)
	}
	for k := range keyed {
		if !flagged[k] {
			return fmt.Errorf("question %s: answer key disagrees with option flags", q.ID)
		}
	}
	return nil
}

func positionLabel(i int) string {
	return string(rune('A' + i))
}
