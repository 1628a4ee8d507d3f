package grading

import (
	"strings"

	"github.com/designprep/mocktest-server/internal/exam"
)

// Matchers decide correctness for a single attempted response. They are
// pure; the attempted/unattempted split is the grader's concern.

// MatchNAT parses both the key and the submission with the same grammar.
// An unparseable key or submission is never correct.
func MatchNAT(key, submitted string) bool {
	spec := ParseNumericSpec(key)
	if spec.Empty() {
		return false
	}
	v, ok := ParseNumericSpec(submitted).Effective()
	if !ok {
		return false
	}
	return spec.Accepts(v)
}

// MatchMCQ compares case-insensitively after trimming; the key may carry
// "or" alternatives ("A or C").
func MatchMCQ(key, submitted string) bool {
	spec := ParseChoiceSpec(key)
	if len(spec.Accepted) == 0 {
		return false
	}
	return spec.Accepts(submitted)
}

// MatchMSQ requires the sorted submitted set to equal the sorted correct
// set element-wise.
func MatchMSQ(correct, submitted []string) bool {
	spec := NewMultiSpec(correct)
	if len(spec.Labels) == 0 {
		return false
	}
	return spec.Accepts(submitted)
}

// matchQuestion routes an attempted response to the matcher for its type.
func matchQuestion(q exam.Question, resp any) bool {
	switch q.Type {
	case exam.TypeNAT:
		s, _ := asString(resp)
		return MatchNAT(natKey(q), s)
	case exam.TypeMCQ:
		s, _ := asString(resp)
		return MatchMCQ(mcqKey(q), s)
	case exam.TypeMSQ:
		arr, _ := asStringSlice(resp)
		return MatchMSQ(q.CorrectLabels(), arr)
	default:
		return false
	}
}

func natKey(q exam.Question) string {
	if len(q.AnswerKey) > 0 {
		return q.AnswerKey[0]
	}
	return ""
}

// mcqKey prefers the authored key (it may encode OR alternatives) and
// falls back to the flagged options for key-less legacy data.
func mcqKey(q exam.Question) string {
	if len(q.AnswerKey) > 0 && strings.TrimSpace(q.AnswerKey[0]) != "" {
		return q.AnswerKey[0]
	}
	return strings.Join(q.CorrectLabels(), " or ")
}

// --- response payload coercion ---

// asString accepts the raw JSON payload shapes the UI sends for NAT/MCQ.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asStringSlice accepts []string and the []interface{} produced by
// encoding/json for MSQ payloads.
func asStringSlice(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// attempted is the single definition of "attempted" used everywhere:
// present and non-empty. A non-empty but invalid payload still counts.
func attempted(resp any, ok bool) bool {
	if !ok || resp == nil {
		return false
	}
	switch t := resp.(type) {
	case string:
		return t != ""
	case []string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}
