package exam

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("paper not found")

type ListOpts struct {
	Q      string
	Limit  int
	Offset int
}

type PaperSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	DurationSec   int    `json:"duration_sec"`
	Premium       bool   `json:"premium"`
	QuestionCount int    `json:"question_count"`
}

type Store interface {
	PutPaper(ctx context.Context, p Paper) error
	// GetPaper is student-safe: answer keys and correct-option flags stripped.
	GetPaper(ctx context.Context, id string) (Paper, error)
	// GetPaperFull returns the paper with keys, for grading and review.
	GetPaperFull(ctx context.Context, id string) (Paper, error)
	ListPapers(ctx context.Context, opts ListOpts) ([]PaperSummary, error)
}

// StripAnswers removes everything a student must not see before the paper
// is served for an attempt.
func StripAnswers(p *Paper) {
	for si := range p.Sections {
		for qi := range p.Sections[si].Questions {
			q := &p.Sections[si].Questions[qi]
			q.AnswerKey = nil
			for oi := range q.Options {
				q.Options[oi].IsCorrect = false
			}
		}
	}
}
