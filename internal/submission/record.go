package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/designprep/mocktest-server/internal/exam"
	"github.com/designprep/mocktest-server/internal/grading"
)

// Record is the durable result of one completed attempt. It is written
// once at submission time and never edited; the review screen only reads
// it. Outcomes cover every question, attempted or not, so review can
// always render the full paper.
type Record struct {
	ID             string            `json:"id"`
	ExamID         string            `json:"exam_id"`
	UserID         string            `json:"user_id"`
	TotalMarks     float64           `json:"total_marks"`
	MaxMarks       float64           `json:"max_marks"`
	TotalQuestions int               `json:"total_questions"`
	Passed         bool              `json:"passed"`
	TimeSpentSec   int               `json:"time_spent_sec"`
	Outcomes       []grading.Outcome `json:"outcomes"`
	CreatedAt      int64             `json:"created_at"`
}

type Summary struct {
	ID         string  `json:"id"`
	ExamID     string  `json:"exam_id"`
	TotalMarks float64 `json:"total_marks"`
	MaxMarks   float64 `json:"max_marks"`
	Passed     bool    `json:"passed"`
	CreatedAt  int64   `json:"created_at"`
}

var ErrNotFound = errors.New("submission not found")

// PersistenceError marks a failed write at the storage boundary. The
// builder never retries; callers surface it and must not treat the exam
// as submitted until a save succeeds.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("submission %s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

type Store interface {
	// Save assigns the record id and created_at; partial writes are never
	// visible to readers.
	Save(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, id string) (Record, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Summary, error)
}

// Build grades the final response snapshot and assembles the record.
// Pure computation; the caller hands the result to a Store.
func Build(paper exam.Paper, userID string, responses map[string]any, elapsedSec int) (Record, grading.Result) {
	res := grading.GradeExam(grading.Input{
		Paper:      paper,
		Responses:  responses,
		ElapsedSec: elapsedSec,
	})
	rec := Record{
		ExamID:         paper.ID,
		UserID:         userID,
		TotalMarks:     res.TotalMarks,
		MaxMarks:       res.MaxMarks,
		TotalQuestions: len(res.Outcomes),
		Passed:         res.Passed,
		TimeSpentSec:   elapsedSec,
		Outcomes:       res.Outcomes,
	}
	return rec, res
}
