package submission

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Save(ctx context.Context, rec Record) (Record, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().Unix()
	oj, err := json.Marshal(rec.Outcomes)
	if err != nil {
		return Record{}, &PersistenceError{Op: "encode", Err: err}
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO submissions
		(id,exam_id,user_id,total_marks,max_marks,total_questions,passed,time_spent_sec,outcomes_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.ExamID, rec.UserID, rec.TotalMarks, rec.MaxMarks, rec.TotalQuestions,
		rec.Passed, rec.TimeSpentSec, string(oj), rec.CreatedAt)
	if err != nil {
		return Record{}, &PersistenceError{Op: "save", Err: err}
	}
	return rec, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,exam_id,user_id,total_marks,max_marks,total_questions,passed,time_spent_sec,outcomes_json,created_at
		FROM submissions WHERE id=$1`, id)
	var rec Record
	var oj string
	if err := row.Scan(&rec.ID, &rec.ExamID, &rec.UserID, &rec.TotalMarks, &rec.MaxMarks,
		&rec.TotalQuestions, &rec.Passed, &rec.TimeSpentSec, &oj, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, &PersistenceError{Op: "get", Err: err}
	}
	if err := json.Unmarshal([]byte(oj), &rec.Outcomes); err != nil {
		return Record{}, &PersistenceError{Op: "decode", Err: err}
	}
	return rec, nil
}

func (s *SQLStore) ListByUser(ctx context.Context, userID string, limit int) ([]Summary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,exam_id,total_marks,max_marks,passed,created_at
		FROM submissions WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.ExamID, &sum.TotalMarks, &sum.MaxMarks, &sum.Passed, &sum.CreatedAt); err != nil {
			return nil, &PersistenceError{Op: "list", Err: err}
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
