package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutPaper(ctx context.Context, p Paper) error {
	Normalize(&p)
	if err := Validate(p); err != nil {
		return err
	}
	sj, err := json.Marshal(p.Sections)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exams (id,title,duration_sec,premium,sections_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, duration_sec=EXCLUDED.duration_sec,
			premium=EXCLUDED.premium, sections_json=EXCLUDED.sections_json`,
		p.ID, p.Title, p.DurationSec, p.Premium, string(sj), time.Now().Unix())
	return err
}

func (s *SQLStore) GetPaper(ctx context.Context, id string) (Paper, error) {
	p, err := s.GetPaperFull(ctx, id)
	if err != nil {
		return Paper{}, err
	}
	StripAnswers(&p)
	return p, nil
}

func (s *SQLStore) GetPaperFull(ctx context.Context, id string) (Paper, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,duration_sec,premium,sections_json,created_at FROM exams WHERE id=$1`, id)
	var p Paper
	var sj string
	if err := row.Scan(&p.ID, &p.Title, &p.DurationSec, &p.Premium, &sj, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Paper{}, ErrNotFound
		}
		return Paper{}, err
	}
	if err := json.Unmarshal([]byte(sj), &p.Sections); err != nil {
		return Paper{}, err
	}
	Normalize(&p)
	return p, nil
}

func (s *SQLStore) ListPapers(ctx context.Context, opts ListOpts) ([]PaperSummary, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,duration_sec,premium,sections_json FROM exams
		WHERE ($1 = '' OR title LIKE '%' || $1 || '%')
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, opts.Q, limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PaperSummary
	for rows.Next() {
		var sum PaperSummary
		var sj string
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.DurationSec, &sum.Premium, &sj); err != nil {
			return nil, err
		}
		var sections []Section
		if err := json.Unmarshal([]byte(sj), &sections); err == nil {
			for _, sec := range sections {
				sum.QuestionCount += len(sec.Questions)
			}
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
