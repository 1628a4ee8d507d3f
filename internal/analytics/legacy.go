package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"
)

// Attempt is the row shape the legacy analytics pipeline still consumes.
type Attempt struct {
	UserID       string
	ExamID       string
	Responses    map[string]any
	TimeSpentSec int
	Score        float64
	MaxScore     float64
	AccuracyPct  float64
}

type Recorder struct{ db *sql.DB }

func NewRecorder(db *sql.DB) *Recorder { return &Recorder{db: db} }

// Record is best-effort: a failed insert is logged and swallowed so it can
// never block or roll back the primary submission flow.
func (r *Recorder) Record(ctx context.Context, a Attempt) {
	rj, err := json.Marshal(a.Responses)
	if err != nil {
		log.Printf("analytics: encode responses for %s/%s: %v", a.UserID, a.ExamID, err)
		return
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO attempt_log
		(user_id,exam_id,responses_json,time_spent_sec,score,max_score,accuracy,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.UserID, a.ExamID, string(rj), a.TimeSpentSec, a.Score, a.MaxScore, a.AccuracyPct, time.Now().Unix())
	if err != nil {
		log.Printf("analytics: record attempt %s/%s: %v", a.UserID, a.ExamID, err)
	}
}
