package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/designprep/mocktest-server/internal/analytics"
	authmw "github.com/designprep/mocktest-server/internal/auth/middleware"
	"github.com/designprep/mocktest-server/internal/exam"
	"github.com/designprep/mocktest-server/internal/grading"
	"github.com/designprep/mocktest-server/internal/submission"
	syncx "github.com/designprep/mocktest-server/internal/sync"
)

type submitReq struct {
	// question id -> string (NAT/MCQ) or array of labels (MSQ)
	Responses    map[string]any `json:"responses"`
	TimeSpentSec int            `json:"time_spent_sec"`
}

type submitResp struct {
	SubmissionID string         `json:"submission_id"`
	Result       grading.Result `json:"result"`
}

// SubmitHandler grades a final response snapshot, persists the submission
// record and reports the live result. The record write is the one
// operation whose failure reaches the student: until it succeeds the
// attempt must not be treated as submitted. Audit and legacy analytics are
// best-effort side channels.
func SubmitHandler(papers exam.Store, subs submission.Store, events *syncx.EventRepo, legacy *analytics.Recorder, enforcePremium bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.Responses == nil {
			req.Responses = map[string]any{}
		}

		paper, err := papers.GetPaperFull(r.Context(), examID)
		if err != nil {
			if errors.Is(err, exam.ErrNotFound) {
				http.Error(w, "paper not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if denyPremium(w, r, paper, enforcePremium) {
			return
		}

		userID := authmw.SubjectFromContext(r.Context())
		rec, res := submission.Build(paper, userID, req.Responses, req.TimeSpentSec)
		saved, err := subs.Save(r.Context(), rec)
		if err != nil {
			// Surface the failure; the client keeps the attempt open and retries.
			http.Error(w, "save submission: "+err.Error(), http.StatusInternalServerError)
			return
		}

		appendEvent(r, events, syncx.EventSubmissionSaved, saved.ID, map[string]any{
			"exam_id":     saved.ExamID,
			"user_id":     saved.UserID,
			"total_marks": saved.TotalMarks,
			"passed":      saved.Passed,
		})
		if legacy != nil {
			legacy.Record(r.Context(), analytics.Attempt{
				UserID:       userID,
				ExamID:       examID,
				Responses:    req.Responses,
				TimeSpentSec: req.TimeSpentSec,
				Score:        res.TotalMarks,
				MaxScore:     res.MaxMarks,
				AccuracyPct:  res.AccuracyPct,
			})
		}

		writeJSON(w, submitResp{SubmissionID: saved.ID, Result: res})
	}
}

// PreviewHandler grades a single authored question the way the authoring
// tool does (MSQ earns proportional partial credit here, unlike live
// scoring).
func PreviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Question exam.Question `json:"question"`
			Response any           `json:"response"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		exam.NormalizeQuestion(&req.Question)
		marks := grading.PreviewMarks(req.Question, req.Response, req.Response != nil)
		writeJSON(w, map[string]float64{"marks": marks})
	}
}

func appendEvent(r *http.Request, events *syncx.EventRepo, typ, key string, data map[string]any) {
	if events == nil {
		return
	}
	buf, _ := json.Marshal(data)
	// Detached context: the audit append may outlive a canceled request.
	if err := events.Append(context.WithoutCancel(r.Context()), syncx.Event{Type: typ, Key: key, DataJSON: string(buf)}); err != nil {
		log.Printf("eventlog: append %s/%s: %v", typ, key, err)
	}
}
