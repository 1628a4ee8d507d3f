package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	authmw "github.com/designprep/mocktest-server/internal/auth/middleware"
	"github.com/designprep/mocktest-server/internal/exam"
	"github.com/designprep/mocktest-server/internal/rbac"
	"github.com/designprep/mocktest-server/internal/submission"
)

func GetSubmissionHandler(subs submission.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := loadOwnSubmission(w, r, subs)
		if !ok {
			return
		}
		writeJSON(w, rec)
	}
}

func ListSubmissionsHandler(subs submission.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		list, err := subs.ListByUser(r.Context(), userID, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, list)
	}
}

// ReviewHandler reconstructs the per-question comparison view. The review
// validity window is a caller policy: the stored record never expires, the
// API just stops offering it.
func ReviewHandler(papers exam.Store, subs submission.Store, window time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := loadOwnSubmission(w, r, subs)
		if !ok {
			return
		}
		if window > 0 && time.Since(time.Unix(rec.CreatedAt, 0)) > window {
			http.Error(w, "review window expired", http.StatusGone)
			return
		}
		paper, err := papers.GetPaperFull(r.Context(), rec.ExamID)
		if err != nil {
			if errors.Is(err, exam.ErrNotFound) {
				http.Error(w, "paper no longer available", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, submission.Reconstruct(paper, rec))
	}
}

func loadOwnSubmission(w http.ResponseWriter, r *http.Request, subs submission.Store) (submission.Record, bool) {
	id := chi.URLParam(r, "submissionID")
	rec, err := subs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			http.Error(w, "submission not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return submission.Record{}, false
	}
	ctx := r.Context()
	if rec.UserID != authmw.SubjectFromContext(ctx) && rbac.RoleFromContext(ctx) != "admin" {
		http.Error(w, "forbidden", http.StatusForbidden)
		return submission.Record{}, false
	}
	return rec, true
}
