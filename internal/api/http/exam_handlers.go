package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/designprep/mocktest-server/internal/auth/middleware"
	"github.com/designprep/mocktest-server/internal/exam"
	"github.com/designprep/mocktest-server/internal/rbac"
	syncx "github.com/designprep/mocktest-server/internal/sync"
)

func ListPapersHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

		list, err := store.ListPapers(r.Context(), exam.ListOpts{Q: q, Limit: limit, Offset: offset})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, list)
	}
}

// GetPaperHandler serves a student-safe paper. Premium papers require the
// premium claim; the grading core itself never checks this gate.
func GetPaperHandler(store exam.Store, enforcePremium bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "examID")
		p, err := store.GetPaper(r.Context(), id)
		if err != nil {
			if errors.Is(err, exam.ErrNotFound) {
				http.Error(w, "paper not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if denyPremium(w, r, p, enforcePremium) {
			return
		}
		writeJSON(w, p)
	}
}

// UploadPaperHandler accepts an authored paper as JSON (admin only).
func UploadPaperHandler(store exam.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p exam.Paper
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.PutPaper(r.Context(), p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		appendEvent(r, events, syncx.EventPaperUploaded, p.ID, map[string]any{
			"title": p.Title,
			"by":    authmw.SubjectFromContext(r.Context()),
		})
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"id": p.ID})
	}
}

func denyPremium(w http.ResponseWriter, r *http.Request, p exam.Paper, enforce bool) bool {
	if !enforce || !p.Premium {
		return false
	}
	if authmw.PremiumFromContext(r.Context()) || rbac.RoleFromContext(r.Context()) == "admin" {
		return false
	}
	http.Error(w, "premium paper locked", http.StatusForbidden)
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
