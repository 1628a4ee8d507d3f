package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/designprep/mocktest-server/internal/analytics"
	api "github.com/designprep/mocktest-server/internal/api/http"
	auth "github.com/designprep/mocktest-server/internal/auth/middleware"
	"github.com/designprep/mocktest-server/internal/config"
	"github.com/designprep/mocktest-server/internal/db"
	"github.com/designprep/mocktest-server/internal/exam"
	"github.com/designprep/mocktest-server/internal/rbac"
	"github.com/designprep/mocktest-server/internal/submission"
	syncx "github.com/designprep/mocktest-server/internal/sync"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	papers := exam.NewSQLStore(dbh)
	subs := submission.NewSQLStore(dbh)
	events := syncx.NewEventRepo(dbh)
	legacy := analytics.NewRecorder(dbh)

	// Seed authored papers, if a bank directory is present.
	if _, err := os.Stat(cfg.PaperDir); err == nil {
		n, err := exam.IngestDir(ctx, papers, cfg.PaperDir)
		if err != nil {
			log.Printf("paper ingestion: %v", err)
		} else {
			log.Printf("paper ingestion: %d papers loaded from %s", n, cfg.PaperDir)
		}
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret)
	reviewWindow := time.Duration(cfg.ReviewWindowHours) * time.Hour

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, cfg.AdminUser, cfg.AdminPassHash))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("exam:list")).
			Get("/exams", api.ListPapersHandler(papers))
		pr.With(rbac.Require("exam:view")).
			Get("/exams/{examID}", api.GetPaperHandler(papers, cfg.EnforcePremium))
		pr.With(rbac.Require("exam:submit")).
			Post("/exams/{examID}/submit", api.SubmitHandler(papers, subs, events, legacy, cfg.EnforcePremium))

		// Admin: author papers; preview grading for the authoring tool.
		pr.With(rbac.Require("exam:create")).
			Post("/exams", api.UploadPaperHandler(papers, events))
		pr.With(rbac.Require("exam:preview")).
			Post("/grading/preview", api.PreviewHandler())

		pr.With(rbac.RequireAny("review:view-own", "review:view-all")).
			Get("/submissions", api.ListSubmissionsHandler(subs))
		pr.With(rbac.RequireAny("review:view-own", "review:view-all")).
			Get("/submissions/{submissionID}", api.GetSubmissionHandler(subs))
		pr.With(rbac.RequireAny("review:view-own", "review:view-all")).
			Get("/submissions/{submissionID}/review", api.ReviewHandler(papers, subs, reviewWindow))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("gateway listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
