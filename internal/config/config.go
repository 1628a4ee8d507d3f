package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOrigins []string

	// PaperDir is scanned at startup for authored *.yaml papers.
	PaperDir string

	// ReviewWindowHours bounds how long a submission stays reviewable.
	ReviewWindowHours int

	// EnforcePremium gates premium papers behind the premium claim.
	// Disabled in dev so seeded papers are reachable without a user table.
	EnforcePremium bool
}

func FromEnv() Config {
	return Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		DBDriver:          envOr("DB_DRIVER", "sqlite"),
		DBDSN:             envOr("DB_DSN", ""),
		AuthSecret:        envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:         envOr("ADMIN_USER", "admin"),
		AdminPassHash:     envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		CORSOrigins:       csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		PaperDir:          envOr("PAPER_DIR", "./papers"),
		ReviewWindowHours: envIntOr("REVIEW_WINDOW_HOURS", 24),
		EnforcePremium:    envBool("ENFORCE_PREMIUM", true),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envIntOr(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
