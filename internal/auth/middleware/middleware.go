package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/designprep/mocktest-server/internal/rbac"
)

type AuthService struct{ hmac []byte }

func NewAuthService(secret string) *AuthService { return &AuthService{hmac: []byte(secret)} }

type Claims struct {
	Sub     string `json:"sub"`
	Role    string `json:"role"`    // "student" or "admin"
	Premium bool   `json:"premium"` // premium papers unlocked
	jwt.RegisteredClaims
}

func (a *AuthService) IssueJWT(sub, role string, premium bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub:     sub,
		Role:    role,
		Premium: premium,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mocktest-server",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(8 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	c, _ := token.Claims.(*Claims)
	return c, nil
}

// POST /auth/login  { "username": "...", "password": "..." }
// Users come from the users table; the configured admin user works even on
// a fresh database.
func LoginHandler(a *AuthService, db *sql.DB, adminUser, adminPassHash string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sub, role, premium, ok := lookupUser(r, db, req.Username, req.Password)
		if !ok && req.Username == adminUser &&
			bcrypt.CompareHashAndPassword([]byte(adminPassHash), []byte(req.Password)) == nil {
			sub, role, premium, ok = adminUser, "admin", true, true
		}
		if !ok {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := a.IssueJWT(sub, role, premium)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
	}
}

func lookupUser(r *http.Request, db *sql.DB, username, password string) (sub, role string, premium, ok bool) {
	if db == nil || username == "" {
		return "", "", false, false
	}
	var id, hash string
	err := db.QueryRowContext(r.Context(),
		`SELECT id, pass_hash, role, premium FROM users WHERE username=$1`, username).
		Scan(&id, &hash, &role, &premium)
	if err != nil {
		return "", "", false, false
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", "", false, false
	}
	return id, role, premium, true
}

// JWTMiddleware validates the bearer token and attaches subject, role and
// premium flag to the request context.
func JWTMiddleware(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			claims, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			ctx := WithSubject(r.Context(), claims.Sub)
			ctx = WithPremium(ctx, claims.Premium)
			ctx = rbac.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
