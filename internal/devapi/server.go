// Package devapi is a local, sqlite-backed stand-in for the leave
// backend, mounted by the serving shell in dev mode so the client can
// be developed and exercised without the real service. It implements
// the same REST surface the client consumes in production.
package devapi

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Server serves the dev backend routes.
type Server struct {
	db *sql.DB
}

// NewServer wraps an opened dev database.
func NewServer(db *sql.DB) *Server {
	return &Server{db: db}
}

// Register mounts all routes on mux. The password-reset routes are
// registered only under their long spellings; the client probes the
// short ones first and falls back on 404, so dev traffic exercises that
// path.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/me", s.handleMe)
	mux.HandleFunc("POST /auth/forgot-password", s.handleForgotPassword)
	mux.HandleFunc("POST /auth/reset-password", s.handleResetPassword)
	// Without these the short spellings would fall through to the
	// catch-all page handler and answer 200 instead of 404.
	mux.HandleFunc("POST /auth/forgot", http.NotFound)
	mux.HandleFunc("POST /auth/reset", http.NotFound)

	mux.HandleFunc("POST /leave/submit", s.handleSubmit)
	mux.HandleFunc("GET /leave/my-requests", s.handleMyRequests)
	mux.HandleFunc("GET /leave/pending-approvals", s.handlePendingApprovals)
	mux.HandleFunc("GET /leave/processed-approvals", s.handleProcessedApprovals)
	mux.HandleFunc("POST /leave/{id}/approve", s.handleDecision("approved"))
	mux.HandleFunc("POST /leave/{id}/reject", s.handleDecision("rejected"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError mirrors the FastAPI error shape the client's message
// priority expects.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

type userRow struct {
	ID         int64
	Username   string
	Email      string
	Hash       string
	FullName   string
	Role       string
	Department string
	IsManager  bool
	IsHR       bool
}

func (s *Server) userBy(field, value string) (*userRow, error) {
	// field is always a compile-time constant column name.
	row := s.db.QueryRow(fmt.Sprintf(
		`SELECT id, username, email, password_hash, full_name, role, department, is_manager, is_hr
		 FROM users WHERE %s = ?`, field), value)
	var u userRow
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Hash, &u.FullName, &u.Role, &u.Department, &u.IsManager, &u.IsHR)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// currentUser resolves the bearer token, or writes a 401 and returns
// false.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*userRow, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}

	var userID int64
	var expires time.Time
	err := s.db.QueryRow(
		`SELECT user_id, expires_at FROM tokens WHERE token = ?`, token,
	).Scan(&userID, &expires)
	if err != nil || time.Now().After(expires) {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}

	u, err := s.userBy("id", strconv.FormatInt(userID, 10))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return nil, false
	}
	return u, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username   string `json:"username"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		FullName   string `json:"full_name"`
		Department string `json:"department"`
		Role       string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	role := req.Role
	if role == "" {
		role = "employee"
	}
	isManager := role == "manager"

	res, err := s.db.Exec(
		`INSERT INTO users (username, email, password_hash, full_name, role, department, is_manager)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.Username, req.Email, string(hash), req.FullName, role, orDefault(req.Department, "General"), isManager,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, "username or email already registered")
		return
	}

	id, _ := res.LastInsertId()
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":       strconv.FormatInt(id, 10),
		"username": req.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	// The production backend takes OAuth2-style form fields, so the dev
	// one does too; ParseMultipartForm also accepts urlencoded bodies
	// via FormValue.
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	u, err := s.userBy("username", username)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		writeError(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	token := uuid.NewString()
	if _, err := s.db.Exec(
		`INSERT INTO tokens (user_id, token, expires_at) VALUES (?, ?, ?)`,
		u.ID, token, time.Now().Add(tokenTTL),
	); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         strconv.FormatInt(u.ID, 10),
		"username":   u.Username,
		"email":      u.Email,
		"full_name":  u.FullName,
		"role":       u.Role,
		"department": u.Department,
		"is_manager": u.IsManager,
		"is_hr":      u.IsHR,
	})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email required")
		return
	}

	// Respond identically whether or not the account exists.
	if _, err := s.userBy("email", req.Email); err == nil {
		otp := newOTP()
		s.db.Exec(`INSERT INTO reset_codes (email, otp, expires_at) VALUES (?, ?, ?)`,
			req.Email, otp, time.Now().Add(10*time.Minute))
		// Dev mode has no mailer; the code goes to the server log.
		log.Info().Str("email", req.Email).Str("otp", otp).Msg("password reset code issued")
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "If the account exists, a reset code has been sent"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "email, otp and new_password are required")
		return
	}

	var id int64
	err := s.db.QueryRow(
		`SELECT id FROM reset_codes
		 WHERE email = ? AND otp = ? AND used = 0 AND expires_at > ?`,
		req.Email, req.OTP, time.Now(),
	).Scan(&id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired reset code")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.db.Exec(`UPDATE reset_codes SET used = 1 WHERE id = ?`, id)
	s.db.Exec(`UPDATE users SET password_hash = ? WHERE email = ?`, string(hash), req.Email)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func newOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
