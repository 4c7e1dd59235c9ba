// Package api is the remote access layer: a thin client over the
// backend REST surface. It attaches the bearer token, normalizes error
// shapes into a single typed error, and does no caching and no retries
// beyond the password-reset fallback path.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"leaveboard/internal/domain"
)

// Error is the only failure shape surfaced to callers. Status is the
// HTTP status code, or 0 for a transport failure that never produced a
// response. Branch on Status, not on the message text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsStatus reports whether err is an *Error carrying the given HTTP
// status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// TokenFunc yields the current bearer token, or "" when the session is
// unauthenticated.
type TokenFunc func() string

// Client talks to the leave backend. The zero value is not usable; use
// New.
type Client struct {
	base  string
	http  *http.Client
	token TokenFunc
}

// New returns a client rooted at base. Every call carries a bounded
// timeout so an unresponsive backend cannot wedge a page indefinitely.
func New(base string, token TokenFunc) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: 15 * time.Second},
		token: token,
	}
}

// TokenResponse is the login reply.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Credentials are the login form fields.
type Credentials struct {
	Username string
	Password string
}

// Registration is the account-creation payload.
type Registration struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// LeaveSubmission is the create-request payload.
type LeaveSubmission struct {
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason"`
	ManagerEmail string `json:"manager_email"`
}

// Login exchanges credentials for a token. The backend expects
// multipart form fields, unlike every other write which is JSON.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("username", creds.Username)
	_ = w.WriteField("password", creds.Password)
	if err := w.Close(); err != nil {
		return nil, &Error{Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/login", &buf)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out TokenResponse
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. The caller is responsible for the
// follow-up auto-login.
func (c *Client) Register(ctx context.Context, r Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", r, nil)
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SendPasswordResetCode asks the backend to mail a one-time code. Older
// deployments expose the route under a longer name; a 404 on the
// primary path retries the alternate one.
func (c *Client) SendPasswordResetCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.withFallback(ctx, "/auth/forgot", "/auth/forgot-password", body)
}

// ResetPassword redeems a one-time code for a new password, with the
// same dual-path tolerance as SendPasswordResetCode.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "new_password": newPassword}
	return c.withFallback(ctx, "/auth/reset", "/auth/reset-password", body)
}

// SubmitLeave creates a leave request.
func (c *Client) SubmitLeave(ctx context.Context, s LeaveSubmission) error {
	return c.do(ctx, http.MethodPost, "/leave/submit", s, nil)
}

// MyRequests lists the caller's own leave requests.
func (c *Client) MyRequests(ctx context.Context) ([]domain.LeaveRequest, error) {
	return c.list(ctx, "/leave/my-requests")
}

// PendingApprovals lists requests awaiting the caller's decision.
func (c *Client) PendingApprovals(ctx context.Context) ([]domain.LeaveRequest, error) {
	return c.list(ctx, "/leave/pending-approvals")
}

// ProcessedApprovals lists requests the caller has already decided.
func (c *Client) ProcessedApprovals(ctx context.Context) ([]domain.LeaveRequest, error) {
	return c.list(ctx, "/leave/processed-approvals")
}

// Approve marks a request approved, with optional reviewer comments.
func (c *Client) Approve(ctx context.Context, id, comments string) error {
	return c.do(ctx, http.MethodPost, "/leave/"+id+"/approve", map[string]string{"comments": comments}, nil)
}

// Reject marks a request rejected, with optional reviewer comments.
func (c *Client) Reject(ctx context.Context, id, comments string) error {
	return c.do(ctx, http.MethodPost, "/leave/"+id+"/reject", map[string]string{"comments": comments}, nil)
}

func (c *Client) list(ctx context.Context, path string) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.LeaveRequest{}
	}
	return out, nil
}

func (c *Client) withFallback(ctx context.Context, primary, alternate string, body any) error {
	err := c.do(ctx, http.MethodPost, primary, body, nil)
	if IsStatus(err, http.StatusNotFound) {
		return c.do(ctx, http.MethodPost, alternate, body, nil)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: err.Error()}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: err.Error()}
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw, isJSON)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if !isJSON {
		if s, ok := out.(*string); ok {
			*s = string(raw)
			return nil
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: err.Error()}
	}
	return nil
}

// errorMessage picks the most specific human-readable message a failed
// response offers: a JSON "detail" field, then a raw text body, then a
// JSON "message" field, then a generic status line.
func errorMessage(status int, raw []byte, isJSON bool) string {
	if isJSON {
		var payload struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &payload); err == nil {
			if payload.Detail != "" {
				return payload.Detail
			}
			if payload.Message != "" {
				return payload.Message
			}
		}
	} else if s := strings.TrimSpace(string(raw)); s != "" {
		return s
	}
	return fmt.Sprintf("HTTP error, status %d", status)
}
