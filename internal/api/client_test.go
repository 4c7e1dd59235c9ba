package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leaveboard/internal/api"
)

func noToken() string { return "" }

func TestLoginSendsMultipartForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("expected multipart form, got %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.FormValue("username") != "jordan" || r.FormValue("password") != "secret" {
			t.Errorf("unexpected form values: %v", r.MultipartForm.Value)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123"}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, noToken)
	resp, err := c.Login(context.Background(), api.Credentials{Username: "jordan", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken != "tok-123" {
		t.Errorf("access token = %q; want tok-123", resp.AccessToken)
	}
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, func() string { return "tok-456" })
	if _, err := c.MyRequests(context.Background()); err != nil {
		t.Fatalf("my requests: %v", err)
	}
	if got != "Bearer tok-456" {
		t.Errorf("Authorization = %q; want Bearer tok-456", got)
	}

	c = api.New(srv.URL, noToken)
	if _, err := c.MyRequests(context.Background()); err != nil {
		t.Fatalf("my requests: %v", err)
	}
	if got != "" {
		t.Errorf("Authorization = %q; want header omitted", got)
	}
}

func TestErrorMessagePriority(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"detail field wins", "application/json", `{"detail":"token expired","message":"other"}`, "token expired"},
		{"raw text body", "text/plain", "upstream unavailable", "upstream unavailable"},
		{"message field", "application/json", `{"message":"try later"}`, "try later"},
		{"generic fallback json", "application/json", `{}`, "HTTP error, status 500"},
		{"generic fallback empty", "text/plain", "", "HTTP error, status 500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := api.New(srv.URL, noToken)
			_, err := c.MyRequests(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.want {
				t.Errorf("message = %q; want %q", err.Error(), tc.want)
			}
			if !api.IsStatus(err, http.StatusInternalServerError) {
				t.Errorf("expected status 500 on error, got %#v", err)
			}
		})
	}
}

func TestPasswordResetFallsBackOn404(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/auth/forgot" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"sent"}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, noToken)
	if err := c.SendPasswordResetCode(context.Background(), "a@b.co"); err != nil {
		t.Fatalf("send reset code: %v", err)
	}
	want := []string{"/auth/forgot", "/auth/forgot-password"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("paths = %v; want %v", paths, want)
	}
}

func TestPasswordResetNoFallbackOnOtherErrors(t *testing.T) {
	// A 500 whose message happens to contain "404" must not trigger the
	// alternate path; the fallback keys on the status code.
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"upstream replied 404"}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, noToken)
	err := c.SendPasswordResetCode(context.Background(), "a@b.co")
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d; want 1 (no fallback)", calls)
	}
}

func TestListDecodesAndDefaultsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/leave/my-requests":
			w.Write([]byte(`[{"_id":"42","leave_type":"annual","start_date":"2026-03-02","end_date":"2026-03-04","status":"approved","days":3}]`))
		default:
			w.Write([]byte(`null`))
		}
	}))
	defer srv.Close()

	c := api.New(srv.URL, noToken)

	reqs, err := c.MyRequests(context.Background())
	if err != nil {
		t.Fatalf("my requests: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Key() != "42" || reqs[0].Days != 3 {
		t.Errorf("unexpected decode: %+v", reqs)
	}

	pending, err := c.PendingApprovals(context.Background())
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if pending == nil || len(pending) != 0 {
		t.Errorf("null body should decode to an empty list, got %#v", pending)
	}
}

func TestApproveAndRejectPostComments(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, noToken)
	if err := c.Approve(context.Background(), "42", "looks fine"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if gotPath != "/leave/42/approve" {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.Contains(gotBody, `"comments":"looks fine"`) {
		t.Errorf("body = %q", gotBody)
	}

	if err := c.Reject(context.Background(), "7", ""); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if gotPath != "/leave/7/reject" {
		t.Errorf("path = %q", gotPath)
	}
}
