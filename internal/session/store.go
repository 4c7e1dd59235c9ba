// Package session owns the authenticated user's identity and token.
// Exactly one Store exists per running client; every page reads it and
// nothing else mutates it.
package session

import (
	"context"
	"sync"

	"leaveboard/internal/api"
	"leaveboard/internal/domain"
)

// Storage keys for the persisted session. The theme preference lives
// under its own key and is not managed here.
const (
	tokenKey = "token"
	userKey  = "userData"
)

// Storage is the durable browser storage the session persists to.
// go-app's BrowserStorage satisfies it in the wasm binary; tests use a
// map-backed fake.
type Storage interface {
	Get(key string, value any) error
	Set(key string, value any) error
	Del(key string)
}

// Backend is the slice of the remote access layer the store needs.
type Backend interface {
	Login(ctx context.Context, creds api.Credentials) (*api.TokenResponse, error)
	Register(ctx context.Context, r api.Registration) error
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// Session is a read-only snapshot of the current authentication state.
// User is nil exactly when Authenticated is false.
type Session struct {
	Authenticated bool
	User          *domain.User
	Token         string
}

// Result is the outcome of a login or registration attempt. Failures
// never escape as errors past this boundary.
type Result struct {
	OK  bool
	Err string
}

// Store holds the session and persists it. Construct with New, then
// Bind the remote access layer once it exists (the api client's token
// source points back at the store, so the two are built in two steps).
type Store struct {
	storage Storage

	mu           sync.RWMutex
	backend      Backend
	token        string
	user         *domain.User
	ready        bool
	initializing bool
}

// New returns an unauthenticated store over the given storage.
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Bind attaches the remote access layer. Must be called before any
// session operation.
func (s *Store) Bind(b Backend) {
	s.mu.Lock()
	s.backend = b
	s.mu.Unlock()
}

// Token returns the in-memory token, falling back to the persisted one
// so that requests issued before Initialize settles still authenticate.
func (s *Store) Token() string {
	s.mu.RLock()
	t := s.token
	s.mu.RUnlock()
	if t != "" {
		return t
	}
	var persisted string
	if err := s.storage.Get(tokenKey, &persisted); err != nil {
		return ""
	}
	return persisted
}

// Ready reports whether Initialize has settled. Guarded pages render a
// neutral loading state until it has.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Session returns the current snapshot.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return Session{}
	}
	u := *s.user
	return Session{Authenticated: true, User: &u, Token: s.token}
}

// Authenticated reports whether a session is active.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns the current user, or nil when unauthenticated.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Initialize revalidates any persisted token against the backend. It
// runs once; later and overlapping calls return immediately. A rejected
// token or a network failure silently clears the persisted session and
// leaves the store unauthenticated.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.ready || s.initializing {
		s.mu.Unlock()
		return
	}
	s.initializing = true
	backend := s.backend
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.ready = true
		s.initializing = false
		s.mu.Unlock()
	}()

	var token string
	if err := s.storage.Get(tokenKey, &token); err != nil || token == "" {
		s.clear()
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := backend.CurrentUser(ctx)
	if err != nil {
		s.clear()
		return
	}
	s.commit(token, user)
}

// Login authenticates and establishes a session.
func (s *Store) Login(ctx context.Context, creds api.Credentials) Result {
	s.mu.RLock()
	backend := s.backend
	s.mu.RUnlock()

	resp, err := backend.Login(ctx, creds)
	if err != nil {
		return Result{Err: err.Error()}
	}

	// Hold the token in memory only until the profile fetch succeeds,
	// so storage never carries a token without its matching user.
	s.mu.Lock()
	s.token = resp.AccessToken
	s.mu.Unlock()

	user, err := backend.CurrentUser(ctx)
	if err != nil {
		s.clear()
		return Result{Err: err.Error()}
	}

	if !s.commit(resp.AccessToken, user) {
		return Result{Err: "failed to persist session"}
	}
	return Result{OK: true}
}

// Register creates an account and then performs the full login flow.
// When registration succeeds but the auto-login does not, the returned
// message says so explicitly: the account exists and a plain sign-in
// should be attempted.
func (s *Store) Register(ctx context.Context, r api.Registration) Result {
	s.mu.RLock()
	backend := s.backend
	s.mu.RUnlock()

	if err := backend.Register(ctx, r); err != nil {
		return Result{Err: err.Error()}
	}

	login := s.Login(ctx, api.Credentials{Username: r.Username, Password: r.Password})
	if !login.OK {
		return Result{Err: "account created, but automatic sign-in failed: " + login.Err + ". Please sign in manually"}
	}
	return Result{OK: true}
}

// Logout clears the persisted and in-memory session. Synchronous,
// idempotent, always succeeds.
func (s *Store) Logout() {
	s.clear()
}

// commit stores the session in memory and persists token and user
// together. A persistence failure rolls both keys back rather than
// leaving one without the other.
func (s *Store) commit(token string, user *domain.User) bool {
	if err := s.storage.Set(tokenKey, token); err != nil {
		s.clear()
		return false
	}
	if err := s.storage.Set(userKey, user); err != nil {
		s.clear()
		return false
	}
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return true
}

func (s *Store) clear() {
	s.storage.Del(tokenKey)
	s.storage.Del(userKey)
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}
