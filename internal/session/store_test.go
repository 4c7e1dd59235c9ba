package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"leaveboard/internal/api"
	"leaveboard/internal/domain"
)

type fakeStorage struct {
	values  map[string]json.RawMessage
	failSet map[string]bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{values: map[string]json.RawMessage{}, failSet: map[string]bool{}}
}

func (f *fakeStorage) Get(key string, value any) error {
	raw, ok := f.values[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, value)
}

func (f *fakeStorage) Set(key string, value any) error {
	if f.failSet[key] {
		return errors.New("storage full")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[key] = raw
	return nil
}

func (f *fakeStorage) Del(key string) {
	delete(f.values, key)
}

type mockBackend struct {
	loginFn       func(ctx context.Context, creds api.Credentials) (*api.TokenResponse, error)
	registerFn    func(ctx context.Context, r api.Registration) error
	currentUserFn func(ctx context.Context) (*domain.User, error)
}

func (m *mockBackend) Login(ctx context.Context, creds api.Credentials) (*api.TokenResponse, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, creds)
	}
	return &api.TokenResponse{AccessToken: "tok"}, nil
}

func (m *mockBackend) Register(ctx context.Context, r api.Registration) error {
	if m.registerFn != nil {
		return m.registerFn(ctx, r)
	}
	return nil
}

func (m *mockBackend) CurrentUser(ctx context.Context) (*domain.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx)
	}
	return &domain.User{ID: "u1", Username: "jordan"}, nil
}

func newStore(storage *fakeStorage, backend *mockBackend) *Store {
	s := New(storage)
	s.Bind(backend)
	return s
}

func TestLoginSuccessPersistsTokenAndUser(t *testing.T) {
	storage := newFakeStorage()
	backend := &mockBackend{
		loginFn: func(ctx context.Context, creds api.Credentials) (*api.TokenResponse, error) {
			if creds.Username != "jordan" || creds.Password != "pw" {
				t.Errorf("unexpected credentials %+v", creds)
			}
			return &api.TokenResponse{AccessToken: "tok-1"}, nil
		},
		currentUserFn: func(ctx context.Context) (*domain.User, error) {
			return &domain.User{ID: "u1", Username: "jordan", IsManager: true}, nil
		},
	}
	s := newStore(storage, backend)

	res := s.Login(context.Background(), api.Credentials{Username: "jordan", Password: "pw"})
	if !res.OK {
		t.Fatalf("login failed: %s", res.Err)
	}
	if !s.Authenticated() {
		t.Error("store should be authenticated")
	}
	if got := s.User(); got == nil || got.ID != "u1" {
		t.Errorf("user = %+v; want id u1", got)
	}

	var token string
	storage.Get(tokenKey, &token)
	if token != "tok-1" {
		t.Errorf("persisted token = %q; want tok-1", token)
	}
	var user domain.User
	storage.Get(userKey, &user)
	if user.Username != "jordan" {
		t.Errorf("persisted user = %+v", user)
	}
}

func TestLoginFailureSurfacesMessage(t *testing.T) {
	backend := &mockBackend{
		loginFn: func(ctx context.Context, creds api.Credentials) (*api.TokenResponse, error) {
			return nil, &api.Error{Status: 401, Message: "invalid credentials"}
		},
	}
	s := newStore(newFakeStorage(), backend)

	res := s.Login(context.Background(), api.Credentials{})
	if res.OK {
		t.Fatal("login should fail")
	}
	if res.Err != "invalid credentials" {
		t.Errorf("err = %q", res.Err)
	}
	if s.Authenticated() {
		t.Error("store must stay unauthenticated")
	}
}

func TestLoginProfileFetchFailureClearsBothKeys(t *testing.T) {
	storage := newFakeStorage()
	backend := &mockBackend{
		currentUserFn: func(ctx context.Context) (*domain.User, error) {
			return nil, &api.Error{Status: 500, Message: "boom"}
		},
	}
	s := newStore(storage, backend)

	if res := s.Login(context.Background(), api.Credentials{}); res.OK {
		t.Fatal("login should fail")
	}
	if _, ok := storage.values[tokenKey]; ok {
		t.Error("token must not remain persisted")
	}
	if _, ok := storage.values[userKey]; ok {
		t.Error("user must not remain persisted")
	}
}

func TestInitializeRevalidatesPersistedToken(t *testing.T) {
	storage := newFakeStorage()
	storage.Set(tokenKey, "persisted-tok")

	var sawToken string
	backend := &mockBackend{
		currentUserFn: func(ctx context.Context) (*domain.User, error) {
			return &domain.User{ID: "u9"}, nil
		},
	}
	s := newStore(storage, backend)
	sawToken = s.Token() // what the api layer would attach pre-init
	s.Initialize(context.Background())

	if sawToken != "persisted-tok" {
		t.Errorf("pre-init token = %q; want persisted one", sawToken)
	}
	if !s.Ready() || !s.Authenticated() {
		t.Error("store should be ready and authenticated")
	}
	if u := s.User(); u == nil || u.ID != "u9" {
		t.Errorf("user = %+v", u)
	}
}

func TestInitializeRejectedTokenClearsBothKeys(t *testing.T) {
	storage := newFakeStorage()
	storage.Set(tokenKey, "stale")
	storage.Set(userKey, &domain.User{ID: "old"})

	backend := &mockBackend{
		currentUserFn: func(ctx context.Context) (*domain.User, error) {
			return nil, &api.Error{Status: 401, Message: "token expired"}
		},
	}
	s := newStore(storage, backend)
	s.Initialize(context.Background())

	if !s.Ready() {
		t.Error("initialize must settle even on failure")
	}
	if s.Authenticated() {
		t.Error("store must be unauthenticated")
	}
	if _, ok := storage.values[tokenKey]; ok {
		t.Error("token key must be cleared")
	}
	if _, ok := storage.values[userKey]; ok {
		t.Error("user key must be cleared")
	}
}

func TestInitializeWithoutTokenSettlesUnauthenticated(t *testing.T) {
	calls := 0
	backend := &mockBackend{
		currentUserFn: func(ctx context.Context) (*domain.User, error) {
			calls++
			return nil, errors.New("should not be called")
		},
	}
	s := newStore(newFakeStorage(), backend)
	s.Initialize(context.Background())

	if calls != 0 {
		t.Error("no token means no revalidation call")
	}
	if !s.Ready() || s.Authenticated() {
		t.Error("store should settle unauthenticated")
	}
}

func TestInitializeRunsOnce(t *testing.T) {
	storage := newFakeStorage()
	storage.Set(tokenKey, "tok")
	calls := 0
	backend := &mockBackend{
		currentUserFn: func(ctx context.Context) (*domain.User, error) {
			calls++
			return &domain.User{ID: "u1"}, nil
		},
	}
	s := newStore(storage, backend)
	s.Initialize(context.Background())
	s.Initialize(context.Background())

	if calls != 1 {
		t.Errorf("revalidation calls = %d; want 1", calls)
	}
}

func TestInitializeOverlappingCallReturnsImmediately(t *testing.T) {
	storage := newFakeStorage()
	storage.Set(tokenKey, "tok")

	started := make(chan struct{}, 2)
	release := make(chan struct{})
	var calls atomic.Int32
	backend := &mockBackend{
		currentUserFn: func(ctx context.Context) (*domain.User, error) {
			calls.Add(1)
			started <- struct{}{}
			<-release
			return &domain.User{ID: "u1"}, nil
		},
	}
	s := newStore(storage, backend)

	done := make(chan struct{})
	go func() {
		s.Initialize(context.Background())
		close(done)
	}()
	<-started

	// Second call arrives while the first revalidation is still in
	// flight. It must return without issuing another one.
	s.Initialize(context.Background())

	close(release)
	<-done

	if got := calls.Load(); got != 1 {
		t.Errorf("revalidation calls = %d; want 1", got)
	}
	if !s.Ready() || !s.Authenticated() {
		t.Error("store should settle ready and authenticated")
	}
}

func TestRegisterAutoLoginFailureIsDistinguishable(t *testing.T) {
	backend := &mockBackend{
		loginFn: func(ctx context.Context, creds api.Credentials) (*api.TokenResponse, error) {
			return nil, &api.Error{Status: 503, Message: "login unavailable"}
		},
	}
	s := newStore(newFakeStorage(), backend)

	res := s.Register(context.Background(), api.Registration{Username: "new", Password: "pw"})
	if res.OK {
		t.Fatal("register should report failure")
	}
	if res.Err == "login unavailable" {
		t.Error("auto-login failure must be distinguishable from a plain login failure")
	}
	if want := "account created"; !strings.Contains(res.Err, want) {
		t.Errorf("err = %q; should mention %q", res.Err, want)
	}
}

func TestRegisterFailure(t *testing.T) {
	backend := &mockBackend{
		registerFn: func(ctx context.Context, r api.Registration) error {
			return &api.Error{Status: 409, Message: "user already exists"}
		},
	}
	s := newStore(newFakeStorage(), backend)

	res := s.Register(context.Background(), api.Registration{Username: "dup"})
	if res.OK || res.Err != "user already exists" {
		t.Errorf("result = %+v", res)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	storage := newFakeStorage()
	s := newStore(storage, &mockBackend{})
	if res := s.Login(context.Background(), api.Credentials{}); !res.OK {
		t.Fatalf("login: %s", res.Err)
	}

	s.Logout()
	s.Logout()

	if s.Authenticated() {
		t.Error("store must be unauthenticated")
	}
	if len(storage.values) != 0 {
		t.Errorf("storage should be empty, got %v", storage.values)
	}
	if s.Token() != "" {
		t.Errorf("token = %q; want empty", s.Token())
	}
}

func TestCommitIsAtomic(t *testing.T) {
	storage := newFakeStorage()
	storage.failSet[userKey] = true
	s := newStore(storage, &mockBackend{})

	res := s.Login(context.Background(), api.Credentials{})
	if res.OK {
		t.Fatal("login should fail when the user blob cannot be persisted")
	}
	if _, ok := storage.values[tokenKey]; ok {
		t.Error("token must not be persisted without its matching user")
	}
}
