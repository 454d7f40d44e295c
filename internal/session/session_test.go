package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/netdash/netdash/internal/model"
)

// fakeAuth is a scripted login collaborator.
type fakeAuth struct {
	resp  *model.LoginResponse
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*model.LoginResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

// fakeCache is an in-memory credential cache.
type fakeCache struct {
	token  string
	user   *model.User
	clears int
}

func (f *fakeCache) Save(tokenString string, user model.User) error {
	f.token = tokenString
	f.user = &user
	return nil
}

func (f *fakeCache) Load() (string, *model.User, error) {
	return f.token, f.user, nil
}

func (f *fakeCache) Clear() error {
	f.clears++
	f.token = ""
	f.user = nil
	return nil
}

func mintToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func adminUser() *model.User {
	return &model.User{ID: "u-1", Username: "admin", Role: model.RoleAdministrator}
}

func TestNewWithValidCachedCredentials(t *testing.T) {
	cache := &fakeCache{token: mintToken(t, time.Hour), user: adminUser()}
	s, err := New(&fakeAuth{}, cache)
	if err != nil {
		t.Fatal(err)
	}

	state := s.Snapshot()
	if !state.IsAuthenticated {
		t.Error("expected authenticated session from valid cache")
	}
	if state.User == nil || state.User.Username != "admin" {
		t.Errorf("user = %+v, want cached admin", state.User)
	}
	if s.Token() == "" {
		t.Error("expected held token")
	}
}

func TestNewWithExpiredTokenClearsCache(t *testing.T) {
	cache := &fakeCache{token: mintToken(t, -time.Hour), user: adminUser()}
	s, err := New(&fakeAuth{}, cache)
	if err != nil {
		t.Fatal(err)
	}

	state := s.Snapshot()
	if state.IsAuthenticated || state.User != nil {
		t.Errorf("expected unauthenticated session, got %+v", state)
	}
	if cache.clears == 0 {
		t.Error("expected stale credentials to be cleared")
	}
}

func TestNewWithUserButNoToken(t *testing.T) {
	cache := &fakeCache{user: adminUser()}
	s, err := New(&fakeAuth{}, cache)
	if err != nil {
		t.Fatal(err)
	}

	if s.Snapshot().IsAuthenticated {
		t.Error("a user record without a token must not authenticate")
	}
	if cache.clears == 0 {
		t.Error("expected orphaned user record to be cleared")
	}
}

func TestLoginSuccess(t *testing.T) {
	auth := &fakeAuth{resp: &model.LoginResponse{
		AccessToken: mintToken(t, time.Hour),
		TokenType:   "bearer",
		User:        *adminUser(),
	}}
	cache := &fakeCache{}
	s, err := New(auth, cache)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Login(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	state := s.Snapshot()
	if !state.IsAuthenticated || state.IsLoading || state.Error != "" {
		t.Errorf("unexpected state after login: %+v", state)
	}
	if state.User.Role != model.RoleAdministrator {
		t.Errorf("role = %q, want administrator", state.User.Role)
	}
	if cache.token == "" || cache.user == nil {
		t.Error("expected credentials persisted")
	}
}

func TestLoginFailure(t *testing.T) {
	auth := &fakeAuth{err: errors.New("Invalid username or password")}
	s, err := New(auth, &fakeCache{})
	if err != nil {
		t.Fatal(err)
	}

	loginErr := s.Login(context.Background(), "admin", "wrong")
	if loginErr == nil {
		t.Fatal("expected login failure to be returned")
	}

	state := s.Snapshot()
	if state.IsAuthenticated || state.User != nil {
		t.Error("failed login must leave the session unauthenticated")
	}
	if state.IsLoading {
		t.Error("loading flag must clear on failure")
	}
	if state.Error != "Invalid username or password" {
		t.Errorf("error = %q, want collaborator message verbatim", state.Error)
	}
}

func TestLoginFailureLeavesExistingSession(t *testing.T) {
	cache := &fakeCache{token: mintToken(t, time.Hour), user: adminUser()}
	auth := &fakeAuth{err: errors.New("Server error - please try again later.")}
	s, err := New(auth, cache)
	if err != nil {
		t.Fatal(err)
	}

	s.Login(context.Background(), "admin", "secret")

	state := s.Snapshot()
	if !state.IsAuthenticated || state.User == nil {
		t.Error("failed login must leave user and isAuthenticated unchanged")
	}
	if state.Error == "" {
		t.Error("expected error message set")
	}
}

func TestLogout(t *testing.T) {
	cache := &fakeCache{token: mintToken(t, time.Hour), user: adminUser()}
	s, err := New(&fakeAuth{}, cache)
	if err != nil {
		t.Fatal(err)
	}

	s.Logout()

	state := s.Snapshot()
	if state.IsAuthenticated || state.User != nil || state.Error != "" {
		t.Errorf("unexpected state after logout: %+v", state)
	}
	if cache.token != "" || cache.user != nil {
		t.Error("logout must clear persisted credentials")
	}
	if s.Token() != "" {
		t.Error("logout must drop the held token")
	}
}

func TestCheckAuthAfterLogout(t *testing.T) {
	cache := &fakeCache{token: mintToken(t, time.Hour), user: adminUser()}
	s, err := New(&fakeAuth{}, cache)
	if err != nil {
		t.Fatal(err)
	}

	s.Logout()
	s.CheckAuth()

	state := s.Snapshot()
	if state.IsAuthenticated || state.User != nil {
		t.Errorf("CheckAuth after Logout must stay unauthenticated, got %+v", state)
	}
}

func TestCheckAuthPicksUpExternalLogin(t *testing.T) {
	cache := &fakeCache{}
	s, err := New(&fakeAuth{}, cache)
	if err != nil {
		t.Fatal(err)
	}

	// Another process writes fresh credentials.
	cache.Save(mintToken(t, time.Hour), *adminUser())
	s.CheckAuth()

	if !s.Snapshot().IsAuthenticated {
		t.Error("CheckAuth must pick up externally written credentials")
	}
}

func TestSetUser(t *testing.T) {
	s, err := New(&fakeAuth{}, &fakeCache{})
	if err != nil {
		t.Fatal(err)
	}

	s.SetUser(adminUser())
	if state := s.Snapshot(); !state.IsAuthenticated || state.User == nil {
		t.Error("SetUser with a user must authenticate")
	}

	s.SetUser(nil)
	if state := s.Snapshot(); state.IsAuthenticated || state.User != nil {
		t.Error("SetUser(nil) must return to the unauthenticated state")
	}
}

func TestClearError(t *testing.T) {
	auth := &fakeAuth{err: errors.New("boom")}
	s, err := New(auth, &fakeCache{})
	if err != nil {
		t.Fatal(err)
	}

	s.Login(context.Background(), "a", "b")
	s.ClearError()
	if state := s.Snapshot(); state.Error != "" {
		t.Errorf("error = %q, want cleared", state.Error)
	}

	// Idempotent.
	s.ClearError()
	if state := s.Snapshot(); state.Error != "" {
		t.Error("ClearError must be idempotent")
	}
}
