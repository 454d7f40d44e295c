package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/netdash/netdash/internal/mockapi"
	"github.com/netdash/netdash/internal/model"
)

// These tests run the real client against the mock backend, covering the
// full login / token / inventory round trip.

func newMockBackendClient(t *testing.T) *Client {
	t.Helper()
	router, err := mockapi.NewRouter("12345678901234567890123456789012", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, nil)
}

func TestLoginAndFetchRoundTrip(t *testing.T) {
	client := newMockBackendClient(t)
	ctx := context.Background()

	resp, err := client.Login(ctx, "admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.Role != model.RoleAdministrator {
		t.Errorf("role = %q, want administrator", resp.User.Role)
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type = %q, want bearer", resp.TokenType)
	}

	client.SetTokenSource(func() string { return resp.AccessToken })

	devices, err := client.Devices(ctx)
	if err != nil {
		t.Fatalf("devices: %v", err)
	}
	if len(devices) == 0 {
		t.Error("expected seeded devices")
	}

	me, err := client.Me(ctx)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Username != "admin" {
		t.Errorf("me = %q, want admin", me.Username)
	}
}

func TestLoginRejectionMessage(t *testing.T) {
	client := newMockBackendClient(t)

	_, err := client.Login(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("expected login rejection")
	}
	if err.Error() != "Invalid username or password" {
		t.Errorf("error = %q, want invalid-credentials message", err)
	}
}

func TestViewerForbiddenFromUserAdmin(t *testing.T) {
	client := newMockBackendClient(t)
	ctx := context.Background()

	resp, err := client.Login(ctx, "viewer", "secret")
	if err != nil {
		t.Fatal(err)
	}
	client.SetTokenSource(func() string { return resp.AccessToken })

	_, err = client.Users(ctx)
	if err == nil {
		t.Fatal("expected 403 for viewer")
	}
	if err.Error() != "Not enough permissions" {
		t.Errorf("error = %q, want backend detail surfaced", err)
	}
}

func TestUnauthenticatedFetchFiresHook(t *testing.T) {
	client := newMockBackendClient(t)

	var fired bool
	client.SetUnauthorizedHook(func() { fired = true })

	_, err := client.Devices(context.Background())
	if err == nil {
		t.Fatal("expected 401")
	}
	if !fired {
		t.Error("expected unauthorized hook to fire")
	}
}

func TestUserLifecycleThroughClient(t *testing.T) {
	client := newMockBackendClient(t)
	ctx := context.Background()

	resp, err := client.Login(ctx, "admin", "secret")
	if err != nil {
		t.Fatal(err)
	}
	client.SetTokenSource(func() string { return resp.AccessToken })

	created, err := client.CreateUser(ctx, "operator1", "changeme", model.RoleOperator)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	users, err := client.Users(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 3 {
		t.Errorf("users = %d, want 3", len(users))
	}

	if err := client.ChangePassword(ctx, created.ID, "newsecret"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if err := client.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	users, err = client.Users(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Errorf("users = %d after delete, want 2", len(users))
	}
}
