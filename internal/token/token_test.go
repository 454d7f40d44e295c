package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("12345678901234567890123456789012")

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(testSecret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

// handMade builds a structurally valid token with an arbitrary payload so we
// can exercise claims the jwt library would refuse to produce.
func handMade(payload string) string {
	enc := base64.RawURLEncoding.EncodeToString
	header := enc([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + enc([]byte(payload)) + "." + enc([]byte("sig"))
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   string
		expired bool
	}{
		{
			name:    "future expiry",
			token:   signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}),
			expired: false,
		},
		{
			name:    "past expiry",
			token:   signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			expired: true,
		},
		{
			name:    "expiry exactly now",
			token:   signedToken(t, jwt.MapClaims{"exp": now.Unix()}),
			expired: true,
		},
		{
			name:    "empty string",
			token:   "",
			expired: true,
		},
		{
			name:    "garbage",
			token:   "not-a-token",
			expired: true,
		},
		{
			name:    "two segments",
			token:   "abc.def",
			expired: true,
		},
		{
			name:    "invalid base64 payload",
			token:   "abc.!!!.def",
			expired: true,
		},
		{
			name:    "payload not json",
			token:   handMade("this is not json"),
			expired: true,
		},
		{
			name:    "missing exp claim",
			token:   handMade(`{"sub":"user"}`),
			expired: true,
		},
		{
			name:    "non-numeric exp claim",
			token:   handMade(`{"exp":"tomorrow"}`),
			expired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expired(tt.token, now); got != tt.expired {
				t.Errorf("Expired() = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestExpiredIgnoresSignature(t *testing.T) {
	// The client cannot verify signatures; a token signed with a different
	// key but carrying a future expiry must still read as unexpired.
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("some-other-key-the-client-never-sees"))
	if err != nil {
		t.Fatal(err)
	}
	if Expired(s, now) {
		t.Error("expected unexpired token despite unverifiable signature")
	}
}
