// Package token inspects bearer tokens held by the client. The client never
// verifies signatures (it does not know the server key); it only reads the
// expiry claim to avoid sending requests that are guaranteed to be rejected.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether the token's exp claim is at or before now.
// Any token that cannot be decoded is treated as expired: an undecodable
// token must never be treated as valid.
func Expired(tokenString string, now time.Time) bool {
	parser := jwt.NewParser()

	parsed, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return !now.Before(exp.Time)
}

// ExpiredNow is Expired against the wall clock.
func ExpiredNow(tokenString string) bool {
	return Expired(tokenString, time.Now())
}
