// ABOUTME: Session and user records shared by the store, auth service, and guard
// ABOUTME: Reads token expiry from unverified JWT claims

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated user's profile as returned by the backend
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the durable (token, user) pair for the logged-in identity
type Session struct {
	Token string
	User  User
}

// ExpiresAt returns the exp claim of the bearer token.
// The signature is not verified; the backend remains the authority.
// ok is false when the token is not a JWT or carries no exp claim.
func (s *Session) ExpiresAt() (t time.Time, ok bool) {
	if s == nil || s.Token == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token's exp claim is at or before now.
// Tokens without a readable expiry never expire locally.
func (s *Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	if !ok {
		return false
	}
	return !now.Before(exp)
}
