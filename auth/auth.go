// Package auth provides password hashing and bearer-token identity.
//
// The rest of the service only sees [Principal]; token mechanics stay here.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jacentio/lattice/fault"
	"github.com/jacentio/lattice/model"
)

// bcryptCost matches the cost the original account base was hashed with.
const bcryptCost = 11

// Principal is the authenticated identity performing an operation.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash against a presented password.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Tokens issues and verifies signed bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token issuer/verifier. ttl defaults to one hour.
func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Tokens{secret: secret, ttl: ttl}
}

type claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Sign issues a token for the user. Returns the token and its expiry.
func (t *Tokens) Sign(u *model.User) (string, time.Time, error) {
	exp := time.Now().Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks a presented token and yields the principal.
//
// An absent token is Unauthenticated; an expired or otherwise invalid one is
// Forbidden, matching the transport contract.
func (t *Tokens) Verify(tokenString string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, fault.Unauthenticated("You must be authenticated to proceed")
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, fault.Forbidden("Token expired")
		}
		return Principal{}, fault.Forbidden("You need a valid token to proceed")
	}

	return Principal{
		ID:       c.Subject,
		Username: c.Username,
		IsAdmin:  c.IsAdmin,
	}, nil
}
