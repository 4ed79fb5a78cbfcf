// Package token issues and verifies the signed session tokens presented on
// every authenticated request. Tokens are HS256 JWTs embedding the user id,
// username and email, with a configurable expiry (default 7 days).
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissing = errors.New("token: missing token")
	ErrExpired = errors.New("token: token expired")
	ErrInvalid = errors.New("token: invalid token")
)

// Claims is the identity embedded in a session token. After verification it
// acts as the request's acting-user context.
type Claims struct {
	UserId   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	expiry time.Duration
}

func NewService(secret string, expiry time.Duration) *Service {
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}
	return &Service{secret: []byte(secret), expiry: expiry}
}

// Generate signs a fresh token for the given identity.
func (s *Service) Generate(userId uuid.UUID, username, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserId:   userId,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: signing: %w", err)
	}
	return signed, nil
}

// Refresh issues a new token with a fresh expiry from already-verified
// claims, without re-checking the password.
func (s *Service) Refresh(claims *Claims) (string, error) {
	return s.Generate(claims.UserId, claims.Username, claims.Email)
}

// Verify parses and validates a token string and returns the embedded claims.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrMissing
	}

	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("token: unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	if claims.UserId == uuid.Nil {
		return nil, ErrInvalid
	}
	return claims, nil
}
