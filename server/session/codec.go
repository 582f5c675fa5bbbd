// Package session signs and verifies the session cookie. The cookie carries
// only the user id; the user record itself stays in the user store.
package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "expenses session cookie v1"

type Codec struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
}

type Option func(*Codec)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec derives the HS256 signing key from secret with HKDF-SHA256.
func NewCodec(secret string, maxAge time.Duration, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("[session NewCodec] secret is required")
	}
	if maxAge <= 0 {
		return nil, errors.New("[session NewCodec] max age must be positive")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("[session NewCodec] failed to derive key: %w", err)
	}

	c := &Codec{key: key, maxAge: maxAge, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Codec) MaxAge() time.Duration {
	return c.maxAge
}

// Encode returns a signed cookie value for userID.
func (c *Codec) Encode(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("[session Encode] user id is required")
	}
	now := c.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("[session Encode] %w", err)
	}
	return signed, nil
}

// Decode verifies value and returns the user id it carries.
func (c *Codec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims,
		func(*jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrSessionExpired
		}
		return "", fmt.Errorf("%w: %w", apperrors.ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return "", apperrors.ErrInvalidSession
	}
	return claims.Subject, nil
}
