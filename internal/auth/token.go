// Package auth identifies the editorial user behind a request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "admin-edit-comment"

var (
	// ErrInvalidToken is returned for malformed, forged or expired tokens
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnknownUser is returned when a valid token names a user that no longer exists
	ErrUnknownUser = errors.New("unknown user")
)

type claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager signing with secret
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for userID
func (m *TokenManager) Issue(userID int64) (string, error) {
	const op = "auth.token.Issue"

	now := m.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Parse verifies a token and returns the user it was issued for
func (m *TokenManager) Parse(tokenStr string) (int64, error) {
	const op = "auth.token.Parse"

	token, err := jwt.ParseWithClaims(tokenStr, &claims{},
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5*time.Second),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.UserID <= 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return c.UserID, nil
}

// Authenticator resolves bearer tokens into users
type Authenticator struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthenticator creates an Authenticator
func NewAuthenticator(tokens *TokenManager, users repository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate returns the user a token belongs to. Deleted users are rejected.
func (a *Authenticator) Authenticate(ctx context.Context, tokenStr string) (*models.User, error) {
	const op = "auth.Authenticate"

	userID, err := a.tokens.Parse(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownUser)
	}
	return user, nil
}
