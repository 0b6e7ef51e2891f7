package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/checkfit/checkfit/internal/model"
)

// Token verification errors.
var (
	// ErrInvalidToken indicates the token is malformed or its signature is wrong.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates the token is well-formed but past its expiry.
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the JWT claims carried by both access and refresh tokens.
// The subject is the user ID.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256-signed JWTs.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccessToken creates a short-lived access token for the user.
func (m *TokenManager) IssueAccessToken(userID string, role model.Role) (string, error) {
	return m.issue(userID, role, m.accessTTL)
}

// IssueRefreshToken creates a long-lived refresh token for the user.
// Refresh tokens carry the same claims as access tokens; rotation is
// stateless, so an old refresh token stays verifiable until it expires.
func (m *TokenManager) IssueRefreshToken(userID string, role model.Role) (string, error) {
	return m.issue(userID, role, m.refreshTTL)
}

func (m *TokenManager) issue(userID string, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
