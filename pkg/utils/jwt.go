package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenLifetime     = 60 * time.Minute
	RefreshTokenLifetime    = 7 * 24 * time.Hour
	ExtendedRefreshLifetime = 30 * 24 * time.Hour
)

type Claims struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func newToken(accountID uuid.UUID, role, tokenType string, lifetime time.Duration) (string, error) {
	claims := &Claims{
		AccountID: accountID.String(),
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func CreateAccessToken(accountID uuid.UUID, role string) (string, error) {
	return newToken(accountID, role, TokenTypeAccess, AccessTokenLifetime)
}

// CreateRefreshToken extends the lifetime to 30 days when rememberMe is set.
func CreateRefreshToken(accountID uuid.UUID, role string, rememberMe bool) (string, error) {
	lifetime := RefreshTokenLifetime
	if rememberMe {
		lifetime = ExtendedRefreshLifetime
	}
	return newToken(accountID, role, TokenTypeRefresh, lifetime)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtKey, nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateRefreshToken rejects access tokens presented as refresh tokens.
func ValidateRefreshToken(tokenString string) (*Claims, error) {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
