package utils

import (
	"fmt"
	"strings"
	"time"

	"blend-calendar-api/core/config"
	"blend-calendar-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenClaims are the JWT claims carried by access and refresh tokens.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the given user with the given scope and TTL.
func GenerateToken(userID uuid.UUID, scope string, ttl time.Duration) (string, error) {
	cfg := config.Get()

	claims := &TokenClaims{
		UserID: userID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateAndParseToken verifies the signature and expiry and returns claims.
func ValidateAndParseToken(tokenString string) (*TokenClaims, *errors.AppError) {
	cfg := config.Get()

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})

	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "Token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "Invalid token", err)
	}
	if !token.Valid {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "Invalid token", nil)
	}

	return claims, nil
}

// GetTokenFromHeader extracts the bearer token from the Authorization header.
func GetTokenFromHeader(c echo.Context) (string, *errors.AppError) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", errors.NewAppError(errors.ErrMissingAuthorizationHeader, "Missing Authorization header", nil)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.NewAppError(errors.ErrInvalidTokenFormat, "Authorization header must be Bearer token", nil)
	}

	return parts[1], nil
}
