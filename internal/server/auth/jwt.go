// Package auth issues and validates the HS256 access tokens carried as
// bearer tokens by API clients. Tokens reference a server-side session row,
// which keeps them revocable despite being stateless to verify.
package auth

import (
	"errors"
	"time"

	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session reference and the user's role alongside the
// registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string      `json:"uid"`
	SessionID string      `json:"sid"`
	Role      common.Role `json:"role"`
}

// GenerateToken mints a signed access token bound to a user and session.
func GenerateToken(userID, sessionID string, role common.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates the signature and expiry and returns the claims.
// Expired tokens map to common.ErrTokenExpired, everything else invalid to
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
