// Package auth issues and checks the HS256 tokens that authorize calls to the
// AuthAdmin service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role accepted by ValidateAdminToken.
const RoleAdmin = "admin"

// Claims carries the registered claims plus the caller's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateAdminToken signs an admin token for subject valid for ttl.
func GenerateAdminToken(subject string, secretKey []byte, ttl time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("empty secret key: %w", common.ErrorInvalidInput)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: RoleAdmin,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateAdminToken verifies the signature, expiry and role of tokenString
// and returns its subject.
func ValidateAdminToken(tokenString string, secretKey []byte) (string, error) {
	if len(secretKey) == 0 {
		return "", common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Role != RoleAdmin {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
