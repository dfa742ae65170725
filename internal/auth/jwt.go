// Package auth provides session-token issuance/validation and password
// hashing for the account service.
package auth

import (
	"time"

	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes the two kinds of session tokens. Endpoints that
// expect one kind must reject the other.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the claim set carried by every session token: the standard
// registered claims (expiry) plus the user id and the token type.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64     `json:"user_id"`
	TokenType TokenType `json:"token_type"`
}

// GenerateToken builds a signed HS256 token for userID with the given type
// and validity duration.
func GenerateToken(userID int64, tokenType TokenType, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:    userID,
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the signature and claims of tokenString and
// returns the embedded user id. Any failure — bad signature, malformed
// claims, elapsed expiry, or a token_type different from expectedType —
// yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, expectedType TokenType, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	if !token.Valid || claims.TokenType != expectedType {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
