package auth

import (
	"time"

	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/dmitrijs2005/accountd/internal/config"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token, each with its remaining validity in seconds.
type TokenPair struct {
	AccessToken      string
	AccessExpiresIn  int64
	RefreshToken     string
	RefreshExpiresIn int64
}

// AccessToken is a freshly minted access token with its validity in seconds.
type AccessToken struct {
	Token     string
	ExpiresIn int64
}

// TokenService issues and validates signed session tokens. It is a pure
// computation over the process-wide signing key: no I/O, no mutable state,
// safe for unlimited concurrent use.
type TokenService struct {
	secretKey       []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

// NewTokenService constructs a TokenService from server config.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secretKey:       []byte(cfg.SecretKey),
		accessValidity:  cfg.AccessTokenValidityDuration,
		refreshValidity: cfg.RefreshTokenValidityDuration,
	}
}

// IssueSession mints an independent access/refresh token pair for userID.
func (s *TokenService) IssueSession(userID int64) (*TokenPair, error) {
	access, err := GenerateToken(userID, TokenTypeAccess, s.secretKey, s.accessValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refresh, err := GenerateToken(userID, TokenTypeRefresh, s.secretKey, s.refreshValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{
		AccessToken:      access,
		AccessExpiresIn:  int64(s.accessValidity.Seconds()),
		RefreshToken:     refresh,
		RefreshExpiresIn: int64(s.refreshValidity.Seconds()),
	}, nil
}

// Validate verifies tokenString as the expected type and returns the user id
// it asserts. Fails with common.ErrInvalidToken otherwise.
func (s *TokenService) Validate(tokenString string, expectedType TokenType) (int64, error) {
	return GetUserIDFromToken(tokenString, expectedType, s.secretKey)
}

// RefreshToAccess validates a refresh token and mints a new access token for
// the same user. The refresh token itself stays valid until its own expiry;
// sessions are stateless and there is no revocation list.
func (s *TokenService) RefreshToAccess(refreshToken string) (*AccessToken, error) {
	userID, err := s.Validate(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	access, err := GenerateToken(userID, TokenTypeAccess, s.secretKey, s.accessValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AccessToken{Token: access, ExpiresIn: int64(s.accessValidity.Seconds())}, nil
}
