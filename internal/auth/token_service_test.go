package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/dmitrijs2005/accountd/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewTokenService(cfg)
}

func TestTokenService_IssueSession_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t)

	pair, err := s.IssueSession(42)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, int64(3600), pair.AccessExpiresIn)
	assert.Equal(t, int64(7200), pair.RefreshExpiresIn)

	userID, err := s.Validate(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	userID, err = s.Validate(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenService_Validate_RejectsCrossedTypes(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t)

	pair, err := s.IssueSession(42)
	require.NoError(t, err)

	_, err = s.Validate(pair.AccessToken, TokenTypeRefresh)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = s.Validate(pair.RefreshToken, TokenTypeAccess)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTokenService_RefreshToAccess(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t)

	pair, err := s.IssueSession(7)
	require.NoError(t, err)

	access, err := s.RefreshToAccess(pair.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, access)

	userID, err := s.Validate(access.Token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	// Refreshing does not retire the refresh token.
	_, err = s.Validate(pair.RefreshToken, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestTokenService_RefreshToAccess_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t)

	pair, err := s.IssueSession(7)
	require.NoError(t, err)

	_, err = s.RefreshToAccess(pair.AccessToken)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
