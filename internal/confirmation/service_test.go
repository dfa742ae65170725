package confirmation

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/accountd/internal/cache"
	"github.com/dmitrijs2005/accountd/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{
		ConfirmationCodeLength: 6,
		ConfirmationCodeTTL:    10 * time.Minute,
	}
	return NewService(cache.NewMemoryCache(), cfg)
}

func TestService_IssueThenVerify(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	ctx := context.Background()

	code, err := s.Issue(ctx, 42)
	require.NoError(t, err)
	require.Len(t, code, 6)

	ok, err := s.Verify(ctx, 42, code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_Verify_NonConsuming(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	ctx := context.Background()

	code, err := s.Issue(ctx, 42)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		ok, err := s.Verify(ctx, 42, code)
		require.NoError(t, err)
		assert.True(t, ok, "repeated verification %d should still succeed", i)
	}
}

func TestService_Verify_MismatchAndMiss(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	ctx := context.Background()

	// Never issued.
	ok, err := s.Verify(ctx, 7, "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	code, err := s.Issue(ctx, 7)
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	ok, err = s.Verify(ctx, 7, wrong)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Reissue_InvalidatesPriorCode(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	ctx := context.Background()

	first, err := s.Issue(ctx, 42)
	require.NoError(t, err)

	second, err := s.Issue(ctx, 42)
	require.NoError(t, err)

	if first == second {
		t.Skip("codes collided; cannot distinguish replacement")
	}

	ok, err := s.Verify(ctx, 42, first)
	require.NoError(t, err)
	assert.False(t, ok, "first code must be invalid after reissue")

	ok, err = s.Verify(ctx, 42, second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_Verify_ExpiredCode(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		ConfirmationCodeLength: 6,
		ConfirmationCodeTTL:    10 * time.Millisecond,
	}
	s := NewService(cache.NewMemoryCache(), cfg)
	ctx := context.Background()

	code, err := s.Issue(ctx, 42)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	ok, err := s.Verify(ctx, 42, code)
	require.NoError(t, err)
	assert.False(t, ok)
}
