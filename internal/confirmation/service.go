// Package confirmation generates and verifies short-lived one-time codes
// used to prove control of an email address during activation and password
// reset.
package confirmation

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accountd/internal/cache"
	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/dmitrijs2005/accountd/internal/config"
)

// Service stores at most one live code per user in the KV cache. Issuing a
// new code silently replaces the previous one; expiry is enforced by the
// cache TTL.
type Service struct {
	cache      cache.Cache
	codeLength int
	codeTTL    time.Duration
}

func NewService(c cache.Cache, cfg *config.Config) *Service {
	return &Service{
		cache:      c,
		codeLength: cfg.ConfirmationCodeLength,
		codeTTL:    cfg.ConfirmationCodeTTL,
	}
}

// CodeTTL is the lifetime of an issued code, exposed so notification
// payloads can report it to the recipient.
func (s *Service) CodeTTL() time.Duration {
	return s.codeTTL
}

// Issue generates a fixed-length decimal code for userID and stores it under
// the per-user key, overwriting any code issued earlier.
func (s *Service) Issue(ctx context.Context, userID int64) (string, error) {
	code, err := common.MakeRandDigitString(s.codeLength)
	if err != nil {
		return "", fmt.Errorf("error generating confirmation code: %w", err)
	}

	if err := s.cache.Set(ctx, cache.UserCodeKey(userID), []byte(code), s.codeTTL); err != nil {
		return "", fmt.Errorf("error storing confirmation code: %w", err)
	}

	return code, nil
}

// Verify reports whether code matches the live code for userID. A cache miss
// (expired or never issued) or mismatch yields false. Verification does not
// consume the code: it stays valid until its TTL elapses or a new code is
// issued.
func (s *Service) Verify(ctx context.Context, userID int64, code string) (bool, error) {
	cached, err := s.cache.Get(ctx, cache.UserCodeKey(userID))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error reading confirmation code: %w", err)
	}

	return subtle.ConstantTimeCompare(cached, []byte(code)) == 1, nil
}
