package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accountd/internal/cache"
	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/dmitrijs2005/accountd/internal/config"
	"github.com/dmitrijs2005/accountd/internal/logging"
)

// Directory is the cache-aside repository combining the KV cache and the
// durable store into one read/write view of user+profile data.
//
// Reads check the cache first and repair it from the store on a miss. Writes
// go to the store first, then refresh or patch the cache before returning,
// so a cache read after a successful write never observes older data. Cache
// failures after a successful store write are logged, never fatal: the next
// cache miss reloads from the store, which is always authoritative.
type Directory struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   logging.Logger
}

func NewDirectory(repo Repository, c cache.Cache, cfg *config.Config, logger logging.Logger) *Directory {
	return &Directory{
		repo:     repo,
		cache:    c,
		cacheTTL: cfg.UserCacheTTL,
		logger:   logger.With("module", "user_directory"),
	}
}

func (d *Directory) cacheGet(ctx context.Context, userID int64) (*UserInfo, bool) {
	raw, err := d.cache.Get(ctx, cache.UserInfoKey(userID))
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			d.logger.Warn(ctx, "user cache read failed", "user_id", userID, "error", err)
		}
		return nil, false
	}

	info := &UserInfo{}
	if err := json.Unmarshal(raw, info); err != nil {
		d.logger.Warn(ctx, "user cache entry corrupt", "user_id", userID, "error", err)
		return nil, false
	}
	return info, true
}

func (d *Directory) cacheSet(ctx context.Context, info *UserInfo) {
	raw, err := json.Marshal(info)
	if err != nil {
		d.logger.Warn(ctx, "user cache encode failed", "user_id", info.UserID, "error", err)
		return
	}
	if err := d.cache.Set(ctx, cache.UserInfoKey(info.UserID), raw, d.cacheTTL); err != nil {
		d.logger.Warn(ctx, "user cache write failed", "user_id", info.UserID, "error", err)
	}
}

// GetUserInfo returns the user projection, serving from the cache when
// possible and repopulating it from the store on a miss.
func (d *Directory) GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error) {
	if info, ok := d.cacheGet(ctx, userID); ok {
		return info, nil
	}

	stored, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	d.cacheSet(ctx, &stored.UserInfo)
	return &stored.UserInfo, nil
}

// GetUserInfoByEmail always reads the durable store (email is not a cache
// key) and opportunistically refreshes the id-keyed cache entry.
func (d *Directory) GetUserInfoByEmail(ctx context.Context, email string) (*UserInfoWithActivation, error) {
	stored, err := d.repo.GetInfoByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	d.cacheSet(ctx, &stored.UserInfo)
	return stored, nil
}

// GetCredentialsByEmail loads the login view straight from the store; the
// password hash is never cached.
func (d *Directory) GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error) {
	creds, err := d.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading credentials: %w", err)
	}
	return creds, nil
}

// Create inserts a new user+profile pair and populates the cache with the
// fresh projection. A duplicate email — caught either by the existence check
// or by the store's uniqueness constraint under a concurrent registration —
// yields common.ErrUserAlreadyExists.
func (d *Directory) Create(ctx context.Context, reg *Registration) (*UserInfo, error) {
	exists, err := d.repo.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, common.ErrUserAlreadyExists
	}

	stored, err := d.repo.InsertUserWithProfile(ctx, reg)
	if err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			return nil, common.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	d.cacheSet(ctx, &stored.UserInfo)
	return &stored.UserInfo, nil
}

// UpdateProfile writes the profile change through to the store, then patches
// the cached projection's profile subfields if an entry exists. The cache is
// not force-populated when absent.
func (d *Directory) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*Profile, error) {
	profile, err := d.repo.UpdateProfileFields(ctx, userID, update)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	if cached, ok := d.cacheGet(ctx, userID); ok {
		cached.Profile = *profile
		d.cacheSet(ctx, cached)
	}
	return profile, nil
}

// Activate flips is_active in the store, then refreshes the cached
// projection.
func (d *Directory) Activate(ctx context.Context, userID int64) error {
	if err := d.repo.SetActive(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error activating user: %w", err)
	}

	d.refreshCache(ctx, userID)
	return nil
}

// ChangePassword overwrites the password hash in the store, then refreshes
// the cached projection.
func (d *Directory) ChangePassword(ctx context.Context, userID int64, passwordHash string) error {
	if err := d.repo.SetPasswordHash(ctx, userID, passwordHash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error changing password: %w", err)
	}

	d.refreshCache(ctx, userID)
	return nil
}

// UpdateAvatar records the new avatar reference in the store, then patches
// the cached projection if an entry exists.
func (d *Directory) UpdateAvatar(ctx context.Context, userID int64, avatarRef string) error {
	if err := d.repo.SetAvatarRef(ctx, userID, avatarRef); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error updating avatar: %w", err)
	}

	if cached, ok := d.cacheGet(ctx, userID); ok {
		cached.Profile.Avatar = &avatarRef
		d.cacheSet(ctx, cached)
	}
	return nil
}

func (d *Directory) refreshCache(ctx context.Context, userID int64) {
	stored, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		d.logger.Warn(ctx, "cache refresh failed", "user_id", userID, "error", err)
		return
	}
	d.cacheSet(ctx, &stored.UserInfo)
}
