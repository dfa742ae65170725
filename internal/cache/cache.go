// Package cache defines the KV-cache port used for user-info projections and
// confirmation codes, plus its Redis-backed and in-memory implementations.
//
// Cache entries are best-effort accelerants: the durable store is always
// authoritative, and every entry is rebuildable from it.
package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache is a key-value store with per-entry expiry.
//
// Get returns common.ErrorNotFound for a missing or expired key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// UserInfoKey is the cache key of the cached user projection.
func UserInfoKey(userID int64) string {
	return "user_info:" + strconv.FormatInt(userID, 10)
}

// UserCodeKey is the cache key of the live confirmation code.
func UserCodeKey(userID int64) string {
	return "user_code:" + strconv.FormatInt(userID, 10)
}
