// Package avatars handles user avatar uploads: content validation, object
// storage, and linking the stored object to the user profile.
package avatars

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/dmitrijs2005/accountd/internal/logging"
	"github.com/dmitrijs2005/accountd/internal/storage"
	"github.com/dmitrijs2005/accountd/internal/users"
)

// MaxSize is the upload cap in bytes.
const MaxSize = 5 << 20

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type Service struct {
	store     storage.ObjectStore
	directory *users.Directory
	logger    logging.Logger
}

func NewService(store storage.ObjectStore, directory *users.Directory, logger logging.Logger) *Service {
	return &Service{
		store:     store,
		directory: directory,
		logger:    logger.With("module", "avatar_service"),
	}
}

// objectKey derives a stable per-user object name, so a re-upload replaces
// the previous avatar of the same type instead of accumulating objects.
func objectKey(userID int64, ext string) string {
	sum := sha1.Sum([]byte(strconv.FormatInt(userID, 10)))
	return hex.EncodeToString(sum[:]) + ext
}

// SetAvatar validates, stores, and links an avatar image. Only JPEG and PNG
// up to MaxSize are accepted; anything else is a validation error.
func (s *Service) SetAvatar(ctx context.Context, userID int64, data []byte, contentType string) (string, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		return "", common.ErrValidation
	}
	if len(data) == 0 || len(data) > MaxSize {
		return "", common.ErrValidation
	}

	key := objectKey(userID, ext)
	if err := s.store.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("error storing avatar: %w", err)
	}

	if err := s.directory.UpdateAvatar(ctx, userID, key); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "avatar updated", "user_id", userID, "key", key)
	return key, nil
}

// AvatarURL returns a short-lived download URL for the user's current
// avatar. A user without one yields common.ErrorNotFound.
func (s *Service) AvatarURL(ctx context.Context, userID int64) (string, error) {
	info, err := s.directory.GetUserInfo(ctx, userID)
	if err != nil {
		return "", err
	}
	if info.Profile.Avatar == nil {
		return "", common.ErrorNotFound
	}

	url, err := s.store.PresignedGetURL(ctx, *info.Profile.Avatar)
	if err != nil {
		return "", fmt.Errorf("error presigning avatar url: %w", err)
	}
	return url, nil
}
