package users

import "context"

// Repository is the durable-store port for the user+profile aggregate. Each
// method is a single logical unit of work against the two related records.
//
// Implementations return common.ErrorNotFound when the user id or email does
// not exist, and common.ErrUserAlreadyExists when an insert collides with the
// email uniqueness constraint.
type Repository interface {
	// GetByID loads the joined user+profile projection.
	GetByID(ctx context.Context, userID int64) (*UserInfoWithActivation, error)

	// GetByEmail loads the credential view used by login.
	GetByEmail(ctx context.Context, email string) (*Credentials, error)

	// GetInfoByEmail loads the joined user+profile projection by email.
	GetInfoByEmail(ctx context.Context, email string) (*UserInfoWithActivation, error)

	// ExistsByEmail reports whether a user with the email already exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// InsertUserWithProfile creates the user and its (possibly empty)
	// profile in one transaction. The new user starts inactive.
	InsertUserWithProfile(ctx context.Context, reg *Registration) (*UserInfoWithActivation, error)

	// UpdateProfileFields overwrites the non-nil profile fields and returns
	// the resulting profile.
	UpdateProfileFields(ctx context.Context, userID int64, update ProfileUpdate) (*Profile, error)

	SetActive(ctx context.Context, userID int64) error
	SetPasswordHash(ctx context.Context, userID int64, passwordHash string) error
	SetAvatarRef(ctx context.Context, userID int64, avatarRef string) error
}
