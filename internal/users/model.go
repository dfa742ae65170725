// Package users implements the account core: the durable-store port, the
// cache-aside user directory, and the account lifecycle service driving
// registration, activation, login, and password reset.
package users

import "time"

// User is the authoritative account record owned by the durable store.
// IsActive flips exactly once false→true on activation; the password hash is
// mutated only by password reset.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
}

// Profile is the 1:1 companion record of a User, created together with it.
type Profile struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Avatar    *string `json:"avatar"`
}

// UserInfo is the derived User+Profile projection served to clients and
// stored in the KV cache under user_info:<id>. It never carries the password
// hash, and it is always rebuildable from the durable store.
type UserInfo struct {
	UserID  int64   `json:"user_id"`
	Email   string  `json:"email"`
	IsAdmin bool    `json:"is_admin"`
	Profile Profile `json:"profile"`
}

// UserInfoWithActivation extends UserInfo with the activation flag for flows
// that branch on it (resend activation, reset password). The flag is never
// cached.
type UserInfoWithActivation struct {
	UserInfo
	IsActive bool
}

// Credentials is the minimal login view of a user.
type Credentials struct {
	UserID       int64
	PasswordHash string
	IsActive     bool
}

// Registration carries the data needed to create a User+Profile pair. The
// password arrives already hashed; hashing is the lifecycle service's job.
type Registration struct {
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
}

// ProfileUpdate is a partial profile patch; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
}

// Empty reports whether the update would change nothing.
func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil
}
