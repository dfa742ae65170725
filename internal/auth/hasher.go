package auth

import "golang.org/x/crypto/bcrypt"

// Hasher is a one-way password hashing scheme. The salt is generated per
// call and embedded in the output, so no separate salt storage is needed.
type Hasher interface {
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A malformed hash fails
	// closed: the result is false, never an error that could bypass a check.
	Verify(password string, hash string) bool
}

// BcryptHasher implements Hasher with bcrypt at the default cost.
type BcryptHasher struct{}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
