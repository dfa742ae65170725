package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/accountd/internal/common"
)

type memoryUser struct {
	email        string
	passwordHash string
	isActive     bool
	isAdmin      bool
	firstName    *string
	lastName     *string
	avatar       *string
}

// MemoryRepository is a map-backed Repository. Used in tests and local
// development without a database.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*memoryUser
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, users: make(map[int64]*memoryUser)}
}

func (r *MemoryRepository) info(id int64, u *memoryUser) *UserInfoWithActivation {
	return &UserInfoWithActivation{
		UserInfo: UserInfo{
			UserID:  id,
			Email:   u.email,
			IsAdmin: u.isAdmin,
			Profile: Profile{FirstName: u.firstName, LastName: u.lastName, Avatar: u.avatar},
		},
		IsActive: u.isActive,
	}
}

func (r *MemoryRepository) findByEmail(email string) (int64, *memoryUser) {
	for id, u := range r.users {
		if u.email == email {
			return id, u
		}
	}
	return 0, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, userID int64) (*UserInfoWithActivation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.info(userID, u), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*Credentials, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, u := r.findByEmail(email)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	return &Credentials{UserID: id, PasswordHash: u.passwordHash, IsActive: u.isActive}, nil
}

func (r *MemoryRepository) GetInfoByEmail(_ context.Context, email string) (*UserInfoWithActivation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, u := r.findByEmail(email)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	return r.info(id, u), nil
}

func (r *MemoryRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, u := r.findByEmail(email)
	return u != nil, nil
}

func (r *MemoryRepository) InsertUserWithProfile(_ context.Context, reg *Registration) (*UserInfoWithActivation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, u := r.findByEmail(reg.Email); u != nil {
		return nil, common.ErrUserAlreadyExists
	}

	id := r.nextID
	r.nextID++
	u := &memoryUser{
		email:        reg.Email,
		passwordHash: reg.PasswordHash,
		firstName:    reg.FirstName,
		lastName:     reg.LastName,
	}
	r.users[id] = u
	return r.info(id, u), nil
}

func (r *MemoryRepository) UpdateProfileFields(_ context.Context, userID int64, update ProfileUpdate) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if update.FirstName != nil {
		u.firstName = update.FirstName
	}
	if update.LastName != nil {
		u.lastName = update.LastName
	}
	return &Profile{FirstName: u.firstName, LastName: u.lastName, Avatar: u.avatar}, nil
}

func (r *MemoryRepository) SetActive(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.isActive = true
	return nil
}

func (r *MemoryRepository) SetPasswordHash(_ context.Context, userID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.passwordHash = passwordHash
	return nil
}

func (r *MemoryRepository) SetAvatarRef(_ context.Context, userID int64, avatarRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.avatar = &avatarRef
	return nil
}

// Seed inserts a user record directly, bypassing uniqueness checks. Test
// helper.
func (r *MemoryRepository) Seed(userID int64, email string, isActive bool, firstName *string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[userID] = &memoryUser{email: email, isActive: isActive, firstName: firstName}
	if userID >= r.nextID {
		r.nextID = userID + 1
	}
}

// Remove deletes a user record directly. Test helper.
func (r *MemoryRepository) Remove(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, userID)
}
