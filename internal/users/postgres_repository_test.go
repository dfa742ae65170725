package users

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(db), mock
}

func userInfoColumns() []string {
	return []string{"id", "email", "is_active", "is_admin", "first_name", "last_name", "avatar"}
}

func TestPostgresRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(userInfoColumns()).
		AddRow(int64(42), "a@b.com", true, false, "Ann", nil, nil)

	mock.ExpectQuery(`SELECT u\.id, u\.email, u\.is_active, u\.is_admin`).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	info, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.UserID)
	assert.Equal(t, "a@b.com", info.Email)
	assert.True(t, info.IsActive)
	require.NotNil(t, info.Profile.FirstName)
	assert.Equal(t, "Ann", *info.Profile.FirstName)
	assert.Nil(t, info.Profile.LastName)
	assert.Nil(t, info.Profile.Avatar)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT u\.id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userInfoColumns()))

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "password_hash", "is_active"}).
		AddRow(int64(3), "hash", false)

	mock.ExpectQuery(`SELECT id, password_hash, is_active FROM users`).
		WithArgs("a@b.com").
		WillReturnRows(rows)

	creds, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), creds.UserID)
	assert.Equal(t, "hash", creds.PasswordHash)
	assert.False(t, creds.IsActive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ExistsByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_InsertUserWithProfile(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@b.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_active", "is_admin"}).
			AddRow(int64(10), "a@b.com", false, false))
	mock.ExpectExec(`INSERT INTO profiles`).
		WithArgs(int64(10), "Ann", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	info, err := repo.InsertUserWithProfile(context.Background(), &Registration{
		Email:        "a@b.com",
		PasswordHash: "hash",
		FirstName:    str("Ann"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), info.UserID)
	assert.False(t, info.IsActive)
	require.NotNil(t, info.Profile.FirstName)
	assert.Equal(t, "Ann", *info.Profile.FirstName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_InsertUserWithProfile_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@b.com", "hash").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	_, err := repo.InsertUserWithProfile(context.Background(), &Registration{
		Email:        "a@b.com",
		PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateProfileFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE profiles SET first_name = \$1, last_name = \$2`).
		WithArgs("Ann", "Lee", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "avatar"}).
			AddRow("Ann", "Lee", nil))

	profile, err := repo.UpdateProfileFields(context.Background(), 5, ProfileUpdate{
		FirstName: str("Ann"),
		LastName:  str("Lee"),
	})
	require.NoError(t, err)
	require.NotNil(t, profile.LastName)
	assert.Equal(t, "Lee", *profile.LastName)
	assert.Nil(t, profile.Avatar)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateProfileFields_SingleField(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE profiles SET last_name = \$1`).
		WithArgs("Lee", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name", "avatar"}).
			AddRow(nil, "Lee", nil))

	profile, err := repo.UpdateProfileFields(context.Background(), 5, ProfileUpdate{LastName: str("Lee")})
	require.NoError(t, err)
	assert.Nil(t, profile.FirstName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetActive(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users SET is_active = TRUE`).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetActive(context.Background(), 8))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetActive_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users SET is_active = TRUE`).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), 8)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetPasswordHash(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users SET password_hash = \$2`).
		WithArgs(int64(8), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetPasswordHash(context.Background(), 8, "newhash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetAvatarRef(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE profiles SET avatar = \$2`).
		WithArgs(int64(8), "ab12.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetAvatarRef(context.Background(), 8, "ab12.png"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
