package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/dmitrijs2005/accountd/internal/dbx"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// isUniqueViolation reports whether err is the store rejecting a duplicate
// key. This is what closes the check-then-insert race on registration: the
// second writer loses here, not at the existence check.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func scanUserInfo(row *sql.Row) (*UserInfoWithActivation, error) {
	var (
		info      UserInfoWithActivation
		firstName sql.NullString
		lastName  sql.NullString
		avatar    sql.NullString
	)

	err := row.Scan(&info.UserID, &info.Email, &info.IsActive, &info.IsAdmin,
		&firstName, &lastName, &avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if firstName.Valid {
		info.Profile.FirstName = &firstName.String
	}
	if lastName.Valid {
		info.Profile.LastName = &lastName.String
	}
	if avatar.Valid {
		info.Profile.Avatar = &avatar.String
	}
	return &info, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID int64) (*UserInfoWithActivation, error) {
	query :=
		`SELECT u.id, u.email, u.is_active, u.is_admin, p.first_name, p.last_name, p.avatar
		 FROM users u
		 JOIN profiles p ON p.user_id = u.id
		 WHERE u.id = $1
		 `

	return scanUserInfo(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) GetInfoByEmail(ctx context.Context, email string) (*UserInfoWithActivation, error) {
	query :=
		`SELECT u.id, u.email, u.is_active, u.is_admin, p.first_name, p.last_name, p.avatar
		 FROM users u
		 JOIN profiles p ON p.user_id = u.id
		 WHERE u.email = $1
		 `

	return scanUserInfo(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Credentials, error) {
	query :=
		`SELECT id, password_hash, is_active FROM users
		 WHERE email = $1
		 `

	creds := &Credentials{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&creds.UserID, &creds.PasswordHash, &creds.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return creds, nil
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) InsertUserWithProfile(ctx context.Context, reg *Registration) (*UserInfoWithActivation, error) {

	info := &UserInfoWithActivation{}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		insertUser :=
			`INSERT INTO users (email, password_hash)
			 VALUES ($1, $2)
			 RETURNING id, email, is_active, is_admin
			 `

		err := tx.QueryRowContext(ctx, insertUser, reg.Email, reg.PasswordHash).
			Scan(&info.UserID, &info.Email, &info.IsActive, &info.IsAdmin)
		if err != nil {
			return err
		}

		insertProfile :=
			`INSERT INTO profiles (user_id, first_name, last_name)
			 VALUES ($1, $2, $3)
			 `

		_, err = tx.ExecContext(ctx, insertProfile, info.UserID, reg.FirstName, reg.LastName)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	info.Profile.FirstName = reg.FirstName
	info.Profile.LastName = reg.LastName
	return info, nil
}

func (r *PostgresRepository) UpdateProfileFields(ctx context.Context, userID int64, update ProfileUpdate) (*Profile, error) {

	set := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if update.FirstName != nil {
		args = append(args, *update.FirstName)
		set = append(set, "first_name = $"+strconv.Itoa(len(args)))
	}
	if update.LastName != nil {
		args = append(args, *update.LastName)
		set = append(set, "last_name = $"+strconv.Itoa(len(args)))
	}
	args = append(args, userID)

	query := fmt.Sprintf(
		`UPDATE profiles SET %s
		 WHERE user_id = $%d
		 RETURNING first_name, last_name, avatar
		 `, strings.Join(set, ", "), len(args))

	var (
		firstName sql.NullString
		lastName  sql.NullString
		avatar    sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&firstName, &lastName, &avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	profile := &Profile{}
	if firstName.Valid {
		profile.FirstName = &firstName.String
	}
	if lastName.Valid {
		profile.LastName = &lastName.String
	}
	if avatar.Valid {
		profile.Avatar = &avatar.String
	}
	return profile, nil
}

func (r *PostgresRepository) execForUser(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, userID int64) error {
	query :=
		`UPDATE users SET is_active = TRUE
		 WHERE id = $1
		 `
	return r.execForUser(ctx, query, userID)
}

func (r *PostgresRepository) SetPasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	query :=
		`UPDATE users SET password_hash = $2
		 WHERE id = $1
		 `
	return r.execForUser(ctx, query, userID, passwordHash)
}

func (r *PostgresRepository) SetAvatarRef(ctx context.Context, userID int64, avatarRef string) error {
	query :=
		`UPDATE profiles SET avatar = $2
		 WHERE user_id = $1
		 `
	return r.execForUser(ctx, query, userID, avatarRef)
}
