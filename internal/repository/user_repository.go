package repository // repository holds data access for users and portfolio content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// UserRepo is the credential store backed by the users table.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, username, hashed_password, full_name, role, created_at"

func scanUser(row rowScanner) (model.User, error) {
	var (
		u    model.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &role, &u.CreatedAt); err != nil {
		return model.User{}, err
	}
	r, err := model.ParseRole(role)
	if err != nil {
		return model.User{}, fmt.Errorf("user %d: %w", u.ID, err)
	}
	u.Role = r
	return u, nil
}

// FindByUsername looks a user up by login name.  Absence is reported through
// found, not as an error.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, bool, error) {
	return r.find(ctx, "SELECT "+userColumns+" FROM users WHERE username = ? LIMIT 1", strings.TrimSpace(username))
}

// FindByID looks a user up by primary key.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (model.User, bool, error) {
	return r.find(ctx, "SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id)
}

func (r *UserRepo) find(ctx context.Context, q string, arg any) (model.User, bool, error) {
	u, err := getOne(ctx, r.db, scanUser, q, arg)
	switch {
	case errors.Is(err, ErrNotFound):
		return model.User{}, false, nil
	case err != nil:
		return model.User{}, false, err
	}
	return u, true, nil
}

// Create inserts u and returns the stored row.  A taken username yields
// ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	id, err := insert(ctx, r.db,
		"INSERT INTO users (username, hashed_password, full_name, role) VALUES (?, ?, ?, ?)",
		strings.TrimSpace(u.Username), u.PasswordHash, u.FullName, string(u.Role))
	if err != nil {
		return model.User{}, err
	}
	return getOne(ctx, r.db, scanUser, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

// Upsert creates the user or, when the username exists, overwrites its
// password hash, full name and role.
func (r *UserRepo) Upsert(ctx context.Context, u model.User) (model.User, error) {
	const q = `INSERT INTO users (username, hashed_password, full_name, role) VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE hashed_password = VALUES(hashed_password), full_name = VALUES(full_name), role = VALUES(role)`
	name := strings.TrimSpace(u.Username)
	if _, err := r.db.ExecContext(ctx, q, name, u.PasswordHash, u.FullName, string(u.Role)); err != nil {
		return model.User{}, err
	}
	return getOne(ctx, r.db, scanUser, "SELECT "+userColumns+" FROM users WHERE username = ?", name)
}

// UpdatePassword replaces the stored hash for user id.  bcrypt salts every
// hash, so an existing row is always changed and zero affected rows means the
// user is gone.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET hashed_password = ? WHERE id = ?", hash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
