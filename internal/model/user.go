package model

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of roles a user can hold.  auth.CanMutate switches
// over every value.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole normalizes and validates a role name read from the database or a
// request body.  Unknown values are an error.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User represents a row of the `users` table.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	PasswordHash – bcrypt hash, never serialized.
//	FullName     – optional display name.
//	Role         – admin or user; new rows default to admin.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	FullName     *string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserView is the public JSON shape of a user.
type UserView struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	FullName  *string   `json:"fullName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// View strips credential material from the user.
func (u User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, FullName: u.FullName, Role: u.Role, CreatedAt: u.CreatedAt}
}

// NewUser is the payload accepted when an admin registers an account.
type NewUser struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"fullName"`
	Role     string  `json:"role"`
}

// Password length bounds for registration and rotation.  bcrypt refuses
// anything longer than MaxPasswordLen bytes.
const (
	MinPasswordLen = 8
	MaxPasswordLen = 72
)

// Validate checks the registration payload and returns the parsed role.  An
// empty role falls back to admin, matching the column default.
func (n NewUser) Validate() (Role, error) {
	v := newValidator()
	v.required("username", n.Username)
	v.check(len(n.Password) >= MinPasswordLen, "password", fmt.Sprintf("must be at least %d characters", MinPasswordLen))
	v.check(len(n.Password) <= MaxPasswordLen, "password", fmt.Sprintf("must be at most %d bytes", MaxPasswordLen))
	role := RoleAdmin
	if strings.TrimSpace(n.Role) != "" {
		r, err := ParseRole(n.Role)
		v.check(err == nil, "role", "must be admin or user")
		role = r
	}
	return role, v.err()
}

// PasswordChange is the payload of a password rotation.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (p PasswordChange) Validate() error {
	v := newValidator()
	v.required("currentPassword", p.CurrentPassword)
	v.check(len(p.NewPassword) >= MinPasswordLen, "newPassword", fmt.Sprintf("must be at least %d characters", MinPasswordLen))
	v.check(len(p.NewPassword) <= MaxPasswordLen, "newPassword", fmt.Sprintf("must be at most %d bytes", MaxPasswordLen))
	return v.err()
}
