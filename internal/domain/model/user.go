package model

import (
	"strings"
	"time"

	"todo_expert/internal/common"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// ParseUserRole accepts a role name in any letter case.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", common.ValidationError("invalid user role")
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // encoded, never exposed
	Role      UserRole  `json:"userRole"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"modifiedAt"`
}

// AuthUser is the caller identity established from a verified token.
type AuthUser struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"userRole"`
}

func (a AuthUser) IsAdmin() bool { return a.Role == RoleAdmin }

// UserFromAuthUser builds a reference to the caller's persisted user row.
func UserFromAuthUser(a AuthUser) *User {
	return &User{ID: a.ID, Email: a.Email, Role: a.Role}
}
