package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the single access level a user holds at any point in time.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a stored role value to a Role. Anything unrecognized
// resolves to the least-privileged role rather than failing.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStaff:
		return RoleStaff
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// Valid reports whether the value is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleStaff || r == RoleAdmin
}

// Profile represents a user's public record in the system.
// Names and emails are visible to every authenticated user within the
// institution. The role is deliberately NOT part of this struct, so a
// profile edit can never change a user's access level.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"` // UUID
	FullName  string    `gorm:"type:text;not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that generates a new UUID for the profile
// if the ID has not been set yet.
func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// UserRole stores the role assignment separately from the profile.
// Invariant: exactly one row per user at all times; the default row
// (role = student) is inserted in the same transaction as the profile.
type UserRole struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_user_role;not null" json:"user_id"`
	Role      Role      `gorm:"uniqueIndex:idx_user_role;type:text;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
