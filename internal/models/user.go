// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole defines the permission tier of a user account.
type UserRole string

const (
	// RoleUser is the default tier: can rate, comment, like and save.
	RoleUser UserRole = "user"
	// RoleAuthor can additionally publish articles.
	RoleAuthor UserRole = "author"
	// RoleAdmin can moderate any content and manage users.
	RoleAdmin UserRole = "admin"
)

// ValidRole reports whether role is one of the known tiers.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleUser, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      UserRole       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user has the admin tier.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanPublish reports whether the user may create articles.
func (u *User) CanPublish() bool {
	return u.Role == RoleAuthor || u.Role == RoleAdmin
}
