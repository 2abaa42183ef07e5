package user

import (
	"gorm.io/gorm"
)

// Role represents the set of possible user roles.
// @Description user role type: "USER" or "ADMIN"
type Role string

const (
	// RoleAdmin has full access, including deployment teardown.
	RoleAdmin Role = "ADMIN"
	// RoleUser has access to their own studio resources.
	RoleUser Role = "USER"
)

// User represents an account in the studio backend.
// swagger:model UserResponse
type User struct {
	gorm.Model
	// Email address (unique)
	Email string `json:"email" gorm:"uniqueIndex;not null"`
	// Password hash (hidden from JSON)
	Password string `json:"-" gorm:"not null"`
	// Name is the display name shown in the IDE.
	Name string `json:"name"`
	// Role of the user
	Role Role `json:"role" gorm:"type:text;default:'USER'"`
}

// NewUser initializes a new User with the default role. The password is
// expected to be hashed already.
func NewUser(email, passwordHash, name string) *User {
	return &User{
		Email:    email,
		Password: passwordHash,
		Name:     name,
		Role:     RoleUser,
	}
}
