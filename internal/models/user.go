package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID        ID        `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"` // Hide from JSON responses
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      Role      `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ComparePassword checks a login candidate against the stored credential.
// Mock accounts keep the literal placeholder password, so they accept exactly
// that string; accounts backed by a real database store a bcrypt hash.
func (u *User) ComparePassword(candidate string) bool {
	if strings.HasPrefix(u.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
	}
	return u.Password == candidate
}

// Sanitized returns a copy safe to hand to consumers: the credential field is
// cleared.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
