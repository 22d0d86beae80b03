// internal/models/user.go
package models

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// PublicUser is the minimal user record returned to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// SetPassword stores the SHA-256 hex digest of password.
func (u *User) SetPassword(password string) {
	u.PasswordHash = HashPassword(password)
}

// CheckPassword accepts two stored formats: a 64-character hex SHA-256
// digest, or a legacy plaintext value compared as-is.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}

	if IsSHA256Hex(u.PasswordHash) {
		digest := HashPassword(password)
		return subtle.ConstantTimeCompare([]byte(digest), []byte(lowerHex(u.PasswordHash))) == 1
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(u.PasswordHash)) == 1
}

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func IsSHA256Hex(value string) bool {
	if len(value) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(value)
	return err == nil
}

func lowerHex(value string) string {
	b := []byte(value)
	for i, c := range b {
		if c >= 'A' && c <= 'F' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
