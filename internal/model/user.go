package model

import (
	"time"
)

type User struct {
	ID               string     `db:"id" json:"id"`
	Username         string     `db:"username" json:"username"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	ResetToken       *string    `db:"reset_token" json:"-"`        // Set only while a reset is pending
	ResetTokenExpiry *time.Time `db:"reset_token_expiry" json:"-"` // Set iff ResetToken is set
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// HasPendingReset reports whether a reset token is outstanding.
func (u *User) HasPendingReset() bool {
	return u.ResetToken != nil && u.ResetTokenExpiry != nil
}

// Public returns a copy without credential material.
func (u *User) Public() *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
