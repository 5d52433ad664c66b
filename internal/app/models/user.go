package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"jaeho"`
	Email     string    `json:"email" db:"email" example:"jaeho@example.com"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	IsAdmin   bool      `json:"isAdmin" db:"is_admin" example:"false"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2026-01-01T10:00:00Z"`
}

// RefreshToken is a persisted refresh token issued at login
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
