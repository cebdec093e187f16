package models

import "time"

// Role constants
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"userId" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	Nickname     string    `json:"nickname" db:"nickname"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createDate" db:"created_at"`
	UpdatedAt    time.Time `json:"modifiedDate" db:"updated_at"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Nickname string `json:"nickname"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// ProfileUpdate holds the editable profile fields
type ProfileUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Nickname string `json:"nickname"`
}
