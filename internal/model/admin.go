package model

import "time"

type Admin struct {
	ID           int32      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         *string    `json:"name"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

type AdminInfo struct {
	ID    int32   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// Claims is the decoded payload of a verified session token. It exists
// only for the lifetime of a single verification and is never persisted.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	Admin AdminInfo `json:"admin"`
}
