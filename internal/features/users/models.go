// Package users — models.go описывает пользователей и сессии.
package users

import "time"

// Role — роль пользователя.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User — зарегистрированный пользователь.
type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	PasswordHash     string     `json:"-"`
	Role             Role       `json:"role"`
	ReferralCodeUsed string     `json:"referralCodeUsed,omitempty"`
	LastDepositAt    *time.Time `json:"lastDepositAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// IsAdmin сообщает, есть ли у пользователя права администратора.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session — сессия пользователя с bearer-токеном.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
