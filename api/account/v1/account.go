// Package v1 is the JSON contract of the account API.
package v1

import (
	"net/http"
	"time"
)

type User struct {
	Id        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type RegisterReply struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// HTTPStatus marks the reply as a resource creation.
func (*RegisterReply) HTTPStatus() int {
	return http.StatusCreated
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type LoginReply struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type LogoutRequest struct{}

type LogoutReply struct {
	Message string `json:"message"`
}

type MeRequest struct{}

type MeReply struct {
	User *User `json:"user"`
}
