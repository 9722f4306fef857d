package models

import (
	"errors"
	"time"

	id "harborbank/pkg/domain"
)

// User is the public view of an account. It never carries a password.
type User struct {
	ID          id.UserID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `json:"is_admin"`
}

// Credential is a registered account. Passwords are stored as given.
type Credential struct {
	ID          id.UserID
	Email       string
	Password    string
	DisplayName string
	IsAdmin     bool
	CreatedAt   time.Time
}

// User strips the password.
func (c *Credential) User() *User {
	return &User{
		ID:          c.ID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		IsAdmin:     c.IsAdmin,
	}
}

// Session is the single signed-in session. Absent is nil, never partial.
type Session struct {
	User        *User     `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

var errIncompleteSession = errors.New("session is incomplete")

// Validate reports whether every field a session needs is present.
func (s *Session) Validate() error {
	if s == nil || s.User == nil || s.User.ID.IsNil() || s.User.Email == "" || s.AccessToken == "" {
		return errIncompleteSession
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate the stored session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	u := *s.User
	return &Session{User: &u, AccessToken: s.AccessToken, ExpiresAt: s.ExpiresAt}
}

// AuthStateListener observes sign-in (non-nil session) and sign-out (nil).
type AuthStateListener func(session *Session)

// Unsubscribe removes a listener. Calling it more than once is harmless.
type Unsubscribe func()

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type SessionResponse struct {
	Session *Session `json:"session"`
}

type UserResponse struct {
	User *User `json:"user"`
}
