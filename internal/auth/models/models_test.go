package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "harborbank/pkg/domain"
)

func TestSessionValidate(t *testing.T) {
	valid := &Session{
		User:        &User{ID: id.NewUserID(), Email: "john@example.com"},
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		session *Session
	}{
		{"nil session", nil},
		{"missing user", &Session{AccessToken: "token"}},
		{"nil user id", &Session{User: &User{Email: "a@b.c"}, AccessToken: "token"}},
		{"missing email", &Session{User: &User{ID: id.NewUserID()}, AccessToken: "token"}},
		{"missing token", &Session{User: &User{ID: id.NewUserID(), Email: "a@b.c"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.session.Validate())
		})
	}
}

func TestSessionCloneIsDeep(t *testing.T) {
	orig := &Session{User: &User{ID: id.NewUserID(), Email: "a@b.c"}, AccessToken: "t"}
	clone := orig.Clone()
	clone.User.Email = "changed@b.c"
	assert.Equal(t, "a@b.c", orig.User.Email)
	assert.Nil(t, (*Session)(nil).Clone())
}

func TestCredentialUserDropsPassword(t *testing.T) {
	c := &Credential{ID: id.NewUserID(), Email: "a@b.c", Password: "secret", DisplayName: "A", IsAdmin: true}
	u := c.User()
	assert.Equal(t, c.ID, u.ID)
	assert.Equal(t, "A", u.DisplayName)
	assert.True(t, u.IsAdmin)
}
