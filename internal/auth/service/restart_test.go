package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harborbank/internal/auth/store/credential"
	jwttoken "harborbank/internal/jwt_token"
	"harborbank/internal/kvstore"
	"harborbank/pkg/testutil"
)

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	creds := credential.NewInMemoryCredentialStore()
	require.NoError(t, credential.SeedCredentials(ctx, creds))
	tokens := jwttoken.NewJWTService("restart-key", "harborbank")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	boot := func(t *testing.T) *Service {
		storage, err := kvstore.NewFile(path)
		require.NoError(t, err)
		return New(ctx, creds, tokens, storage, WithLogger(logger))
	}

	var token string
	testutil.Given(t, "a user signed in on a file-backed store", func(t *testing.T) {
		session, err := boot(t).SignIn(ctx, "jane@example.com", "password123")
		require.NoError(t, err)
		token = session.AccessToken
	})

	testutil.When(t, "the process restarts", func(t *testing.T) {
		svc := boot(t)

		testutil.Then(t, "the same session is restored and its token still works", func(t *testing.T) {
			restored, err := svc.GetSession(ctx)
			require.NoError(t, err)
			require.NotNil(t, restored)
			assert.Equal(t, token, restored.AccessToken)
			assert.Equal(t, "jane@example.com", restored.User.Email)

			user, err := svc.ValidateAccessToken(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, restored.User.ID, user.ID)
		})
	})

	testutil.When(t, "the user signs out and the process restarts again", func(t *testing.T) {
		require.NoError(t, boot(t).SignOut(ctx))
		svc := boot(t)

		testutil.Then(t, "no session is restored", func(t *testing.T) {
			session, err := svc.GetSession(ctx)
			require.NoError(t, err)
			assert.Nil(t, session)
		})
	})
}
