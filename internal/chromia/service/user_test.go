package service

import (
	"context"
	"testing"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/store"
	"github.com/Brickle-Pickle/Chromia/internal/chromia/store/drivers/sqlite"
	"github.com/Brickle-Pickle/Chromia/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUserService(t *testing.T, s store.Store) *UserService {
	t.Helper()

	tokens, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "chromia-test")
	require.NoError(t, err)

	return &UserService{Store: s, Tokens: tokens, Issuer: "chromia-test"}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newTestUserService(t, s)

	t.Run("creates account and strips the hash", func(t *testing.T) {
		user, err := svc.Register(ctx, "alice", "hunter2hunter2")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "alice", user.Username)
		require.Empty(t, user.PasswordHash)
	})

	t.Run("rejects taken usernames", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "another-password")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("trims whitespace before the duplicate check", func(t *testing.T) {
		_, err := svc.Register(ctx, "  alice  ", "another-password")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := svc.Register(ctx, "", "password")
		require.ErrorIs(t, err, ErrMissingCredentials)

		_, err = svc.Register(ctx, "bob", "")
		require.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newTestUserService(t, s)

	registered, err := svc.Register(ctx, "carol", "correct horse battery")
	require.NoError(t, err)

	t.Run("returns a verifiable token and sanitized user", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "carol", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
		require.Empty(t, user.PasswordHash)

		verifier, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "chromia-test")
		require.NoError(t, err)
		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, registered.ID, claims.Subject)
		require.Equal(t, "carol", claims.Username)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, _, errWrong := svc.Login(ctx, "carol", "nope")
		_, _, errUnknown := svc.Login(ctx, "nobody", "nope")

		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		require.Equal(t, errWrong, errUnknown)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "carol", "")
		require.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newTestUserService(t, s)

	user, err := svc.Register(ctx, "dave", "a fine password")
	require.NoError(t, err)

	t.Run("resolves a live account", func(t *testing.T) {
		got, err := svc.CurrentUser(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "dave", got.Username)
		require.Empty(t, got.PasswordHash)
	})

	t.Run("deleted account behind a valid token yields not found", func(t *testing.T) {
		require.NoError(t, s.Users().DeleteUser(ctx, user.ID))

		_, err := svc.CurrentUser(ctx, user.ID)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
