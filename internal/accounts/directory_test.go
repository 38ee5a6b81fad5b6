package accounts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestDirectoryAuthenticate(t *testing.T) {
	t.Parallel()

	dir, err := NewDirectory(User{Username: "alice", DisplayName: "Alice", PasswordHash: mustHash(t, "secret")})
	require.NoError(t, err)

	user, err := dir.Authenticate(context.Background(), " alice ", "secret")
	require.NoError(t, err)
	require.Equal(t, "Alice", user.DisplayName)

	_, err = dir.Authenticate(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = dir.Authenticate(context.Background(), "bob", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dir.Authenticate(ctx, "alice", "secret")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewDirectoryRejectsBadEntries(t *testing.T) {
	t.Parallel()

	hash := mustHash(t, "x")

	_, err := NewDirectory(User{Username: "", PasswordHash: hash})
	require.Error(t, err)

	_, err = NewDirectory(User{Username: "alice"})
	require.Error(t, err)

	_, err = NewDirectory(User{Username: "alice", PasswordHash: hash}, User{Username: "alice", PasswordHash: hash})
	require.ErrorIs(t, err, ErrDuplicateUser)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.yaml")
	content := "users:\n  - username: alice\n    display_name: Alice\n    password_hash: '" + mustHash(t, "secret") + "'\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	dir, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, dir.Len())

	_, err = dir.Authenticate(context.Background(), "alice", "secret")
	require.NoError(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))

	_, err = HashPassword("")
	require.Error(t, err)
}

func TestUsernamesAreNormalised(t *testing.T) {
	t.Parallel()

	dir, err := NewDirectory(User{Username: "alice", PasswordHash: mustHash(t, "secret")})
	require.NoError(t, err)

	user, err := dir.Authenticate(context.Background(), "ａｌｉｃｅ", "secret")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	_, err = NewDirectory(
		User{Username: "ﬁona", PasswordHash: mustHash(t, "a")},
		User{Username: "fiona", PasswordHash: mustHash(t, "b")},
	)
	require.ErrorIs(t, err, ErrDuplicateUser)
}
