package accounts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidCredentials is returned when the username or password does not match.
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	// ErrDuplicateUser is returned when a username is listed twice.
	ErrDuplicateUser = errors.New("accounts: duplicate user")
)

// User is an account that may sign in.
type User struct {
	Username     string `yaml:"username"`
	DisplayName  string `yaml:"display_name,omitempty"`
	PasswordHash string `yaml:"password_hash"`
}

// Authenticator verifies a username/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

// Directory is an in-memory set of accounts with bcrypt password hashes.
type Directory struct {
	mu    sync.RWMutex
	users map[string]User
	// dummy is compared against for unknown users so both paths cost a bcrypt round.
	dummy []byte
}

type directoryFile struct {
	Users []User `yaml:"users"`
}

// NewDirectory builds a directory from the given users.
func NewDirectory(users ...User) (*Directory, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("loginform-dummy"), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("accounts: dummy hash: %w", err)
	}
	dir := &Directory{
		users: make(map[string]User, len(users)),
		dummy: dummy,
	}
	for _, user := range users {
		user.Username = normalizeUsername(user.Username)
		if user.Username == "" {
			return nil, errors.New("accounts: username is required")
		}
		if strings.TrimSpace(user.PasswordHash) == "" {
			return nil, fmt.Errorf("accounts: password hash is required for %q", user.Username)
		}
		if _, exists := dir.users[user.Username]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUser, user.Username)
		}
		dir.users[user.Username] = user
	}
	return dir, nil
}

// LoadFile reads a YAML accounts file of the form:
//
//	users:
//	  - username: alice
//	    display_name: Alice
//	    password_hash: $2a$10$...
func LoadFile(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("accounts: read %s: %w", path, err)
	}
	var file directoryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("accounts: parse %s: %w", path, err)
	}
	return NewDirectory(file.Users...)
}

// Authenticate checks the password against the stored hash. Unknown users and
// wrong passwords both return ErrInvalidCredentials.
func (d *Directory) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	user, ok := d.users[normalizeUsername(username)]
	d.mu.RUnlock()

	if !ok {
		_ = bcrypt.CompareHashAndPassword(d.dummy, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Len returns the number of accounts.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

// normalizeUsername folds compatibility forms (full-width letters, ligatures)
// so visually identical usernames map to one account.
func normalizeUsername(username string) string {
	return norm.NFKC.String(strings.TrimSpace(username))
}

// HashPassword returns a bcrypt hash suitable for the accounts file.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("accounts: password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("accounts: hash password: %w", err)
	}
	return string(hash), nil
}
