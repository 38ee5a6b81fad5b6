package testutil

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/accounts"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/config"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/httpserver"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/notice"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/session"
)

// Credentials of the account every test server starts with.
const (
	Username    = "alice"
	Password    = "correct horse"
	DisplayName = "Alice Example"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBasePath sets a custom base path for the routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithRedirectURL overrides the post-login target.
func WithRedirectURL(target string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.RedirectURL = target
	}
}

// WithAccounts replaces the account directory.
func WithAccounts(auth accounts.Authenticator) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Accounts = auth
	}
}

// WithAppearance sets the form appearance.
func WithAppearance(appearance config.Appearance) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Appearance = appearance
	}
}

// WithNotice sets the markdown notice shown above the form.
func WithNotice(n notice.Notice) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Notice = n
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// NewDirectory returns a directory holding the default test account.
func NewDirectory(t testing.TB) *accounts.Directory {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	dir, err := accounts.NewDirectory(accounts.User{
		Username:     Username,
		DisplayName:  DisplayName,
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatalf("accounts directory: %v", err)
	}
	return dir
}

// NewServer constructs an httptest server running the HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	sessions, err := session.NewManager(session.Config{
		CookieName: "test_session",
		HashKey:    []byte("12345678901234567890123456789012"),
		BlockKey:   []byte("abcdefghijklmnopqrstuvwxyzABCDEF"),
		Lifetime:   time.Hour,
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	cfg := httpserver.Config{
		Address:        ":0",
		Environment:    "Test",
		Accounts:       NewDirectory(t),
		Sessions:       sessions,
		CSRFHeaderName: "X-CSRF-Token",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := httpserver.New(cfg)
	if err != nil {
		t.Fatalf("httpserver: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// NewClient returns a client that keeps cookies and does not follow redirects.
func NewClient(t testing.TB) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	transport := &http.Transport{}
	t.Cleanup(transport.CloseIdleConnections)
	return &http.Client{
		Jar:       jar,
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
