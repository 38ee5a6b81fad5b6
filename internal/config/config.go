package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultEnvFile        = ".env"
	defaultAddress        = ":8080"
	defaultBasePath       = "/"
	defaultLogLevel       = "info"
	defaultEnvironment    = "Development"
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 30 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultSessionIdle    = 30 * time.Minute
	defaultSessionLife    = 12 * time.Hour
	minSessionHashKeySize = 32
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Accounts AccountsConfig
	Form     FormConfig
	Log      LogConfig
}

// ServerConfig configures the HTTP server and its routes.
type ServerConfig struct {
	Address      string
	BasePath     string
	LoginPath    string
	RedirectURL  string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SessionConfig configures the session cookie.
type SessionConfig struct {
	HashKey      []byte
	BlockKey     []byte
	CookieSecure bool
	IdleTimeout  time.Duration
	Lifetime     time.Duration
}

// AccountsConfig points at the accounts file.
type AccountsConfig struct {
	File string
}

// FormConfig points at the optional appearance and notice files.
type FormConfig struct {
	AppearanceFile string
	NoticeFile     string
}

// LogConfig controls logging.
type LogConfig struct {
	Level string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	basePath := NormalizeBasePath(stringWithDefault(lookup, "LOGINFORM_BASE_PATH", defaultBasePath))
	cfg := Config{
		Server: ServerConfig{
			Address:      stringWithDefault(lookup, "LOGINFORM_HTTP_ADDR", defaultAddress),
			BasePath:     basePath,
			LoginPath:    stringWithDefault(lookup, "LOGINFORM_LOGIN_PATH", ResolveLoginPath(basePath, "")),
			RedirectURL:  stringWithDefault(lookup, "LOGINFORM_REDIRECT_URL", basePath),
			Environment:  stringWithDefault(lookup, "LOGINFORM_ENVIRONMENT", defaultEnvironment),
			ReadTimeout:  durationWithDefault(lookup, "LOGINFORM_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "LOGINFORM_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "LOGINFORM_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Session: SessionConfig{
			HashKey:      []byte(stringWithDefault(lookup, "LOGINFORM_SESSION_HASH_KEY", "")),
			BlockKey:     []byte(stringWithDefault(lookup, "LOGINFORM_SESSION_BLOCK_KEY", "")),
			CookieSecure: boolWithDefault(lookup, "LOGINFORM_COOKIE_SECURE", false),
			IdleTimeout:  durationWithDefault(lookup, "LOGINFORM_SESSION_IDLE_TIMEOUT", defaultSessionIdle),
			Lifetime:     durationWithDefault(lookup, "LOGINFORM_SESSION_LIFETIME", defaultSessionLife),
		},
		Accounts: AccountsConfig{
			File: stringWithDefault(lookup, "LOGINFORM_ACCOUNTS_FILE", ""),
		},
		Form: FormConfig{
			AppearanceFile: stringWithDefault(lookup, "LOGINFORM_FORM_FILE", ""),
			NoticeFile:     stringWithDefault(lookup, "LOGINFORM_NOTICE_FILE", ""),
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var invalid []string

	if strings.TrimSpace(cfg.Server.Address) == "" {
		invalid = append(invalid, "Server.Address")
	}
	if !strings.HasPrefix(cfg.Server.LoginPath, "/") {
		invalid = append(invalid, "Server.LoginPath")
	}
	if strings.TrimSpace(cfg.Server.RedirectURL) == "" {
		invalid = append(invalid, "Server.RedirectURL")
	}
	if len(cfg.Session.HashKey) < minSessionHashKeySize {
		invalid = append(invalid, "Session.HashKey")
	}
	switch len(cfg.Session.BlockKey) {
	case 0, 16, 24, 32:
	default:
		invalid = append(invalid, "Session.BlockKey")
	}
	if strings.TrimSpace(cfg.Accounts.File) == "" {
		invalid = append(invalid, "Accounts.File")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

// NormalizeBasePath returns a rooted path without a trailing slash ("/" stays "/").
func NormalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}

// ResolveLoginPath returns override when set, otherwise "<base>/login".
func ResolveLoginPath(base, override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	if base == "/" || base == "" {
		return "/login"
	}
	return base + "/login"
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
