package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/accounts"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/config"
	custommw "github.com/hassanaliaskari/ReactLoginSignupForm/internal/httpserver/middleware"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/notice"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/observability"
	"github.com/hassanaliaskari/ReactLoginSignupForm/public"
)

// Config holds runtime options for the login HTTP server.
type Config struct {
	Address     string
	BasePath    string
	LoginPath   string
	RedirectURL string
	Environment string

	Accounts   accounts.Authenticator
	Sessions   custommw.SessionStore
	Appearance config.Appearance
	Notice     notice.Notice
	Logger     *zap.Logger

	CSRFHeaderName string

	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	if cfg.Accounts == nil {
		return nil, errors.New("httpserver: accounts are required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("httpserver: session store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.RequestLogger(logger))
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(durationOr(cfg.RequestTimeout, 60*time.Second)))

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("httpserver: embed static: %w", err)
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	basePath := config.NormalizeBasePath(cfg.BasePath)
	loginPath := config.ResolveLoginPath(basePath, cfg.LoginPath)
	redirectURL := firstNonEmpty(cfg.RedirectURL, basePath)

	handlers := newLoginHandlers(loginOptions{
		Accounts:    cfg.Accounts,
		Appearance:  cfg.Appearance,
		Notice:      cfg.Notice,
		BasePath:    basePath,
		LoginPath:   loginPath,
		RedirectURL: redirectURL,
	})

	mountLoginRoutes(router, handlers, routeOptions{
		Sessions:    cfg.Sessions,
		Environment: cfg.Environment,
		CSRF:        custommw.CSRFConfig{HeaderName: cfg.CSRFHeaderName},
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

type routeOptions struct {
	Sessions    custommw.SessionStore
	Environment string
	CSRF        custommw.CSRFConfig
}

func mountLoginRoutes(router chi.Router, h *loginHandlers, opts routeOptions) {
	router.Group(func(r chi.Router) {
		r.Use(custommw.Environment(opts.Environment))
		r.Use(custommw.Session(opts.Sessions))
		r.Use(custommw.HTMX())
		r.Use(custommw.CSRF(opts.CSRF))
		r.Use(custommw.NoStore())

		r.Get(h.loginPath, h.LoginForm)
		r.Post(h.loginPath, h.LoginSubmit)

		r.Get(h.basePath, h.Home)
		if h.basePath != "/" {
			r.Get(h.basePath+"/", h.Home)
		}
		r.Post(h.logoutPath(), h.Logout)
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}
