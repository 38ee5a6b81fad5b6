package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/accounts"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/config"
	custommw "github.com/hassanaliaskari/ReactLoginSignupForm/internal/httpserver/middleware"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/loginform"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/notice"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/observability"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/session"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/templates/pages"
)

const (
	invalidCredentialsMessage = "Invalid username or password"
	signInRequiredMessage     = "Please sign in to continue."
	loggedOutMessage          = "You have been signed out."
	badRequestMessage         = "The form could not be submitted. Please try again."
	unavailableMessage        = "Sign-in is temporarily unavailable. Please try again later."
)

type loginOptions struct {
	Accounts    accounts.Authenticator
	Appearance  config.Appearance
	Notice      notice.Notice
	BasePath    string
	LoginPath   string
	RedirectURL string
}

type loginHandlers struct {
	accounts    accounts.Authenticator
	appearance  loginform.Props
	notice      notice.Notice
	basePath    string
	loginPath   string
	redirectURL string
}

func newLoginHandlers(opts loginOptions) *loginHandlers {
	if opts.Accounts == nil {
		panic("login: accounts are required")
	}
	basePath := config.NormalizeBasePath(opts.BasePath)
	var appearance loginform.Props
	opts.Appearance.Apply(&appearance)
	return &loginHandlers{
		accounts:    opts.Accounts,
		appearance:  appearance,
		notice:      opts.Notice,
		basePath:    basePath,
		loginPath:   config.ResolveLoginPath(basePath, opts.LoginPath),
		redirectURL: firstNonEmpty(opts.RedirectURL, basePath),
	}
}

// loginAttempt is the action the form dispatches on a valid submit.
type loginAttempt struct {
	ID       string
	Username string
	Password string
}

// sessionDispatcher checks a login attempt against the accounts and signs the
// session in on success.
type sessionDispatcher struct {
	ctx      context.Context
	accounts accounts.Authenticator
	sess     *session.Session
	logger   *zap.Logger
	err      error
}

func (d *sessionDispatcher) Dispatch(action loginform.Action) {
	attempt, ok := action.(loginAttempt)
	if !ok {
		d.err = fmt.Errorf("login: unsupported action %T", action)
		d.logger.Error("unsupported action dispatched", zap.String("type", fmt.Sprintf("%T", action)))
		return
	}
	logger := d.logger.With(zap.String("action_id", attempt.ID), zap.String("username", attempt.Username))

	user, err := d.accounts.Authenticate(d.ctx, attempt.Username, attempt.Password)
	if err != nil {
		d.err = err
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			logger.Info("login rejected")
		} else {
			logger.Error("login failed", zap.Error(err))
		}
		return
	}

	d.sess.SetUser(&session.User{Username: user.Username, DisplayName: user.DisplayName})
	logger.Info("login succeeded")
}

// navigation records the location the form asked to replace.
type navigation struct {
	target string
}

func (n *navigation) Replace(target string) {
	n.target = target
}

type loginRequest struct {
	form       *loginform.Form
	dispatcher *sessionDispatcher
	navigation *navigation
}

func (h *loginHandlers) newLoginRequest(r *http.Request, sess *session.Session, target string) (*loginRequest, error) {
	lr := &loginRequest{
		dispatcher: &sessionDispatcher{
			ctx:      r.Context(),
			accounts: h.accounts,
			sess:     sess,
			logger:   observability.FromContext(r.Context()),
		},
		navigation: &navigation{},
	}

	props := h.appearance
	props.IsLoggedIn = sess.LoggedIn()
	props.RedirectURL = target
	props.FormAction = h.loginPath
	props.Dispatcher = lr.dispatcher
	props.Navigator = lr.navigation
	props.TryLoginAction = func() loginform.Action {
		state := lr.form.State()
		return loginAttempt{
			ID:       uuid.NewString(),
			Username: state.Username,
			Password: state.Password,
		}
	}

	form, err := loginform.NewForm(props)
	if err != nil {
		return nil, err
	}
	lr.form = form
	return lr, nil
}

// LoginForm renders the login page, or sends signed-in users on unless
// ?force=1 is present.
func (h *loginHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := custommw.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	next := r.URL.Query().Get("next")
	if sess.LoggedIn() && !forceLogin(r) {
		redirect(w, r, h.redirectTarget(next), http.StatusFound)
		return
	}

	lr, err := h.newLoginRequest(r, sess, h.redirectTarget(next))
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	flash := pages.Flash{Kind: pages.FlashInfo, Message: messageForQuery(r.URL.Query())}
	if msg := sess.PopFlash(); msg != "" {
		flash.Message = msg
	}
	h.renderLoginPage(w, r, lr.form, flash, h.normalizeNext(next), http.StatusOK)
}

// LoginSubmit runs one submit through the form: bind, validate, dispatch and
// follow the logged-in transition to the redirect target.
func (h *loginHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := custommw.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	parseErr := r.ParseForm()
	next := h.normalizeNext(r.PostFormValue(pages.NextField))
	target := h.redirectTarget(next)

	if sess.LoggedIn() {
		redirect(w, r, target, http.StatusSeeOther)
		return
	}

	lr, err := h.newLoginRequest(r, sess, target)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	if parseErr != nil {
		observability.FromContext(r.Context()).Warn("login form parse failed", zap.Error(parseErr))
		h.renderLoginPage(w, r, lr.form, pages.Flash{Kind: pages.FlashError, Message: badRequestMessage}, next, http.StatusBadRequest)
		return
	}

	lr.form.Bind(r.PostForm)
	if !lr.form.Login() {
		h.renderLoginPage(w, r, lr.form, pages.Flash{}, next, http.StatusUnprocessableEntity)
		return
	}

	updated := lr.form.Props()
	updated.IsLoggedIn = sess.LoggedIn()
	if err := lr.form.SetProps(updated); err != nil {
		h.internalError(w, r, err)
		return
	}

	if lr.navigation.target != "" {
		redirect(w, r, lr.navigation.target, http.StatusSeeOther)
		return
	}

	lr.form.ChangePassword("")
	if lr.dispatcher.err != nil && !errors.Is(lr.dispatcher.err, accounts.ErrInvalidCredentials) {
		h.renderLoginPage(w, r, lr.form, pages.Flash{Kind: pages.FlashError, Message: unavailableMessage}, next, http.StatusInternalServerError)
		return
	}
	h.renderLoginPage(w, r, lr.form, pages.Flash{Kind: pages.FlashError, Message: invalidCredentialsMessage}, next, http.StatusUnauthorized)
}

// Home is the protected landing page.
func (h *loginHandlers) Home(w http.ResponseWriter, r *http.Request) {
	sess, ok := custommw.SessionFromContext(r.Context())
	if !ok || !sess.LoggedIn() {
		if ok {
			sess.SetFlash(signInRequiredMessage)
		}
		redirect(w, r, h.loginURLWithParams(map[string]string{"next": r.URL.RequestURI()}), http.StatusFound)
		return
	}

	user := sess.User()
	templ.Handler(pages.HomePage(pages.HomePageData{
		DisplayName: user.DisplayName,
		Username:    user.Username,
		LogoutPath:  h.logoutPath(),
		CSRFToken:   custommw.CSRFTokenFromContext(r.Context()),
	})).ServeHTTP(w, r)
}

// Logout destroys the session and returns to the login page.
func (h *loginHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		if user := sess.User(); user != nil {
			observability.FromContext(r.Context()).Info("logout", zap.String("username", user.Username))
		}
		sess.Destroy()
	}
	redirect(w, r, h.loginURLWithParams(map[string]string{"status": "logged_out"}), http.StatusSeeOther)
}

func (h *loginHandlers) renderLoginPage(w http.ResponseWriter, r *http.Request, form *loginform.Form, flash pages.Flash, next string, status int) {
	component := pages.LoginPage(pages.LoginPageData{
		Form:      form,
		Flash:     flash,
		Notice:    h.notice,
		Next:      next,
		CSRFToken: custommw.CSRFTokenFromContext(r.Context()),
	})
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}

func (h *loginHandlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.FromContext(r.Context()).Error("login page failed", zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *loginHandlers) logoutPath() string {
	if h.basePath == "/" {
		return "/logout"
	}
	return h.basePath + "/logout"
}

func messageForQuery(q url.Values) string {
	if q.Get("status") == "logged_out" {
		return loggedOutMessage
	}
	return ""
}

func (h *loginHandlers) redirectTarget(raw string) string {
	if next := h.normalizeNext(raw); next != "" {
		return next
	}
	return h.redirectURL
}

func (h *loginHandlers) normalizeNext(raw string) string {
	sanitized := sanitizeNextTarget(h.basePath, raw)
	if sanitized == "" {
		return ""
	}
	if samePath(pathOnly(sanitized), h.loginPath) {
		return ""
	}
	return sanitized
}

func (h *loginHandlers) loginURLWithParams(params map[string]string) string {
	parsed, err := url.Parse(h.loginPath)
	if err != nil {
		return h.loginPath
	}
	q := parsed.Query()
	for key, val := range params {
		if strings.TrimSpace(val) == "" {
			continue
		}
		q.Set(key, val)
	}
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
