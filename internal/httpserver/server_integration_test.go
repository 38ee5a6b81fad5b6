package httpserver_test

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/config"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/loginform"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/notice"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/testutil"
)

type page struct {
	status int
	header http.Header
	doc    *goquery.Document
}

func get(t *testing.T, client *http.Client, target string) page {
	t.Helper()

	resp, err := client.Get(target)
	require.NoError(t, err)
	return readPage(t, resp)
}

func post(t *testing.T, client *http.Client, target string, values url.Values, headers map[string]string) page {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return readPage(t, resp)
}

func readPage(t *testing.T, resp *http.Response) page {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return page{status: resp.StatusCode, header: resp.Header, doc: testutil.ParseHTML(t, body)}
}

func csrfToken(t *testing.T, p page) string {
	t.Helper()

	token := p.doc.Find("input[name='_csrf']").AttrOr("value", "")
	require.NotEmpty(t, token, "page should carry a csrf token")
	return token
}

func credentials(token, username, password string) url.Values {
	return url.Values{
		"_csrf":                  {token},
		loginform.UsernameField: {username},
		loginform.PasswordField: {password},
	}
}

func signIn(t *testing.T, client *http.Client, base string) {
	t.Helper()

	login := get(t, client, base+"/login")
	res := post(t, client, base+"/login", credentials(csrfToken(t, login), testutil.Username, testutil.Password), nil)
	require.Equal(t, http.StatusSeeOther, res.status)
}

func TestLoginPageRendersForm(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	res := get(t, client, ts.URL+"/login")
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "no-store, max-age=0", res.header.Get("Cache-Control"))

	form := res.doc.Find("form[data-login-container]")
	require.Equal(t, 1, form.Length())
	require.Equal(t, "/login", form.AttrOr("action", ""))
	require.Equal(t, 1, form.Find("input[name='username'][type='text']").Length())
	require.Equal(t, 1, form.Find("input[name='password'][type='password']").Length())
	require.Equal(t, loginform.LoginLabel, strings.TrimSpace(form.Find("button[data-login-button]").Text()))
	require.Empty(t, strings.TrimSpace(form.Find("[data-login-error]").Text()))
	csrfToken(t, res)

	require.Equal(t, "TEST", res.doc.Find("[data-environment-badge]").Text())
}

func TestLoginSuccessRedirectsAndSignsIn(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	login := get(t, client, ts.URL+"/login")
	res := post(t, client, ts.URL+"/login", credentials(csrfToken(t, login), testutil.Username, testutil.Password), nil)
	require.Equal(t, http.StatusSeeOther, res.status)
	require.Equal(t, "/", res.header.Get("Location"))

	home := get(t, client, ts.URL+"/")
	require.Equal(t, http.StatusOK, home.status)
	require.Equal(t, testutil.DisplayName, home.doc.Find("[data-user='alice']").Text())
}

func TestLoginShowsValidationErrors(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	login := get(t, client, ts.URL+"/login")
	token := csrfToken(t, login)

	res := post(t, client, ts.URL+"/login", credentials(token, "", ""), nil)
	require.Equal(t, http.StatusUnprocessableEntity, res.status)
	require.Equal(t, loginform.UsernameEmptyMessage, res.doc.Find("[data-login-error='username']").Text())
	require.Equal(t, loginform.PasswordEmptyMessage, res.doc.Find("[data-login-error='password']").Text())

	res = post(t, client, ts.URL+"/login", credentials(token, "bob", ""), nil)
	require.Equal(t, http.StatusUnprocessableEntity, res.status)
	require.Empty(t, res.doc.Find("[data-login-error='username']").Text())
	require.Equal(t, loginform.PasswordEmptyMessage, res.doc.Find("[data-login-error='password']").Text())
	require.Equal(t, "bob", res.doc.Find("input[name='username']").AttrOr("value", ""))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	login := get(t, client, ts.URL+"/login")
	res := post(t, client, ts.URL+"/login", credentials(csrfToken(t, login), testutil.Username, "wrong"), nil)
	require.Equal(t, http.StatusUnauthorized, res.status)
	require.Equal(t, "Invalid username or password", res.doc.Find("[data-flash='error']").Text())
	require.Equal(t, testutil.Username, res.doc.Find("input[name='username']").AttrOr("value", ""))
	_, hasValue := res.doc.Find("input[name='password']").Attr("value")
	require.False(t, hasValue)

	home := get(t, client, ts.URL+"/")
	require.Equal(t, http.StatusFound, home.status)
}

func TestLoginHTMXRedirect(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	login := get(t, client, ts.URL+"/login")
	token := csrfToken(t, login)
	values := credentials("", testutil.Username, testutil.Password)
	values.Del("_csrf")

	res := post(t, client, ts.URL+"/login", values, map[string]string{
		"HX-Request":   "true",
		"X-CSRF-Token": token,
	})
	require.Equal(t, http.StatusNoContent, res.status)
	require.Equal(t, "/", res.header.Get("HX-Redirect"))
}

func TestLoginRequiresCSRFToken(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	get(t, client, ts.URL+"/login")
	res := post(t, client, ts.URL+"/login", credentials("forged", testutil.Username, testutil.Password), nil)
	require.Equal(t, http.StatusForbidden, res.status)
}

func TestLoginHonoursNextWithinBasePath(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithBasePath("/app"))

	t.Run("protected page sends to login with next", func(t *testing.T) {
		client := testutil.NewClient(t)
		res := get(t, client, ts.URL+"/app/reports?range=7d")
		require.Equal(t, http.StatusNotFound, res.status)

		res = get(t, client, ts.URL+"/app")
		require.Equal(t, http.StatusFound, res.status)
		require.Equal(t, "/app/login?next=%2Fapp", res.header.Get("Location"))

		login := get(t, client, ts.URL+res.header.Get("Location"))
		require.Equal(t, "Please sign in to continue.", login.doc.Find("[data-flash]").Text())
		require.Equal(t, "/app", login.doc.Find("input[name='next']").AttrOr("value", ""))
	})

	t.Run("safe next is followed", func(t *testing.T) {
		client := testutil.NewClient(t)
		login := get(t, client, ts.URL+"/app/login")
		values := credentials(csrfToken(t, login), testutil.Username, testutil.Password)
		values.Set("next", "/app/reports?range=7d")

		res := post(t, client, ts.URL+"/app/login", values, nil)
		require.Equal(t, http.StatusSeeOther, res.status)
		require.Equal(t, "/app/reports?range=7d", res.header.Get("Location"))
	})

	t.Run("foreign next falls back to redirect url", func(t *testing.T) {
		client := testutil.NewClient(t)
		login := get(t, client, ts.URL+"/app/login")
		values := credentials(csrfToken(t, login), testutil.Username, testutil.Password)
		values.Set("next", "https://evil.example/app")

		res := post(t, client, ts.URL+"/app/login", values, nil)
		require.Equal(t, http.StatusSeeOther, res.status)
		require.Equal(t, "/app", res.header.Get("Location"))
	})
}

func TestRedirectURLOverride(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithRedirectURL("/welcome"))
	client := testutil.NewClient(t)

	login := get(t, client, ts.URL+"/login")
	res := post(t, client, ts.URL+"/login", credentials(csrfToken(t, login), testutil.Username, testutil.Password), nil)
	require.Equal(t, http.StatusSeeOther, res.status)
	require.Equal(t, "/welcome", res.header.Get("Location"))
}

func TestSignedInUserSkipsLoginForm(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	signIn(t, client, ts.URL)

	res := get(t, client, ts.URL+"/login")
	require.Equal(t, http.StatusFound, res.status)
	require.Equal(t, "/", res.header.Get("Location"))

	res = get(t, client, ts.URL+"/login?force=1")
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, 1, res.doc.Find("form[data-login-container]").Length())
}

func TestLogout(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	signIn(t, client, ts.URL)

	home := get(t, client, ts.URL+"/")
	require.Equal(t, http.StatusOK, home.status)
	require.Equal(t, "/logout", home.doc.Find("form[data-logout]").AttrOr("action", ""))

	res := post(t, client, ts.URL+"/logout", url.Values{"_csrf": {csrfToken(t, home)}}, nil)
	require.Equal(t, http.StatusSeeOther, res.status)
	require.Equal(t, "/login?status=logged_out", res.header.Get("Location"))

	login := get(t, client, ts.URL+"/login?status=logged_out")
	require.Equal(t, http.StatusOK, login.status)
	require.Equal(t, "You have been signed out.", login.doc.Find("[data-flash='info']").Text())

	res = get(t, client, ts.URL+"/")
	require.Equal(t, http.StatusFound, res.status)
}

func TestAppearanceAndNotice(t *testing.T) {
	t.Parallel()

	color := "#123456"
	position := 0.25
	n, err := notice.Render("**Heads up:** maintenance tonight")
	require.NoError(t, err)

	ts := testutil.NewServer(t,
		testutil.WithAppearance(config.Appearance{
			BackgroundColor:   &color,
			ContainerPosition: &position,
			ButtonMarkup:      "<b>Go</b><script>x()</script>",
			InputClass:        "field",
		}),
		testutil.WithNotice(n),
	)
	client := testutil.NewClient(t)

	res := get(t, client, ts.URL+"/login")
	require.Equal(t, http.StatusOK, res.status)

	require.Contains(t, res.doc.Find("[data-login-background]").AttrOr("style", ""), "background-color:#123456;")
	require.Contains(t, res.doc.Find("[data-login-container]").AttrOr("style", ""), "left:25%;")
	require.Equal(t, "Go", res.doc.Find("button[data-custom-button] b").Text())
	require.Zero(t, res.doc.Find("script").Length())
	require.Equal(t, 2, res.doc.Find("input.field[data-custom-input]").Length())
	require.Equal(t, "Heads up:", res.doc.Find("aside[data-notice] strong").Text())
}

func TestLoginAttemptsAreLoggedWithoutPasswords(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	ts := testutil.NewServer(t, testutil.WithLogger(zap.New(core)))
	client := testutil.NewClient(t)

	login := get(t, client, ts.URL+"/login")
	post(t, client, ts.URL+"/login", credentials(csrfToken(t, login), testutil.Username, "hunter2"), nil)

	rejected := logs.FilterMessage("login rejected").All()
	require.Len(t, rejected, 1)
	fields := rejected[0].ContextMap()
	require.Equal(t, testutil.Username, fields["username"])
	require.NotEmpty(t, fields["action_id"])
	require.NotEmpty(t, fields["request_id"])

	for _, entry := range logs.All() {
		for _, value := range entry.ContextMap() {
			require.NotEqual(t, "hunter2", value)
		}
	}
	require.NotEmpty(t, logs.FilterMessage("request completed").All())
}

func TestHealthAndStatic(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	resp, err := client.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))

	resp, err = client.Get(ts.URL + "/public/static/app.css")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/css")
}
