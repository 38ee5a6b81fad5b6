// Package pages renders the full HTML documents served by the login host.
package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/httpserver/middleware"
)

// Layout wraps body in the document shell with the stylesheet and the
// environment badge.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		env := middleware.EnvironmentFromContext(ctx)

		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<link rel="stylesheet" href="/public/static/app.css">`+
			`</head><body class="page" data-environment="`+templ.EscapeString(env)+`"><main class="page__main">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><footer class="page__footer"><span data-environment-badge title="`+
			templ.EscapeString(env)+`">`+templ.EscapeString(EnvironmentBadge(env))+`</span></footer></body></html>`)
		return err
	})
}

// EnvironmentBadge abbreviates well-known environment names.
func EnvironmentBadge(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return "PROD"
	case "staging", "stg":
		return "STG"
	case "development", "dev", "":
		return "DEV"
	default:
		return strings.ToUpper(env)
	}
}

func flashBanner(f Flash) templ.Component {
	if strings.TrimSpace(f.Message) == "" {
		return templ.NopComponent
	}
	kind := f.Kind
	if kind == "" {
		kind = FlashInfo
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="flash flash--`+templ.EscapeString(string(kind))+
			`" role="alert" data-flash="`+templ.EscapeString(string(kind))+`">`+
			templ.EscapeString(f.Message)+`</div>`)
		return err
	})
}

func hiddenField(name, value string) string {
	return `<input type="hidden" name="` + templ.EscapeString(name) + `" value="` + templ.EscapeString(value) + `">`
}
