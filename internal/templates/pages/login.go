package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// CSRFField is the hidden form field carrying the CSRF token.
const CSRFField = "_csrf"

// NextField is the hidden form field carrying the post-login target.
const NextField = "next"

// LoginPage renders the flash banner, the operator notice and the login form.
// The CSRF token and next target are passed to the form as children so they
// are posted with the credentials.
func LoginPage(data LoginPageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := flashBanner(data.Flash).Render(ctx, w); err != nil {
			return err
		}
		if err := data.Notice.Component().Render(ctx, w); err != nil {
			return err
		}
		if data.Form == nil {
			return nil
		}
		hidden := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			fields := hiddenField(CSRFField, data.CSRFToken)
			if data.Next != "" {
				fields += hiddenField(NextField, data.Next)
			}
			_, err := io.WriteString(w, fields)
			return err
		})
		return data.Form.Component().Render(templ.WithChildren(ctx, hidden), w)
	})
	return Layout("Sign in", body)
}
