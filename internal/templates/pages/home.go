package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HomePage greets the signed-in user and offers a logout button.
func HomePage(data HomePageData) templ.Component {
	name := data.DisplayName
	if name == "" {
		name = data.Username
	}
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="home" data-home>`+
			`<h1>Welcome</h1><p>Signed in as <strong data-user="`+templ.EscapeString(data.Username)+`">`+
			templ.EscapeString(name)+`</strong></p>`+
			`<form method="post" action="`+templ.EscapeString(data.LogoutPath)+`" data-logout>`+
			hiddenField(CSRFField, data.CSRFToken)+
			`<button type="submit">Sign out</button></form></section>`)
		return err
	})
	return Layout("Welcome", body)
}
