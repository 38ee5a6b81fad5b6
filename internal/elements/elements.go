// Package elements provides custom input and button elements for the login
// form, configured from operator-supplied markup and CSS classes.
package elements

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/loginform"
)

// MarkupButton is a submit button whose content is caller-supplied HTML,
// sanitised once at construction.
type MarkupButton struct {
	markup string
}

// NewMarkupButton sanitises markup with a UGC policy. Markup that sanitises to
// nothing renders the form's default label instead.
func NewMarkupButton(markup string) *MarkupButton {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("span", "strong", "em", "i", "svg", "path")
	return &MarkupButton{markup: strings.TrimSpace(policy.Sanitize(markup))}
}

// Markup returns the sanitised markup.
func (b *MarkupButton) Markup() string {
	return b.markup
}

// Button implements loginform.ButtonElement.
func (b *MarkupButton) Button(props loginform.ButtonProps) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		content := b.markup
		if content == "" {
			content = templ.EscapeString(props.Label)
		}
		_, err := io.WriteString(w, `<button type="submit" class="lf-button" data-custom-button>`+content+`</button>`)
		return err
	})
}

// ClassInput is a plain input element styled by a caller CSS class.
type ClassInput struct {
	Class string
}

// Input implements loginform.InputElement. Masked inputs never echo their value.
func (c ClassInput) Input(props loginform.InputProps) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		inputType := "text"
		if props.Masked {
			inputType = "password"
		}
		var b strings.Builder
		b.WriteString(`<input data-custom-input class="`)
		b.WriteString(templ.EscapeString(c.Class))
		b.WriteString(`" name="`)
		b.WriteString(templ.EscapeString(props.Name))
		b.WriteString(`" type="`)
		b.WriteString(inputType)
		b.WriteString(`" placeholder="`)
		b.WriteString(templ.EscapeString(placeholderFor(props.Name)))
		b.WriteString(`"`)
		if !props.Masked && props.Value != "" {
			b.WriteString(` value="`)
			b.WriteString(templ.EscapeString(props.Value))
			b.WriteString(`"`)
		}
		b.WriteString(`>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func placeholderFor(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
