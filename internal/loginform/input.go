package loginform

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// TextInputProps configures the built-in text input. Nil colors and width fall
// back to the stylesheet defaults.
type TextInputProps struct {
	Name       string
	HintText   string
	Value      string
	IsPassword bool

	BorderColor        *string
	BorderFocusedColor *string
	FontColor          *string
	HintColor          *string
	HintFocusedColor   *string
	Width              *string
}

// Style returns the custom properties the stylesheet reads for this input.
func (p TextInputProps) Style() Style {
	var style Style
	set := func(property string, value *string) {
		if value != nil {
			style = style.With(property, *value)
		}
	}
	set("--lf-border", p.BorderColor)
	set("--lf-border-focus", p.BorderFocusedColor)
	set("--lf-font", p.FontColor)
	set("--lf-hint", p.HintColor)
	set("--lf-hint-focus", p.HintFocusedColor)
	set("width", p.Width)
	return style
}

// TextInput renders an underlined input with a floating hint label. Password
// inputs never write their value into the markup.
func TextInput(p TextInputProps) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		id := "lf-" + p.Name
		inputType := "text"
		autocomplete := "username"
		if p.IsPassword {
			inputType = "password"
			autocomplete = "current-password"
		}

		out := &htmlWriter{w: w}
		out.raw(`<div class="lf-input" data-login-input="`)
		out.text(p.Name)
		out.raw(`"`)
		if style := p.Style(); len(style) > 0 {
			out.raw(` style="`)
			out.text(style.String())
			out.raw(`"`)
		}
		out.raw(`><input id="`)
		out.text(id)
		out.raw(`" name="`)
		out.text(p.Name)
		out.raw(`" type="`)
		out.raw(inputType)
		out.raw(`" autocomplete="`)
		out.raw(autocomplete)
		out.raw(`" placeholder=" "`)
		if !p.IsPassword && p.Value != "" {
			out.raw(` value="`)
			out.text(p.Value)
			out.raw(`"`)
		}
		out.raw(`><label for="`)
		out.text(id)
		out.raw(`">`)
		out.text(p.HintText)
		out.raw(`</label></div>`)
		return out.err
	})
}
