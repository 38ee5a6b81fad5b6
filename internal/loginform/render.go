package loginform

import (
	"context"
	_ "embed"
	"io"

	"github.com/a-h/templ"
)

// LoginLabel is the text of the built-in button.
const LoginLabel = "LOGIN"

//go:embed loginform.css
var stylesheet string

// Component renders the form with the current props and state. Templ children
// passed to the component (for example a CSRF hidden field) are rendered at the
// top of the form element.
func (f *Form) Component() templ.Component {
	props := f.props
	state := f.state
	styles := ResolveStyles(props)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		out := &htmlWriter{w: w}
		out.raw(`<div data-login-form><style>`)
		out.raw(stylesheet)
		out.raw(`</style><div data-login-background style="`)
		out.text(styles.Background.String())
		out.raw(`"><form data-login-container method="post" action="`)
		out.text(props.FormAction)
		out.raw(`" style="`)
		out.text(styles.Container.String())
		out.raw(`">`)
		if out.err != nil {
			return out.err
		}

		if err := children.Render(ctx, w); err != nil {
			return err
		}

		if props.InputElement != nil {
			out.raw(`<div data-login-inputs="custom">`)
			out.component(ctx, props.InputElement.Input(InputProps{
				Name:     UsernameField,
				Value:    state.Username,
				OnChange: f.ChangeUsername,
			}))
			out.errorText(UsernameField, state.UsernameError, styles.Error)
			out.component(ctx, props.InputElement.Input(InputProps{
				Name:     PasswordField,
				Value:    state.Password,
				Masked:   true,
				OnChange: f.ChangePassword,
			}))
			out.errorText(PasswordField, state.PasswordError, styles.Error)
			out.raw(`</div>`)
		} else {
			out.raw(`<div data-login-inputs="builtin">`)
			out.component(ctx, TextInput(builtinInputProps(props, UsernameField, "Username", state.Username, false)))
			out.errorText(UsernameField, state.UsernameError, styles.Error)
			out.component(ctx, TextInput(builtinInputProps(props, PasswordField, "Password", state.Password, true)))
			out.errorText(PasswordField, state.PasswordError, styles.Error)
			out.raw(`</div>`)
		}

		if props.ButtonElement != nil {
			out.raw(`<div data-login-button-wrapper style="`)
			out.text(styles.ButtonWrapper.String())
			out.raw(`">`)
			out.component(ctx, props.ButtonElement.Button(ButtonProps{
				Label:   LoginLabel,
				OnClick: func() { f.Login() },
			}))
			out.raw(`</div>`)
		} else {
			out.raw(`<button type="submit" class="lf-button" data-login-button style="`)
			out.text(styles.Button.String())
			out.raw(`">`)
			out.text(LoginLabel)
			out.raw(`</button>`)
		}

		out.raw(`</form></div></div>`)
		return out.err
	})
}

func builtinInputProps(p Props, name, hint, value string, masked bool) TextInputProps {
	return TextInputProps{
		Name:               name,
		HintText:           hint,
		Value:              value,
		IsPassword:         masked,
		BorderColor:        p.InputBorderColor,
		BorderFocusedColor: p.InputBorderFocusedColor,
		FontColor:          p.InputFontColor,
		HintColor:          p.InputHintColor,
		HintFocusedColor:   p.InputHintFocusedColor,
		Width:              p.InputWidth,
	}
}

// htmlWriter keeps the first write error so markup can be emitted without
// checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func (h *htmlWriter) errorText(field, message string, style Style) {
	h.raw(`<div data-login-error="`)
	h.text(field)
	h.raw(`" style="`)
	h.text(style.String())
	h.raw(`">`)
	h.text(message)
	h.raw(`</div>`)
}
