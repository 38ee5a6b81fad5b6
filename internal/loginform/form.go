package loginform

import (
	"net/url"
)

const (
	// UsernameField is the form field name of the username input.
	UsernameField = "username"
	// PasswordField is the form field name of the password input.
	PasswordField = "password"
)

// Form is one login form instance. It owns its FormState and is driven by a
// single host event loop; a Form is not safe for concurrent use.
type Form struct {
	props Props
	state FormState
}

// NewForm constructs a form with empty state. Required props are RedirectURL,
// TryLoginAction, Dispatcher and Navigator.
func NewForm(props Props) (*Form, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Form{props: props}, nil
}

// Props returns the current props.
func (f *Form) Props() Props {
	return f.props
}

// State returns a copy of the current state.
func (f *Form) State() FormState {
	return f.state
}

// Styles resolves the styles for the current props.
func (f *Form) Styles() Styles {
	return ResolveStyles(f.props)
}

// ChangeUsername stores a new username value.
func (f *Form) ChangeUsername(value string) {
	f.state.Username = value
}

// ChangePassword stores a new password value.
func (f *Form) ChangePassword(value string) {
	f.state.Password = value
}

// ResetErrors clears both validation messages.
func (f *Form) ResetErrors() {
	f.state.UsernameError = ""
	f.state.PasswordError = ""
}

// Bind delivers posted field values as change events. Fields absent from
// values are left untouched.
func (f *Form) Bind(values url.Values) {
	if values == nil {
		return
	}
	if _, ok := values[UsernameField]; ok {
		f.ChangeUsername(values.Get(UsernameField))
	}
	if _, ok := values[PasswordField]; ok {
		f.ChangePassword(values.Get(PasswordField))
	}
}

// Login validates the fields and, when both are filled in, dispatches the
// action produced by TryLoginAction exactly once. The outcome of the action is
// not tracked. It reports whether an action was dispatched.
func (f *Form) Login() bool {
	f.ResetErrors()
	result := Validate(f.state)
	f.state.UsernameError = result.Errors.Username
	f.state.PasswordError = result.Errors.Password
	if !result.Valid {
		return false
	}
	f.props.Dispatcher.Dispatch(f.props.TryLoginAction())
	return true
}

// SetProps replaces the props. When IsLoggedIn flips from false to true the
// navigator is asked to replace the location with the previous RedirectURL.
// Invalid props are rejected and the current props are kept.
func (f *Form) SetProps(next Props) error {
	if err := next.Validate(); err != nil {
		return err
	}
	prev := f.props
	f.props = next
	if !prev.IsLoggedIn && next.IsLoggedIn {
		prev.Navigator.Replace(prev.RedirectURL)
	}
	return nil
}
