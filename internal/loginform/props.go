package loginform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// ErrInvalidProps indicates a form was configured without one of its required props.
var ErrInvalidProps = errors.New("loginform: invalid props")

// Action is the unit of work produced by Props.TryLoginAction. The form never
// inspects it; it is handed to the Dispatcher as-is.
type Action any

// Dispatcher receives login actions.
type Dispatcher interface {
	Dispatch(Action)
}

// DispatcherFunc adapts ordinary functions to Dispatcher.
type DispatcherFunc func(Action)

// Dispatch calls f(action).
func (f DispatcherFunc) Dispatch(action Action) { f(action) }

// Navigator performs the redirect once the user is logged in. Replace should
// substitute the current location rather than push a new history entry.
type Navigator interface {
	Replace(url string)
}

// NavigatorFunc adapts ordinary functions to Navigator.
type NavigatorFunc func(string)

// Replace calls f(url).
func (f NavigatorFunc) Replace(url string) { f(url) }

// InputProps is what the form hands to a custom input element.
type InputProps struct {
	// Name is the form field name the element must post its value under.
	Name string
	// Value is the current field value.
	Value string
	// Masked asks the element to obscure the entered characters.
	Masked bool
	// OnChange delivers a new field value to the form.
	OnChange func(string)
}

// InputElement replaces the built-in text inputs.
type InputElement interface {
	Input(InputProps) templ.Component
}

// InputElementFunc adapts ordinary functions to InputElement.
type InputElementFunc func(InputProps) templ.Component

// Input calls f(props).
func (f InputElementFunc) Input(props InputProps) templ.Component { return f(props) }

// ButtonProps is what the form hands to a custom button element.
type ButtonProps struct {
	Label   string
	OnClick func()
}

// ButtonElement replaces the built-in LOGIN button.
type ButtonElement interface {
	Button(ButtonProps) templ.Component
}

// ButtonElementFunc adapts ordinary functions to ButtonElement.
type ButtonElementFunc func(ButtonProps) templ.Component

// Button calls f(props).
func (f ButtonElementFunc) Button(props ButtonProps) templ.Component { return f(props) }

// Props configures a Form. Pointer fields are optional: nil keeps the built-in
// default. An explicit BackgroundStyle or ContainerStyle replaces the defaults
// and every individual override for that region.
type Props struct {
	BackgroundColor    *string
	BackgroundImageURL *string
	BackgroundRepeat   *bool
	BackgroundSize     *string
	BackgroundStyle    Style

	ContainerColor *string
	// ContainerPosition is the horizontal position as a fraction in [0,1].
	ContainerPosition *float64
	ContainerStyle    Style

	ButtonColor *string

	InputElement  InputElement
	ButtonElement ButtonElement

	InputBorderColor        *string
	InputBorderFocusedColor *string
	InputFontColor          *string
	InputHintColor          *string
	InputHintFocusedColor   *string
	InputWidth              *string

	IsLoggedIn     bool
	RedirectURL    string
	TryLoginAction func() Action
	Dispatcher     Dispatcher
	Navigator      Navigator

	// FormAction is the action attribute of the rendered form element.
	FormAction string
}

// Validate reports the first missing required prop.
func (p Props) Validate() error {
	switch {
	case strings.TrimSpace(p.RedirectURL) == "":
		return fmt.Errorf("%w: redirect url is required", ErrInvalidProps)
	case p.TryLoginAction == nil:
		return fmt.Errorf("%w: login action factory is required", ErrInvalidProps)
	case p.Dispatcher == nil:
		return fmt.Errorf("%w: dispatcher is required", ErrInvalidProps)
	case p.Navigator == nil:
		return fmt.Errorf("%w: navigator is required", ErrInvalidProps)
	}
	return nil
}

// String returns a pointer to s, for filling optional props.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
