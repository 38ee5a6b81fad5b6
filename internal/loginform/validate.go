package loginform

const (
	// UsernameEmptyMessage is shown below the username field when it is empty.
	UsernameEmptyMessage = "Username cannot be empty"
	// PasswordEmptyMessage is shown below the password field when it is empty.
	PasswordEmptyMessage = "Password cannot be empty"
)

// FormState is the per-instance state of a login form.
type FormState struct {
	Username      string
	Password      string
	UsernameError string
	PasswordError string
}

// FieldErrors holds the per-field validation messages.
type FieldErrors struct {
	Username string
	Password string
}

// Result is the outcome of Validate.
type Result struct {
	Valid  bool
	Errors FieldErrors
}

// Validate checks that both fields are non-empty. Both checks always run, so
// both messages can be reported at once. Previous messages on state are ignored.
func Validate(state FormState) Result {
	result := Result{Valid: true}
	if state.Username == "" {
		result.Errors.Username = UsernameEmptyMessage
		result.Valid = false
	}
	if state.Password == "" {
		result.Errors.Password = PasswordEmptyMessage
		result.Valid = false
	}
	return result
}
