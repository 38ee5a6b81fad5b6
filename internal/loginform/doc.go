// Package loginform implements a configurable login form rendered as a templ
// component: style resolution from props, non-empty field validation, login
// action dispatch and a redirect once the host reports the user as logged in.
package loginform
