package pages

import (
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/loginform"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/notice"
)

// FlashKind selects the banner colour.
type FlashKind string

const (
	FlashInfo  FlashKind = "info"
	FlashError FlashKind = "error"
)

// Flash is a one-line banner shown above the form.
type Flash struct {
	Kind    FlashKind
	Message string
}

// LoginPageData encapsulates rendering state for the login screen.
type LoginPageData struct {
	Form      *loginform.Form
	Flash     Flash
	Notice    notice.Notice
	Next      string
	CSRFToken string
}

// HomePageData is the signed-in landing page.
type HomePageData struct {
	DisplayName string
	Username    string
	LogoutPath  string
	CSRFToken   string
}
