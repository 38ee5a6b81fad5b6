package loginform

import (
	"strconv"
	"strings"
)

// Declaration is a single CSS property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// Style is an ordered list of CSS declarations. A nil Style means "not supplied".
// Styles are values: With returns a copy and never modifies the receiver.
type Style []Declaration

// NewStyle builds a Style from alternating property/value pairs. A trailing
// property without a value is dropped.
func NewStyle(pairs ...string) Style {
	style := make(Style, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		style = style.With(pairs[i], pairs[i+1])
	}
	return style
}

// With returns a copy of the style with property set to value. An existing
// declaration keeps its position; a new one is appended.
func (s Style) With(property, value string) Style {
	property = strings.TrimSpace(property)
	out := make(Style, len(s), len(s)+1)
	copy(out, s)
	if property == "" {
		return out
	}
	for i := range out {
		if out[i].Property == property {
			out[i].Value = value
			return out
		}
	}
	return append(out, Declaration{Property: property, Value: value})
}

// Get returns the value of property, if declared.
func (s Style) Get(property string) (string, bool) {
	for _, decl := range s {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// Clone returns an independent copy; nil stays nil.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	copy(out, s)
	return out
}

// String renders the style as an inline style attribute value.
func (s Style) String() string {
	var b strings.Builder
	for _, decl := range s {
		if decl.Property == "" {
			continue
		}
		b.WriteString(decl.Property)
		b.WriteByte(':')
		b.WriteString(decl.Value)
		b.WriteByte(';')
	}
	return b.String()
}

// Styles holds the resolved style for every region of the form.
type Styles struct {
	Background    Style
	Container     Style
	Button        Style
	ButtonWrapper Style
	Error         Style
}

func defaultBackgroundStyle() Style {
	return NewStyle(
		"position", "fixed",
		"width", "100%",
		"height", "100%",
		"background-color", "#3498DB",
	)
}

func defaultContainerStyle() Style {
	return NewStyle(
		"position", "absolute",
		"top", "50%",
		"left", "50%",
		"background-color", "#2E86C1D8",
		"padding", "3rem 2rem",
		"-ms-transform", "translateX(-50%) translateY(-50%)",
		"-webkit-transform", "translate(-50%,-50%)",
		"transform", "translate(-50%,-50%)",
		"border-top-left-radius", "1rem",
	)
}

func defaultButtonStyle() Style {
	return NewStyle(
		"float", "right",
		"cursor", "pointer",
		"margin-top", "1.5rem",
		"padding", "0.5rem 1rem",
		"color", "#FFF",
		"font-size", "0.875rem",
		"background-position", "center",
		"transition", "background 0.8s",
	)
}

func buttonWrapperStyle() Style {
	return NewStyle(
		"float", "right",
		"margin-top", "1.5rem",
	)
}

func errorTextStyle() Style {
	return NewStyle(
		"font-size", "0.875rem",
		"height", "1rem",
		"color", "#CC2C21",
		"font-style", "italic",
	)
}

// ResolveStyles computes the style of every region from props. Each call builds
// fresh values from the defaults, so forms never observe each other's overrides.
func ResolveStyles(p Props) Styles {
	return Styles{
		Background:    resolveBackground(p),
		Container:     resolveContainer(p),
		Button:        resolveButton(p),
		ButtonWrapper: buttonWrapperStyle(),
		Error:         errorTextStyle(),
	}
}

func resolveBackground(p Props) Style {
	if p.BackgroundStyle != nil {
		return p.BackgroundStyle.Clone()
	}
	style := defaultBackgroundStyle()
	if p.BackgroundColor != nil {
		style = style.With("background-color", *p.BackgroundColor)
	}
	if p.BackgroundImageURL != nil {
		style = style.With("background-image", "url('"+*p.BackgroundImageURL+"')")
	}
	if p.BackgroundRepeat != nil {
		repeat := "no-repeat"
		if *p.BackgroundRepeat {
			repeat = "repeat"
		}
		style = style.With("background-repeat", repeat)
	}
	if p.BackgroundSize != nil {
		style = style.With("background-size", *p.BackgroundSize)
	}
	return style
}

func resolveContainer(p Props) Style {
	if p.ContainerStyle != nil {
		return p.ContainerStyle.Clone()
	}
	style := defaultContainerStyle()
	if p.ContainerColor != nil {
		style = style.With("background-color", *p.ContainerColor)
	}
	if p.ContainerPosition != nil {
		// Out-of-range positions keep the centred default.
		if pos := *p.ContainerPosition; pos >= 0 && pos <= 1 {
			style = style.With("left", formatPercent(pos))
		}
	}
	return style
}

func resolveButton(p Props) Style {
	style := defaultButtonStyle()
	if p.ButtonColor != nil {
		style = style.With("color", *p.ButtonColor)
	}
	return style
}

func formatPercent(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', -1, 64) + "%"
}
