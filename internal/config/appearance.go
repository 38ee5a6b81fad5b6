package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/elements"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/loginform"
)

// Appearance mirrors the optional visual props of the login form as they are
// written in the YAML form file. Omitted keys keep the built-in defaults.
type Appearance struct {
	BackgroundColor    *string   `yaml:"background_color"`
	BackgroundImageURL *string   `yaml:"background_image_url"`
	BackgroundRepeat   *bool     `yaml:"background_repeat"`
	BackgroundSize     *string   `yaml:"background_size"`
	BackgroundStyle    StyleYAML `yaml:"background_style"`

	ContainerColor    *string   `yaml:"container_color"`
	ContainerPosition *float64  `yaml:"container_position"`
	ContainerStyle    StyleYAML `yaml:"container_style"`

	ButtonColor *string `yaml:"button_color"`

	InputBorderColor        *string `yaml:"input_border_color"`
	InputBorderFocusedColor *string `yaml:"input_border_focused_color"`
	InputFontColor          *string `yaml:"input_font_color"`
	InputHintColor          *string `yaml:"input_hint_color"`
	InputHintFocusedColor   *string `yaml:"input_hint_focused_color"`
	InputWidth              *string `yaml:"input_width"`

	// ButtonMarkup replaces the built-in button with sanitised HTML content.
	ButtonMarkup string `yaml:"button_markup"`
	// InputClass replaces the built-in inputs with plain inputs of this class.
	InputClass string `yaml:"input_class"`
}

// StyleYAML decodes a YAML mapping into a style, keeping key order.
type StyleYAML loginform.Style

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StyleYAML) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("config: style must be a mapping (line %d)", node.Line)
	}
	style := make(loginform.Style, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("config: style value for %q must be a scalar (line %d)", key.Value, value.Line)
		}
		style = style.With(key.Value, value.Value)
	}
	*s = StyleYAML(style)
	return nil
}

// LoadAppearance reads the YAML form file. An empty path yields the zero Appearance.
func LoadAppearance(path string) (Appearance, error) {
	var appearance Appearance
	if strings.TrimSpace(path) == "" {
		return appearance, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Appearance{}, fmt.Errorf("config: read appearance %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &appearance); err != nil {
		return Appearance{}, fmt.Errorf("config: parse appearance %s: %w", path, err)
	}
	return appearance, nil
}

// Apply copies the appearance onto props, including custom elements when
// ButtonMarkup or InputClass are set.
func (a Appearance) Apply(p *loginform.Props) {
	p.BackgroundColor = a.BackgroundColor
	p.BackgroundImageURL = a.BackgroundImageURL
	p.BackgroundRepeat = a.BackgroundRepeat
	p.BackgroundSize = a.BackgroundSize
	p.BackgroundStyle = loginform.Style(a.BackgroundStyle).Clone()

	p.ContainerColor = a.ContainerColor
	p.ContainerPosition = a.ContainerPosition
	p.ContainerStyle = loginform.Style(a.ContainerStyle).Clone()

	p.ButtonColor = a.ButtonColor

	p.InputBorderColor = a.InputBorderColor
	p.InputBorderFocusedColor = a.InputBorderFocusedColor
	p.InputFontColor = a.InputFontColor
	p.InputHintColor = a.InputHintColor
	p.InputHintFocusedColor = a.InputHintFocusedColor
	p.InputWidth = a.InputWidth

	if strings.TrimSpace(a.ButtonMarkup) != "" {
		p.ButtonElement = elements.NewMarkupButton(a.ButtonMarkup)
	}
	if strings.TrimSpace(a.InputClass) != "" {
		p.InputElement = elements.ClassInput{Class: strings.TrimSpace(a.InputClass)}
	}
}
