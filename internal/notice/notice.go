// Package notice renders the operator-supplied markdown shown above the login form.
package notice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Notice is sanitised HTML rendered from markdown.
type Notice struct {
	html string
}

// Render converts markdown to sanitised HTML.
func Render(markdown string) (Notice, error) {
	if strings.TrimSpace(markdown) == "" {
		return Notice{}, nil
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return Notice{}, fmt.Errorf("notice: render markdown: %w", err)
	}
	return Notice{html: strings.TrimSpace(newPolicy().Sanitize(buf.String()))}, nil
}

// LoadFile reads and renders a markdown file. An empty path yields an empty notice.
func LoadFile(path string) (Notice, error) {
	if strings.TrimSpace(path) == "" {
		return Notice{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Notice{}, fmt.Errorf("notice: read %s: %w", path, err)
	}
	return Render(string(raw))
}

// Empty reports whether there is anything to show.
func (n Notice) Empty() bool {
	return n.html == ""
}

// HTML returns the sanitised markup.
func (n Notice) HTML() string {
	return n.html
}

// Component renders the notice inside an aside; empty notices render nothing.
func (n Notice) Component() templ.Component {
	if n.Empty() {
		return templ.NopComponent
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<aside class="notice" data-notice>`+n.html+`</aside>`)
		return err
	})
}

func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}
