package notice

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	n, err := Render("**Maintenance** tonight, see https://status.example.com\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	require.False(t, n.Empty())
	require.NotContains(t, n.HTML(), "<script")

	var buf bytes.Buffer
	require.NoError(t, n.Component().Render(context.Background(), &buf))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	aside := doc.Find("aside[data-notice]")
	require.Equal(t, "Maintenance", aside.Find("strong").Text())

	link := aside.Find("a")
	require.Equal(t, "https://status.example.com", link.AttrOr("href", ""))
	require.Contains(t, link.AttrOr("rel", ""), "nofollow")
}

func TestEmptyNoticeRendersNothing(t *testing.T) {
	t.Parallel()

	n, err := Render("  \n")
	require.NoError(t, err)
	require.True(t, n.Empty())

	var buf bytes.Buffer
	require.NoError(t, n.Component().Render(context.Background(), &buf))
	require.Empty(t, buf.String())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notice.md")
	require.NoError(t, os.WriteFile(path, []byte("# Welcome"), 0o600))

	n, err := LoadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(n.HTML(), "Welcome"))

	empty, err := LoadFile("")
	require.NoError(t, err)
	require.True(t, empty.Empty())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
}
