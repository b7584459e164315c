package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func findTag(n *html.Node, name string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == name {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findTag(c, name)...)
	}
	return out
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")

	err := newApp().Run([]string{"site", "--log-level", "error", "--title", "Static", "render", "--out", path})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	doc, err := html.Parse(f)
	require.NoError(t, err)

	titles := findTag(doc, "title")
	require.Len(t, titles, 1)
	require.NotNil(t, titles[0].FirstChild)
	assert.Equal(t, "Static", strings.TrimSpace(titles[0].FirstChild.Data))
	assert.Len(t, findTag(doc, "header"), 1)
	assert.Len(t, findTag(doc, "button"), 1)
	assert.Len(t, findTag(doc, "article"), 3)
}

func TestRenderCommandBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "index.html")

	err := newApp().Run([]string{"site", "--log-level", "error", "render", "--out", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create")
}
