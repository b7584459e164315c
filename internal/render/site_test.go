package render_test

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/vincenteof/site/internal/render"
)

func TestCachedSite(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"foo.tmpl":  {Data: []byte(`{{ define "name" }}foo.tmpl{{ end }}`)},
		"bar.tmpl":  {Data: []byte(`{{ define "name" }}bar.tmpl{{ end }}`)},
		"base.tmpl": {Data: []byte(`{{ block "name" . }}base.tmpl{{ end }}{{ .CSS }}`)},
		"foo.css":   {Data: []byte(`foo.css`)},
	}
	site := render.NewCachedSite(fsys)

	foo := testPage{templates: []string{"base.tmpl", "foo.tmpl"}, key: "foo", executed: "base.tmpl"}
	bar := testPage{templates: []string{"base.tmpl", "bar.tmpl"}, key: "bar", executed: "base.tmpl"}
	styled := testPage{
		templates: []string{"base.tmpl"},
		key:       "styled",
		executed:  "base.tmpl",
		inline:    []render.CSSInline{{TemplatePath: "foo.css"}},
	}

	renderChangeAndRerender(t, fsys, site, foo, "foo.tmpl", "foo.tmpl", "foo.tmpl")
	renderChangeAndRerender(t, fsys, site, bar, "bar.tmpl", "bar.tmpl", "bar.tmpl")
	renderChangeAndRerender(t, fsys, site, styled, "foo.css", "foo.css", "base.tmpl<style>\nfoo.css\n</style>\n")
}

// renderChangeAndRerender renders page, rewrites file in fsys, and renders
// again, expecting the cached output both times.
func renderChangeAndRerender(t *testing.T, fsys fstest.MapFS, site render.Site, page render.Page, file, old, expected string) {
	t.Helper()

	var out bytes.Buffer
	render.Render(testContext(), &out, site, page)
	assert.Equal(t, expected, out.String())

	out.Reset()
	oldData := slices.Clone(fsys[file].Data)
	fsys[file].Data = []byte(strings.ReplaceAll(string(fsys[file].Data), old, "changed-"+old))
	defer func() { fsys[file].Data = oldData }()

	render.Render(testContext(), &out, site, page)
	assert.Equal(t, expected, out.String(), "expected cached output after modifying %s", file)
}

func TestCachedSiteGetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	site := render.NewCachedSite(fstest.MapFS{})

	assert.Nil(t, site.GetCachedTemplate(ctx, "missing"))
	assert.Nil(t, site.GetCachedResource(ctx, "missing"))

	site.SetCachedResource(ctx, "key", "value")
	res := site.GetCachedResource(ctx, "key")
	if assert.NotNil(t, res) {
		assert.Equal(t, "value", *res)
	}
}
