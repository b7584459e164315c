package render

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cssSite struct {
	*CachedSite
}

type cssPage struct {
	cssComponent
	key string
}

func (p cssPage) Key(context.Context) string { return p.key }

func (cssPage) ExecutedTemplate(context.Context) string { return "" }

func TestRenderCSSCachesParsedTemplates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fsys := fstest.MapFS{
		"a.css": {Data: []byte(`a {}`)},
	}
	site := cssSite{CachedSite: NewCachedSite(fsys)}
	page := cssPage{cssComponent: cssComponent{inline: []CSSInline{{TemplatePath: "a.css"}}}, key: "styled"}

	first, err := renderCSS(ctx, site, page, nil)
	require.NoError(t, err)
	cached := site.GetCachedCSSTemplate(ctx, cssTemplateKey("styled", "a.css"))
	require.NotNil(t, cached)

	// a broken source on disk is never reparsed
	fsys["a.css"] = &fstest.MapFile{Data: []byte(`{{ .Nope`)}
	second, err := renderCSS(ctx, site, page, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Same(t, cached, site.GetCachedCSSTemplate(ctx, cssTemplateKey("styled", "a.css")))
	assert.Contains(t, string(second), "a {}")

	// another page parses with its own functions
	other := cssPage{cssComponent: page.cssComponent, key: "other"}
	_, err = renderCSS(ctx, site, other, nil)
	require.NoError(t, err)
	assert.NotSame(t, cached, site.GetCachedCSSTemplate(ctx, cssTemplateKey("other", "a.css")))
}
