package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cssComponent struct {
	links  []CSSLink
	inline []CSSInline
}

func (cssComponent) Templates(context.Context) []string { return nil }

func (c cssComponent) LinkCSS(context.Context) []CSSLink { return c.links }

func (c cssComponent) EmbedCSS(context.Context) []CSSInline { return c.inline }

func keys(resources []cssResource) []string {
	out := make([]string, 0, len(resources))
	for _, res := range resources {
		out = append(out, res.key())
	}
	return out
}

func TestWalkGraphImplicitOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := buildCSSGraph(ctx, []Component{
		cssComponent{inline: []CSSInline{{TemplatePath: "z.css"}, {TemplatePath: "y.css"}, {TemplatePath: "x.css"}}},
	})
	res, err := walkGraph(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"inline:z.css", "inline:y.css", "inline:x.css"}, keys(res))
}

func TestWalkGraphExplicitOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	beforeBase := func(_ context.Context, other CSSLink) ResourceRelationship {
		if other.Href == "/base.css" {
			return ResourceRelationshipBefore
		}
		return ResourceRelationshipNeutral
	}
	g := buildCSSGraph(ctx, []Component{
		cssComponent{inline: []CSSInline{{TemplatePath: "page.css", CSSLinkRelationCalculator: beforeBase}}},
		cssComponent{links: []CSSLink{{Href: "/base.css"}, {Href: "/theme.css"}}},
	})
	res, err := walkGraph(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"inline:page.css", "link:/base.css", "link:/theme.css"}, keys(res))
}

func TestWalkGraphTieBreak(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := buildCSSGraph(ctx, []Component{
		cssComponent{inline: []CSSInline{{TemplatePath: "a.css"}}},
		cssComponent{links: []CSSLink{{Href: "/b.css"}}},
	})
	res, err := walkGraph(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"link:/b.css", "inline:a.css"}, keys(res))
}

func TestWalkGraphCycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	after := func(target string) func(context.Context, CSSInline) ResourceRelationship {
		return func(_ context.Context, other CSSInline) ResourceRelationship {
			if other.TemplatePath == target {
				return ResourceRelationshipAfter
			}
			return ResourceRelationshipNeutral
		}
	}
	g := buildCSSGraph(ctx, []Component{
		cssComponent{inline: []CSSInline{
			{TemplatePath: "a.css", CSSInlineRelationCalculator: after("b.css")},
			{TemplatePath: "b.css", CSSInlineRelationCalculator: after("a.css")},
			{TemplatePath: "free.css"},
		}},
	})
	res, err := walkGraph(g)
	require.ErrorIs(t, err, ErrResourceCycle)
	assert.Contains(t, err.Error(), "CSSInline(a.css)")
	assert.Equal(t, []string{"inline:free.css"}, keys(res))
}
