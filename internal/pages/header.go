package pages

import (
	"context"

	"github.com/vincenteof/site/internal/render"
)

// NavLink is one anchor in the header's navigation.
type NavLink struct {
	Href  string
	Label string
}

// Header is the top bar: a brand link home and anchors into the home page.
type Header struct{}

var (
	_ render.Component   = Header{}
	_ render.CSSEmbedder = Header{}
)

func (Header) Templates(_ context.Context) []string {
	return []string{"templates/header.html.tmpl"}
}

func (Header) EmbedCSS(_ context.Context) []render.CSSInline {
	return []render.CSSInline{
		{TemplatePath: "templates/css/header.css", CSSInlineRelationCalculator: afterBaseCSS},
	}
}

// Brand is the text of the home link.
func (Header) Brand() string {
	return "Vincenteof"
}

// Links returns the navigation anchors, in display order.
func (Header) Links() []NavLink {
	return []NavLink{
		{Href: "#selected", Label: "文章"},
		{Href: "#membership", Label: "会员"},
	}
}
