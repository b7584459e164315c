// Package pages holds the components and pages of the site, along with the
// templates and stylesheets they render from.
package pages

import (
	"context"
	"embed"

	"github.com/vincenteof/site/internal/render"
)

//go:embed templates
var templateFS embed.FS

var _ render.ServerErrorPager = &Site{}

// Site is the render.Site every page of the site is rendered with.
type Site struct {
	*render.CachedSite

	// Title is the document title of the home page and the suffix of
	// every other page's title.
	Title string

	// Lang is the value of the document's lang attribute.
	Lang string
}

// NewSite returns a Site rendering from the embedded templates.
func NewSite(title string) *Site {
	return &Site{
		CachedSite: render.NewCachedSite(templateFS),
		Title:      title,
		Lang:       "zh-CN",
	}
}

// ServerErrorPage is rendered whenever another page fails to render.
func (*Site) ServerErrorPage(_ context.Context) render.Page {
	return ErrorPage{}
}
