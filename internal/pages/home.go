package pages

import (
	"context"

	"github.com/vincenteof/site/internal/render"
)

// HomePage is the page served at "/": the hero, the positioning and about
// prose, the themes grid, the selected essays, and the membership section.
type HomePage struct {
	Layout Layout
}

var (
	_ render.Page          = HomePage{}
	_ render.ComponentUser = HomePage{}
	_ render.CSSEmbedder   = HomePage{}
)

// NewHomePage returns a HomePage using the site's Layout.
func NewHomePage() HomePage {
	return HomePage{Layout: Layout{Header: Header{}}}
}

func (HomePage) Templates(_ context.Context) []string {
	return []string{"templates/home.html.tmpl"}
}

func (h HomePage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{h.Layout}
}

func (HomePage) Key(_ context.Context) string {
	return "home"
}

func (h HomePage) ExecutedTemplate(_ context.Context) string {
	return h.Layout.BaseTemplate()
}

func (HomePage) EmbedCSS(_ context.Context) []render.CSSInline {
	return []render.CSSInline{
		{TemplatePath: "templates/css/home.css", CSSInlineRelationCalculator: afterBaseCSS},
	}
}

// Title is empty: the home page uses the bare site title.
func (HomePage) Title() string {
	return ""
}

// Themes returns the themes grid, one block per Theme.
func (HomePage) Themes() []Theme {
	return Themes()
}

// Essays returns the selected essay titles.
func (HomePage) Essays() []string {
	return Essays()
}
