package pages

import (
	"context"

	"github.com/vincenteof/site/internal/render"
)

const baseCSS = "templates/css/base.css"

// Layout is the document shell shared by the site's pages. Pages using it
// define the "body" template and a Title method.
type Layout struct {
	Header Header
}

var (
	_ render.ComponentUser = Layout{}
	_ render.CSSEmbedder   = Layout{}
)

func (l Layout) Templates(_ context.Context) []string {
	return []string{l.BaseTemplate()}
}

// BaseTemplate is the template pages using the Layout execute.
func (Layout) BaseTemplate() string {
	return "templates/layout.html.tmpl"
}

func (l Layout) UseComponents(_ context.Context) []render.Component {
	return []render.Component{l.Header}
}

func (Layout) EmbedCSS(_ context.Context) []render.CSSInline {
	return []render.CSSInline{{TemplatePath: baseCSS}}
}

// afterBaseCSS orders a stylesheet after the Layout's base stylesheet.
func afterBaseCSS(_ context.Context, other render.CSSInline) render.ResourceRelationship {
	if other.TemplatePath == baseCSS {
		return render.ResourceRelationshipAfter
	}
	return render.ResourceRelationshipNeutral
}
