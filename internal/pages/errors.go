package pages

import (
	"context"

	"github.com/vincenteof/site/internal/render"
)

// NotFoundPage is rendered for any path other than the home page.
type NotFoundPage struct {
	Layout Layout
}

var _ render.Page = NotFoundPage{}

// NewNotFoundPage returns a NotFoundPage using the site's Layout.
func NewNotFoundPage() NotFoundPage {
	return NotFoundPage{Layout: Layout{Header: Header{}}}
}

func (NotFoundPage) Templates(_ context.Context) []string {
	return []string{"templates/not_found.html.tmpl"}
}

func (p NotFoundPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{p.Layout}
}

func (NotFoundPage) Key(_ context.Context) string {
	return "not-found"
}

func (p NotFoundPage) ExecutedTemplate(_ context.Context) string {
	return p.Layout.BaseTemplate()
}

func (NotFoundPage) Title() string {
	return "页面不存在"
}

// ErrorPage is the server error page. It stands alone, without the Layout,
// so a broken Layout can't take it down too.
type ErrorPage struct{}

var _ render.Page = ErrorPage{}

func (ErrorPage) Templates(_ context.Context) []string {
	return []string{"templates/server_error.html.tmpl"}
}

func (ErrorPage) Key(_ context.Context) string {
	return "server-error"
}

func (ErrorPage) ExecutedTemplate(_ context.Context) string {
	return "templates/server_error.html.tmpl"
}
