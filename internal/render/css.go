package render

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"

	"go.opentelemetry.io/otel/codes"
)

// CSSEmbedder is an interface that Components can fulfill to include CSS
// directly in the rendered HTML, inside <style> elements.
type CSSEmbedder interface {
	// EmbedCSS returns the CSS templates to embed, in the order they
	// should appear unless a relationship says otherwise.
	EmbedCSS(context.Context) []CSSInline
}

// CSSLinker is an interface that Components can fulfill to include CSS
// through <link> elements.
type CSSLinker interface {
	// LinkCSS returns the stylesheets to link to, in the order they
	// should appear unless a relationship says otherwise.
	LinkCSS(context.Context) []CSSLink
}

// CSSInline is a CSS file that gets executed as a text/template against the
// same data as the page and embedded in a <style> element.
type CSSInline struct {
	// TemplatePath is the path of the CSS template within the Site's
	// TemplateDir. Two CSSInlines with the same TemplatePath are the same
	// resource and only rendered once.
	TemplatePath string

	// CSSInlineRelationCalculator, if set, decides where this resource
	// renders relative to each inline CSS resource on the page.
	CSSInlineRelationCalculator func(context.Context, CSSInline) ResourceRelationship

	// CSSLinkRelationCalculator, if set, decides where this resource
	// renders relative to each linked CSS resource on the page.
	CSSLinkRelationCalculator func(context.Context, CSSLink) ResourceRelationship

	// DisableImplicitOrdering drops the implicit dependency on the
	// resource listed before this one by the same Component.
	DisableImplicitOrdering bool
}

// CSSLink is a stylesheet loaded through a <link> element.
type CSSLink struct {
	// Href is the URL of the stylesheet. Two CSSLinks with the same Href
	// are the same resource and only rendered once.
	Href string

	// CSSInlineRelationCalculator, if set, decides where this resource
	// renders relative to each inline CSS resource on the page.
	CSSInlineRelationCalculator func(context.Context, CSSInline) ResourceRelationship

	// CSSLinkRelationCalculator, if set, decides where this resource
	// renders relative to each linked CSS resource on the page.
	CSSLinkRelationCalculator func(context.Context, CSSLink) ResourceRelationship

	// DisableImplicitOrdering drops the implicit dependency on the
	// resource listed before this one by the same Component.
	DisableImplicitOrdering bool
}

// cssResource is either a CSSInline or a CSSLink.
type cssResource interface {
	key() string
	explicitlyOrdered() bool
	implicitlyOrdered() bool
	relationTo(context.Context, cssResource) ResourceRelationship
}

func (c CSSInline) key() string { return "inline:" + c.TemplatePath }

func (c CSSInline) explicitlyOrdered() bool {
	return c.CSSInlineRelationCalculator != nil || c.CSSLinkRelationCalculator != nil
}

func (c CSSInline) implicitlyOrdered() bool {
	return !c.explicitlyOrdered() && !c.DisableImplicitOrdering
}

func (c CSSInline) relationTo(ctx context.Context, other cssResource) ResourceRelationship {
	return relation(ctx, c.CSSInlineRelationCalculator, c.CSSLinkRelationCalculator, other)
}

func (c CSSLink) key() string { return "link:" + c.Href }

func (c CSSLink) explicitlyOrdered() bool {
	return c.CSSInlineRelationCalculator != nil || c.CSSLinkRelationCalculator != nil
}

func (c CSSLink) implicitlyOrdered() bool {
	return !c.explicitlyOrdered() && !c.DisableImplicitOrdering
}

func (c CSSLink) relationTo(ctx context.Context, other cssResource) ResourceRelationship {
	return relation(ctx, c.CSSInlineRelationCalculator, c.CSSLinkRelationCalculator, other)
}

func relation(ctx context.Context, inline func(context.Context, CSSInline) ResourceRelationship, link func(context.Context, CSSLink) ResourceRelationship, other cssResource) ResourceRelationship {
	switch res := other.(type) {
	case CSSInline:
		if inline != nil {
			return inline(ctx, res)
		}
	case CSSLink:
		if link != nil {
			return link(ctx, res)
		}
	}
	return ResourceRelationshipNeutral
}

// renderCSS resolves the order of every CSS resource reachable from page and
// renders them to markup.
func renderCSS[SiteType Site, PageType Page](ctx context.Context, site SiteType, page PageType, funcs template.FuncMap) (template.HTML, error) {
	ctx, span := tracer.Start(ctx, "render.CSS")
	defer span.End()

	resources, err := walkGraph(buildCSSGraph(ctx, getRecursiveComponents(ctx, page)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ordering CSS")
		return "", err
	}

	data := RenderData[SiteType, PageType]{
		Site: site,
		Page: page,
	}
	var out strings.Builder
	for _, resource := range resources {
		switch res := resource.(type) {
		case CSSLink:
			fmt.Fprintf(&out, "<link rel=\"stylesheet\" href=\"%s\">\n", template.HTMLEscapeString(res.Href))
		case CSSInline:
			tmpl, err := getCSSTemplate(ctx, site, page.Key(ctx), res.TemplatePath, funcs)
			if err != nil {
				return "", err
			}
			out.WriteString("<style>\n")
			if err := tmpl.Execute(&out, data); err != nil {
				return "", fmt.Errorf("error executing %q: %w", res.TemplatePath, err)
			}
			out.WriteString("\n</style>\n")
		}
	}
	return template.HTML(out.String()), nil // #nosec G203
}

func cssTemplateKey(pageKey, path string) string {
	return pageKey + "\x00" + path
}

func getCSSTemplate(ctx context.Context, site Site, pageKey, path string, funcs template.FuncMap) (*texttemplate.Template, error) {
	key := cssTemplateKey(pageKey, path)
	cache, caches := site.(CSSTemplateCacher)
	if caches {
		if cached := cache.GetCachedCSSTemplate(ctx, key); cached != nil {
			return cached, nil
		}
	}
	source, err := readResource(ctx, site, path)
	if err != nil {
		return nil, err
	}
	tmpl, err := texttemplate.New(path).Funcs(texttemplate.FuncMap(funcs)).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	if caches {
		cache.SetCachedCSSTemplate(ctx, key, tmpl)
	}
	return tmpl, nil
}

func readResource(ctx context.Context, site Site, path string) (string, error) {
	cache, caches := site.(ResourceCacher)
	if caches {
		if cached := cache.GetCachedResource(ctx, path); cached != nil {
			return *cached, nil
		}
	}
	contents, err := fs.ReadFile(site.TemplateDir(ctx), path)
	if err != nil {
		return "", fmt.Errorf("error reading %q: %w", path, err)
	}
	if caches {
		cache.SetCachedResource(ctx, path, string(contents))
	}
	return string(contents), nil
}
