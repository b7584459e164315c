package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNoTemplatePath is returned when a Page and the Components it
	// uses don't name a single template.
	ErrNoTemplatePath = errors.New("need at least one template path")

	// ErrTemplatePatternMatchesNoFiles is returned when a template path is
	// a pattern that doesn't match any files.
	ErrTemplatePatternMatchesNoFiles = errors.New("pattern matches no files")
)

const serverErrorMessage = "Server error."

var tracer = otel.Tracer("github.com/vincenteof/site/internal/render")

// Component is a piece of UI that can be rendered to HTML.
type Component interface {
	// Templates returns the paths, or glob patterns, of the
	// html/template files that must be parsed before the Component can
	// be rendered.
	Templates(context.Context) []string
}

// ComponentUser is an interface that a Component can optionally implement to
// list the Components it relies on. Their templates, functions, and CSS are
// collected along with the Component's own.
type ComponentUser interface {
	UseComponents(context.Context) []Component
}

// FuncMapExtender is an interface that Components and Sites can fulfill to
// add to the functions available to templates.
type FuncMapExtender interface {
	FuncMap(context.Context) template.FuncMap
}

// Page is a Component that can be passed to Render. It is one logical page,
// composed of one or more Components.
type Page interface {
	Component

	// Key is the key the Page's parsed templates are cached under. It
	// must be consistent, and unique per set of templates.
	Key(context.Context) string

	// ExecutedTemplate is the name of the template that gets executed.
	// It's usually the base layout that the Page's own templates fill
	// blocks in.
	ExecutedTemplate(context.Context) string
}

// RenderData is the data templates are executed against.
type RenderData[SiteType Site, PageType Page] struct {
	// Site holds configuration shared by every Page.
	Site SiteType

	// Page is the Page being rendered.
	Page PageType

	// CSS is the markup for every CSS resource the Page and its
	// Components declared, in resolved order.
	CSS template.HTML
}

// Render renders page to out. Nothing is written until the page has rendered
// successfully. If rendering fails, the Site's ServerErrorPage is rendered
// instead when the Site implements ServerErrorPager, and a plain "Server
// error." message otherwise.
//
// If out implements io.Closer, it is closed once Render is done.
func Render[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) {
	ctx, span := tracer.Start(ctx, "render.Render", trace.WithAttributes(
		attribute.String("render.page.type", fmt.Sprintf("%T", page)),
		attribute.String("render.page.key", page.Key(ctx)),
	))
	defer span.End()

	log := LoggerFromContext(ctx)

	defer func() {
		if closer, ok := out.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.ErrorContext(ctx, "error closing output", "error", err)
			}
		}
	}()

	var buf bytes.Buffer
	err := basicRender(ctx, &buf, site, page)
	if err == nil {
		if _, err := buf.WriteTo(out); err != nil {
			log.ErrorContext(ctx, "error writing rendered page", "error", err)
		}
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "rendering page")
	log.ErrorContext(ctx, "error rendering page", "error", err, "page", fmt.Sprintf("%T", page))

	if pager, ok := Site(site).(ServerErrorPager); ok {
		buf.Reset()
		err = basicRender(ctx, &buf, site, pager.ServerErrorPage(ctx))
		if err == nil {
			if _, err := buf.WriteTo(out); err != nil {
				log.ErrorContext(ctx, "error writing server error page", "error", err)
			}
			return
		}
		log.ErrorContext(ctx, "error rendering server error page", "error", err)
	}

	if _, err := io.WriteString(out, serverErrorMessage); err != nil {
		log.ErrorContext(ctx, "error writing server error message", "error", err)
	}
}

// Write renders page to out like Render, but returns the error instead of
// falling back to a server error page. Nothing is written on failure, and
// out is never closed.
func Write[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) error {
	ctx, span := tracer.Start(ctx, "render.Write", trace.WithAttributes(
		attribute.String("render.page.type", fmt.Sprintf("%T", page)),
		attribute.String("render.page.key", page.Key(ctx)),
	))
	defer span.End()

	var buf bytes.Buffer
	if err := basicRender(ctx, &buf, site, page); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rendering page")
		return err
	}
	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("error writing %T: %w", page, err)
	}
	return nil
}

func basicRender[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) error {
	funcMap := getComponentFuncMap(ctx, site, page)
	tmpl, err := getTemplate(ctx, site, page, funcMap)
	if err != nil {
		return err
	}

	css, err := renderCSS(ctx, site, page, funcMap)
	if err != nil {
		return fmt.Errorf("error rendering CSS for %T: %w", page, err)
	}

	data := RenderData[SiteType, PageType]{
		Site: site,
		Page: page,
		CSS:  css,
	}

	executed := page.ExecutedTemplate(ctx)
	if err := tmpl.ExecuteTemplate(out, executed, data); err != nil {
		return fmt.Errorf("error executing template %q for %T: %w", executed, page, err)
	}
	return nil
}

func getTemplate(ctx context.Context, site Site, page Page, funcMap template.FuncMap) (*template.Template, error) {
	key := page.Key(ctx)
	cache, caches := site.(TemplateCacher)
	if caches {
		if cached := cache.GetCachedTemplate(ctx, key); cached != nil {
			return cached, nil
		}
	}

	parse := func() (*template.Template, error) {
		// a parse that finished while this one waited has already cached it
		if caches {
			if cached := cache.GetCachedTemplate(ctx, key); cached != nil {
				return cached, nil
			}
		}

		_, span := tracer.Start(ctx, "render.parseTemplates", trace.WithAttributes(
			attribute.String("render.page.key", key),
		))
		defer span.End()

		tmplPaths := getComponentTemplatePaths(ctx, page)
		if len(tmplPaths) < 1 {
			return nil, fmt.Errorf("error rendering %T: %w", page, ErrNoTemplatePath)
		}
		parsed, err := parseTemplates(site.TemplateDir(ctx), funcMap, tmplPaths...)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "parsing templates")
			return nil, fmt.Errorf("error parsing templates %v for page %T: %w", tmplPaths, page, err)
		}
		if caches {
			cache.SetCachedTemplate(ctx, key, parsed)
		}
		return parsed, nil
	}

	if deduper, ok := site.(parseDeduper); ok {
		return deduper.dedupeParse(key, parse)
	}
	return parse()
}

func getRecursiveComponents(ctx context.Context, component Component) []Component {
	results := []Component{component}
	if user, ok := component.(ComponentUser); ok {
		for _, child := range user.UseComponents(ctx) {
			results = append(results, getRecursiveComponents(ctx, child)...)
		}
	}
	return results
}

func getComponentTemplatePaths(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	for _, comp := range getRecursiveComponents(ctx, component) {
		for _, path := range comp.Templates(ctx) {
			if _, ok := seen[path]; ok {
				continue
			}
			results = append(results, path)
			seen[path] = struct{}{}
		}
	}
	return results
}

func getComponentFuncMap(ctx context.Context, site Site, component Component) template.FuncMap {
	results := template.FuncMap{}
	if fm, ok := site.(FuncMapExtender); ok {
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	for _, comp := range getRecursiveComponents(ctx, component) {
		fm, ok := comp.(FuncMapExtender)
		if !ok {
			continue
		}
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	return results
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*template.Template, error) {
	var files []string
	for _, pattern := range patterns {
		list, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error listing files for %q: %w", pattern, err)
		}
		if len(list) < 1 {
			return nil, fmt.Errorf("error parsing %q: %w", pattern, ErrTemplatePatternMatchesNoFiles)
		}
		files = append(files, list...)
	}
	if len(files) < 1 {
		return nil, ErrNoTemplatePath
	}
	tmpl := template.New("").Funcs(funcs)
	for _, file := range files {
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
		if _, err := tmpl.New(file).Parse(string(contents)); err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}

// mergeFuncMaps flattens two FuncMaps into one, with the values in override
// replacing the values in base when they share a key.
func mergeFuncMaps(base, override template.FuncMap) template.FuncMap {
	res := make(template.FuncMap, len(base)+len(override))
	for k, v := range base {
		res[k] = v
	}
	for k, v := range override {
		res[k] = v
	}
	return res
}
