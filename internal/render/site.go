package render

import (
	"context"
	"html/template"
	"io/fs"
	"sync"
	texttemplate "text/template"

	"golang.org/x/sync/singleflight"
)

// Site is the singleton used to render Pages. Consumers embed whatever
// configuration their templates need in it.
//
// A Site needs to be able to surface the templates it relies on as an fs.FS.
type Site interface {
	// TemplateDir returns an fs.FS containing every template and CSS
	// file needed to render every Page on the Site.
	//
	// Paths within the fs.FS should match the output of Templates for
	// Components and the TemplatePath of CSSInline resources.
	TemplateDir(ctx context.Context) fs.FS
}

// TemplateCacher is an optional interface for Sites. Those fulfilling it
// cache parsed templates under the Key of each Page. The templates parsed for
// a given key must be the same every time; the data executed against them may
// differ, so the output HTML is never cached.
type TemplateCacher interface {
	// GetCachedTemplate returns the *template.Template stored under key,
	// or nil if nothing is cached yet.
	GetCachedTemplate(ctx context.Context, key string) *template.Template

	// SetCachedTemplate stores tmpl under key. Failures are best-effort
	// and never surfaced.
	SetCachedTemplate(ctx context.Context, key string, tmpl *template.Template)
}

// ResourceCacher is an optional interface for Sites. Those fulfilling it
// cache the raw source of CSS resources so they are read from the fs.FS only
// once.
type ResourceCacher interface {
	// GetCachedResource returns the source stored under key, or nil if
	// nothing is cached yet.
	GetCachedResource(ctx context.Context, key string) *string

	// SetCachedResource stores resource under key.
	SetCachedResource(ctx context.Context, key, resource string)
}

// CSSTemplateCacher is an optional interface for Sites. Those fulfilling it
// cache parsed inline CSS templates. Keys combine the Page's Key with the
// resource's TemplatePath, since the functions a CSS template is parsed with
// come from the Page.
type CSSTemplateCacher interface {
	GetCachedCSSTemplate(ctx context.Context, key string) *texttemplate.Template
	SetCachedCSSTemplate(ctx context.Context, key string, tmpl *texttemplate.Template)
}

// ServerErrorPager is an optional interface for Sites. When Render fails to
// render a Page, the output of ServerErrorPage is rendered in its place.
type ServerErrorPager interface {
	ServerErrorPage(ctx context.Context) Page
}

// parseDeduper collapses concurrent parses of the same key into one.
type parseDeduper interface {
	dedupeParse(key string, parse func() (*template.Template, error)) (*template.Template, error)
}

var (
	_ Site              = &CachedSite{}
	_ TemplateCacher    = &CachedSite{}
	_ ResourceCacher    = &CachedSite{}
	_ CSSTemplateCacher = &CachedSite{}
	_ parseDeduper      = &CachedSite{}
)

// CachedSite implements Site and its caching interfaces in memory,
// and is meant to be embedded in a consumer's own Site type. Its zero value
// is not usable; create one with NewCachedSite.
type CachedSite struct {
	templateCache   map[string]*template.Template
	templateCacheMu sync.RWMutex

	resourceCache   map[string]string
	resourceCacheMu sync.RWMutex

	cssTemplateCache   map[string]*texttemplate.Template
	cssTemplateCacheMu sync.RWMutex

	parses singleflight.Group

	templateDir fs.FS
}

// NewCachedSite returns a CachedSite serving templates from the passed fs.FS.
func NewCachedSite(templates fs.FS) *CachedSite {
	return &CachedSite{
		templateCache:    map[string]*template.Template{},
		resourceCache:    map[string]string{},
		cssTemplateCache: map[string]*texttemplate.Template{},
		templateDir:      templates,
	}
}

// GetCachedTemplate returns the cached template for key, or nil.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) GetCachedTemplate(_ context.Context, key string) *template.Template {
	s.templateCacheMu.RLock()
	defer s.templateCacheMu.RUnlock()
	return s.templateCache[key]
}

// SetCachedTemplate caches tmpl for key.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) SetCachedTemplate(_ context.Context, key string, tmpl *template.Template) {
	s.templateCacheMu.Lock()
	defer s.templateCacheMu.Unlock()
	s.templateCache[key] = tmpl
}

// GetCachedResource returns the cached resource for key, or nil.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) GetCachedResource(_ context.Context, key string) *string {
	s.resourceCacheMu.RLock()
	defer s.resourceCacheMu.RUnlock()
	res, ok := s.resourceCache[key]
	if !ok {
		return nil
	}
	return &res
}

// SetCachedResource caches resource for key.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) SetCachedResource(_ context.Context, key, resource string) {
	s.resourceCacheMu.Lock()
	defer s.resourceCacheMu.Unlock()
	s.resourceCache[key] = resource
}

// GetCachedCSSTemplate returns the cached CSS template for key, or nil.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) GetCachedCSSTemplate(_ context.Context, key string) *texttemplate.Template {
	s.cssTemplateCacheMu.RLock()
	defer s.cssTemplateCacheMu.RUnlock()
	return s.cssTemplateCache[key]
}

// SetCachedCSSTemplate caches tmpl for key.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) SetCachedCSSTemplate(_ context.Context, key string, tmpl *texttemplate.Template) {
	s.cssTemplateCacheMu.Lock()
	defer s.cssTemplateCacheMu.Unlock()
	s.cssTemplateCache[key] = tmpl
}

// TemplateDir returns the fs.FS passed to NewCachedSite.
func (s *CachedSite) TemplateDir(_ context.Context) fs.FS {
	return s.templateDir
}

func (s *CachedSite) dedupeParse(key string, parse func() (*template.Template, error)) (*template.Template, error) {
	res, err, _ := s.parses.Do(key, func() (any, error) {
		return parse()
	})
	if err != nil {
		return nil, err
	}
	return res.(*template.Template), nil
}
