// Package render turns Components and Pages into HTML using html/template.
//
// A Component is a piece of the document that contributes templates and,
// optionally, CSS. A Page is a Component that gets rendered on its own: it
// names the template to execute and a key its parsed templates can be cached
// under. The site's header is a Component, the base layout is a Component,
// and the homepage is a Page that uses both.
//
// Every server has one Site. It surfaces the fs.FS holding the templates and
// is made available to templates as .Site, so it can carry configuration
// shared by all pages. The Page being rendered is available as .Page, and the
// resolved stylesheet markup as .CSS.
//
// Components that rely on other Components list them through UseComponents.
// Templates, functions, and CSS from every Component reachable that way are
// collected when the Page is rendered. CSS resources are deduplicated and
// ordered: a Component's resources keep the order it lists them in, and
// resources can declare explicit before/after relationships with each other.
package render
