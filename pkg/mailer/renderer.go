package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RendererConfig configures NewRendererWithConfig.
type RendererConfig struct {
	// Sanitize filters the HTML produced from markdown before it enters the
	// layout. Contact templates interpolate visitor input, so set it.
	Sanitize    func(string) string
	TemplateDir string // default "."
	LayoutDir   string // default "layouts"
}

// Renderer turns a markdown template with YAML front matter into an HTML
// body wrapped in a layout plus a plain text alternative. Parsed templates
// and layouts are cached; a Renderer is safe for concurrent use.
type Renderer struct {
	fsys      fs.FS
	md        goldmark.Markdown
	cfg       RendererConfig
	templates cache[*bodyTemplate]
	layouts   cache[*template.Template]
}

type bodyTemplate struct {
	tmpl     *texttemplate.Template
	metadata map[string]any
}

// RenderResult is the output of Render. Text is the executed markdown.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

func NewRenderer(fsys fs.FS) *Renderer {
	return NewRendererWithConfig(fsys, RendererConfig{})
}

func NewRendererWithConfig(fsys fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}
	return &Renderer{
		fsys: fsys,
		cfg:  cfg,
		md:   goldmark.New(goldmark.WithExtensions(extension.Linkify)),
	}
}

// Render executes name with data, converts the markdown to HTML and places
// it in layout as {{.Content}}. The front matter is available to the layout
// as {{.Metadata}}.
func (r *Renderer) Render(layout, name string, data any) (*RenderResult, error) {
	body, err := r.templates.get(name, r.loadTemplate)
	if err != nil {
		return nil, err
	}
	wrapper, err := r.layouts.get(layout, r.loadLayout)
	if err != nil {
		return nil, err
	}

	var text bytes.Buffer
	if err := body.tmpl.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, name, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(text.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: markdown %s: %v", ErrRenderFailed, name, err)
	}
	safe := content.String()
	if r.cfg.Sanitize != nil {
		safe = r.cfg.Sanitize(safe)
	}

	var out bytes.Buffer
	err = wrapper.Execute(&out, map[string]any{
		"Content":  template.HTML(safe), //nolint:gosec // goldmark drops raw HTML; Sanitize runs above
		"Metadata": body.metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{HTML: out.String(), Text: text.String(), Metadata: body.metadata}, nil
}

func (r *Renderer) loadTemplate(name string) (*bodyTemplate, error) {
	raw, err := fs.ReadFile(r.fsys, path.Join(r.cfg.TemplateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	parsed, err := ParseTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	tmpl, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}
	return &bodyTemplate{tmpl: tmpl, metadata: parsed.Metadata}, nil
}

func (r *Renderer) loadLayout(name string) (*template.Template, error) {
	raw, err := fs.ReadFile(r.fsys, path.Join(r.cfg.LayoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}
	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}
	return tmpl, nil
}

// cache keeps successfully loaded values by name. Failed loads are retried.
type cache[T any] struct {
	mu    sync.Mutex
	items map[string]T
}

func (c *cache[T]) get(name string, load func(string) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.items[name]; ok {
		return v, nil
	}
	v, err := load(name)
	if err != nil {
		return v, err
	}
	if c.items == nil {
		c.items = map[string]T{}
	}
	c.items[name] = v
	return v, nil
}
