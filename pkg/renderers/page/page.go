// Package page wraps the widgets of a built form in a complete HTML document.
// Layouts are pongo2 templates; a default layout is embedded and custom ones
// are looked up first in the configured directory or fs.FS.
package page

import (
	"embed"
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/orchestrator"
)

// DefaultLayout names the embedded layout.
const DefaultLayout = "page"

//go:embed templates/*.tpl
var embedded embed.FS

func defaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	layout     string
	globalData map[string]any
}

// Option configures a Renderer.
type Option func(*config)

// WithBaseDir loads layouts from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads layouts from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the ".tpl" layout extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithLayout selects the layout rendered by Render.
func WithLayout(name string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.layout = name
		}
	}
}

// WithGlobalData exposes values to every layout.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[key] = value
		}
	}
}

// Data carries the per-request values of a page.
type Data struct {
	Title   string
	Message string
	Action  string
	Method  string
	Submit  string
	// Extra is merged into the layout context last.
	Extra map[string]any
}

// Field describes one top-level bound widget for layouts that render their
// own labels.
type Field struct {
	Name     string
	ID       string
	Label    string
	Required bool
}

// Renderer renders forms into layouts.
type Renderer struct {
	engine *engine
	layout string
}

// New constructs a Renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{extension: ".tpl", layout: DefaultLayout}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	e, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &Renderer{engine: e, layout: cfg.layout}, nil
}

// Render renders form into the configured layout and copies the result to
// every writer in out.
func (r *Renderer) Render(form *orchestrator.Form, data Data, out ...io.Writer) (string, error) {
	if r == nil || r.engine == nil {
		return "", errors.New("page: renderer is nil")
	}
	if form == nil {
		return "", errors.New("page: form is nil")
	}
	widgets, err := form.HTML()
	if err != nil {
		return "", err
	}

	ctx := pongo2.Context{
		"title":     data.Title,
		"message":   data.Message,
		"action":    data.Action,
		"method":    defaultString(data.Method, "post"),
		"submit":    defaultString(data.Submit, "Submit"),
		"widgets":   widgets,
		"pass":      form.ID,
		"read_only": form.Context != nil && form.Context.ReadOnly,
		"fields":    fields(form),
	}
	for key, value := range data.Extra {
		ctx[key] = value
	}
	return r.engine.render(r.layout, ctx, out...)
}

func fields(form *orchestrator.Form) []Field {
	bindings := form.Bindings()
	out := make([]Field, 0, len(bindings))
	for _, binding := range bindings {
		if binding.Nested() != nil {
			continue
		}
		_, required := binding.Widget.Attr("required")
		out = append(out, Field{
			Name:     binding.Name,
			ID:       binding.Widget.ID(),
			Label:    model.Humanize(binding.Name),
			Required: required,
		})
	}
	return out
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
