// Package widgetgen is the top-level entry point: it re-exports the
// orchestrator and wires the inspection loader so callers can go from an
// inspection document to rendered widgets in one call.
package widgetgen

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-widgetgen/pkg/inspection"
	"github.com/goliatone/go-widgetgen/pkg/orchestrator"
)

// DefaultHTTPTimeout caps remote fetches made by GenerateHTML.
const DefaultHTTPTimeout = 10 * time.Second

// Request aliases orchestrator.Request for callers of the root package.
type Request = orchestrator.Request

// Form aliases orchestrator.Form.
type Form = orchestrator.Form

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// LoadDocument fetches and parses the inspection document at location, which
// may be a file path or an http(s) URL.
func LoadDocument(ctx context.Context, location string, options ...inspection.LoaderOption) (*inspection.Document, error) {
	src, err := inspection.ParseSource(location)
	if err != nil {
		return nil, err
	}
	return NewLoader(options...).Load(ctx, src)
}

// BuildFromSource loads the inspection document behind src and builds the
// form for req. The loaded document becomes the orchestrator's inspector, so
// nested paths resolve against it.
func BuildFromSource(ctx context.Context, loader inspection.Loader, src inspection.Source, req Request, options ...orchestrator.Option) (*Form, error) {
	if loader == nil {
		loader = NewLoader()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	options = append(options, orchestrator.WithInspector(doc))
	return orchestrator.New(options...).Build(ctx, req)
}

// GenerateHTML loads the inspection document at location, binds toInspect
// and renders the widgets for path. It is the simplest entry point for
// callers that just want HTML output. http(s) locations are fetched with a
// default client bounded by DefaultHTTPTimeout; use BuildFromSource with a
// configured loader for custom transports.
func GenerateHTML(ctx context.Context, location, path string, toInspect any, options ...orchestrator.Option) (string, error) {
	src, err := inspection.ParseSource(location)
	if err != nil {
		return "", err
	}
	var loader inspection.Loader
	if src.Kind() == inspection.SourceKindURL {
		loader = NewLoader(inspection.WithHTTPFallback(DefaultHTTPTimeout))
	}
	form, err := BuildFromSource(ctx, loader, src, Request{ToInspect: toInspect, Path: path}, options...)
	if err != nil {
		return "", err
	}
	out, err := form.HTML()
	if err != nil {
		return "", fmt.Errorf("widgetgen: render %q: %w", path, err)
	}
	return out, nil
}
