package orchestrator

import (
	"errors"
	"net/url"

	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
	"github.com/goliatone/go-widgetgen/pkg/widgetprocessor"
)

// ErrNoBinder is returned by Form operations that need a binding processor
// when the pipeline has none.
var ErrNoBinder = errors.New("orchestrator: pipeline has no binding processor")

// Form is the result of a build pass.
type Form struct {
	// ID correlates log entries of the pass that built the form.
	ID string
	// Root holds the top-level widgets.
	Root *widget.Widget
	// Context is the root pass context; nested containers carry their own.
	Context *model.Context

	binder widgetprocessor.Binder
}

// Widgets returns the top-level widgets in build order.
func (f *Form) Widgets() []*widget.Widget {
	if f == nil {
		return nil
	}
	return f.Root.Children()
}

// HTML renders the form's widget tree.
func (f *Form) HTML() (string, error) {
	if f == nil {
		return "", nil
	}
	return f.Root.HTML()
}

// Find returns the widgets matching a CSS selector.
func (f *Form) Find(selector string) ([]*widget.Widget, error) {
	if f == nil {
		return nil, nil
	}
	return f.Root.Find(selector)
}

// Bindings lists the root pass bindings in build order.
func (f *Form) Bindings() []widgetprocessor.Binding {
	if f == nil || f.binder == nil {
		return nil
	}
	return f.binder.Bindings(f.Context)
}

// Binder exposes the binding processor of the pipeline, or nil.
func (f *Form) Binder() widgetprocessor.Binder {
	if f == nil {
		return nil
	}
	return f.binder
}

// Apply copies submitted values, keyed by widget id, into the bound widgets.
func (f *Form) Apply(values url.Values) error {
	if f == nil || f.binder == nil {
		return ErrNoBinder
	}
	f.binder.Apply(f.Context, values)
	return nil
}

// Save writes the bound widget values back to the inspected object.
func (f *Form) Save() error {
	if f == nil || f.binder == nil {
		return ErrNoBinder
	}
	return f.binder.Save(f.Context)
}

// Invoke calls the action bound to the button named name.
func (f *Form) Invoke(name string) error {
	if f == nil || f.binder == nil {
		return ErrNoBinder
	}
	return f.binder.Invoke(f.Context, name)
}
