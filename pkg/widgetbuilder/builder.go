// Package widgetbuilder selects and constructs a widget for a field's
// attributes. Builders are tried in order by Composite; the rule-based
// ReadOnly and HTML builders evaluate an ordered list of predicates where the
// first match wins.
package widgetbuilder

import (
	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
)

// Builder produces a widget for a field, or nil when it has nothing to offer.
type Builder interface {
	BuildWidget(attrs model.Attributes, ctx *model.Context) *widget.Widget
}

// BuilderFunc adapts a function into a Builder.
type BuilderFunc func(attrs model.Attributes, ctx *model.Context) *widget.Widget

// BuildWidget calls the underlying function.
func (fn BuilderFunc) BuildWidget(attrs model.Attributes, ctx *model.Context) *widget.Widget {
	return fn(attrs, ctx)
}

// StartHook is implemented by builders and processors that reset state at the
// start of a build pass.
type StartHook interface {
	OnStartBuild(ctx *model.Context)
}

// EndHook is implemented by builders and processors that finalise state at
// the end of a build pass.
type EndHook interface {
	OnEndBuild(ctx *model.Context)
}

// Composite tries each builder in registration order and returns the first
// widget produced.
type Composite struct {
	builders []Builder
}

// NewComposite constructs a Composite. Nil builders are ignored.
func NewComposite(builders ...Builder) *Composite {
	kept := make([]Builder, 0, len(builders))
	for _, builder := range builders {
		if builder != nil {
			kept = append(kept, builder)
		}
	}
	return &Composite{builders: kept}
}

// Builders returns a copy of the configured builders.
func (c *Composite) Builders() []Builder {
	return append([]Builder(nil), c.builders...)
}

// OnStartBuild forwards the hook to every builder that implements StartHook.
func (c *Composite) OnStartBuild(ctx *model.Context) {
	for _, builder := range c.builders {
		if hook, ok := builder.(StartHook); ok {
			hook.OnStartBuild(ctx)
		}
	}
}

// BuildWidget returns the first non-nil widget produced by the builders, or
// nil when none match.
func (c *Composite) BuildWidget(attrs model.Attributes, ctx *model.Context) *widget.Widget {
	for _, builder := range c.builders {
		if w := builder.BuildWidget(attrs, ctx); w != nil {
			return w
		}
	}
	return nil
}

// OnEndBuild forwards the hook to every builder that implements EndHook.
func (c *Composite) OnEndBuild(ctx *model.Context) {
	for _, builder := range c.builders {
		if hook, ok := builder.(EndHook); ok {
			hook.OnEndBuild(ctx)
		}
	}
}
