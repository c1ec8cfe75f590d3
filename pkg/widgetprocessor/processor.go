// Package widgetprocessor holds the post-build steps that mutate a widget in
// place once a builder has produced it: id assignment, required flags and
// the simple two-way data binding.
package widgetprocessor

import (
	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
)

// Processor mutates a widget after it is built. Returning nil drops the
// widget from the form.
type Processor interface {
	ProcessWidget(w *widget.Widget, attrs model.Attributes, ctx *model.Context) *widget.Widget
}

// ProcessorFunc adapts a function into a Processor.
type ProcessorFunc func(w *widget.Widget, attrs model.Attributes, ctx *model.Context) *widget.Widget

// ProcessWidget calls the underlying function.
func (fn ProcessorFunc) ProcessWidget(w *widget.Widget, attrs model.Attributes, ctx *model.Context) *widget.Widget {
	return fn(w, attrs, ctx)
}

// Chain runs processors in order, stopping as soon as one drops the widget.
func Chain(w *widget.Widget, attrs model.Attributes, ctx *model.Context, processors ...Processor) *widget.Widget {
	for _, processor := range processors {
		if w == nil {
			return nil
		}
		if processor == nil {
			continue
		}
		w = processor.ProcessWidget(w, attrs, ctx)
	}
	return w
}

// IDProcessor assigns a DOM id derived from the field name and, for nested
// passes, the path segments below the root object.
type IDProcessor struct{}

// NewIDProcessor constructs an IDProcessor.
func NewIDProcessor() *IDProcessor {
	return &IDProcessor{}
}

// ProcessWidget implements Processor.
func (IDProcessor) ProcessWidget(w *widget.Widget, attrs model.Attributes, ctx *model.Context) *widget.Widget {
	w.SetAttr("id", WidgetID(attrs.Name(), ctx))
	return w
}

// WidgetID computes the id for a field named name inside ctx. A path of
// "customer.address.city" with name "zip" yields "addressCityZip".
func WidgetID(name string, ctx *model.Context) string {
	segments := ctx.Segments()
	if len(segments) <= 1 {
		return name
	}
	parts := append(append([]string(nil), segments[1:]...), name)
	return model.CamelCase(parts)
}

// RequiredAttributeProcessor flags widgets for required fields.
type RequiredAttributeProcessor struct{}

// NewRequiredAttributeProcessor constructs a RequiredAttributeProcessor.
func NewRequiredAttributeProcessor() *RequiredAttributeProcessor {
	return &RequiredAttributeProcessor{}
}

// ProcessWidget implements Processor.
func (RequiredAttributeProcessor) ProcessWidget(w *widget.Widget, attrs model.Attributes, _ *model.Context) *widget.Widget {
	if attrs.IsTrue(model.AttrRequired) {
		w.SetAttr("required", "required")
	}
	return w
}
