package widgetprocessor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-widgetgen/pkg/logging"
	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/property"
	"github.com/goliatone/go-widgetgen/pkg/widget"
)

// TextCodeActionNotBound marks Invoke calls for names no button was built for.
const TextCodeActionNotBound = "BINDING_ACTION_NOT_BOUND"

// ErrActionNotBound reports an Invoke for a name without a bound button.
var ErrActionNotBound = errors.New("widgetprocessor: action not bound")

// Binding associates a widget with the property it was populated from.
type Binding struct {
	Name   string
	Widget *widget.Widget
}

// Nested returns the context of a nested container binding, or nil.
func (b Binding) Nested() *model.Context {
	if b.Widget == nil {
		return nil
	}
	return b.Widget.Nested()
}

// Binder is implemented by processors that keep two-way bindings between
// widgets and the inspected object.
type Binder interface {
	Bindings(ctx *model.Context) []Binding
	Apply(ctx *model.Context, values url.Values)
	Save(ctx *model.Context) error
	Invoke(ctx *model.Context, name string) error
}

var _ Binder = (*SimpleBindingProcessor)(nil)

type bindingsKey struct{}

type bindingState struct {
	order   []string
	byName  map[string]Binding
	actions map[string]string
}

func newBindingState() *bindingState {
	return &bindingState{
		byName:  make(map[string]Binding),
		actions: make(map[string]string),
	}
}

func (s *bindingState) record(name string, w *widget.Widget) {
	if _, exists := s.byName[name]; !exists {
		s.order = append(s.order, name)
	}
	s.byName[name] = Binding{Name: name, Widget: w}
}

func (s *bindingState) bindings() []Binding {
	out := make([]Binding, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// BindingOption configures a SimpleBindingProcessor.
type BindingOption func(*SimpleBindingProcessor)

// WithBindingLogger sets the logger used for save failures.
func WithBindingLogger(logger logging.Logger) BindingOption {
	return func(p *SimpleBindingProcessor) {
		p.logger = logging.OrNoOp(logger)
	}
}

// SimpleBindingProcessor populates widgets from the inspected object and
// writes their values back on Save. Bindings are kept per pass on the
// model.Context, so one processor can serve concurrent passes.
type SimpleBindingProcessor struct {
	logger logging.Logger
}

// NewSimpleBindingProcessor constructs the processor.
func NewSimpleBindingProcessor(options ...BindingOption) *SimpleBindingProcessor {
	p := &SimpleBindingProcessor{logger: logging.NoOp()}
	for _, option := range options {
		if option != nil {
			option(p)
		}
	}
	return p
}

// OnStartBuild resets the bindings of the pass.
func (p *SimpleBindingProcessor) OnStartBuild(ctx *model.Context) {
	ctx.Store(bindingsKey{}, newBindingState())
}

// ProcessWidget implements Processor.
func (p *SimpleBindingProcessor) ProcessWidget(w *widget.Widget, attrs model.Attributes, ctx *model.Context) *widget.Widget {
	name := attrs.Name()
	state := p.state(ctx)

	if w.IsButton() {
		target := ctx.Path
		if name != model.RootName {
			target = model.JoinPath(target, name)
		}
		w.SetAttr("onclick", "return "+target+"()")
		state.actions[name] = target
		return w
	}

	if w.Nested() != nil {
		state.record(name, w)
		return w
	}

	var value any
	if name == model.RootName || ctx.ToInspect == nil {
		value = ctx.ToInspect
	} else if found, err := property.Get(ctx.ToInspect, name); err == nil {
		value = found
	}

	// Zero numbers and false still render; only nil and "" leave the slot alone.
	if text := property.String(value); text != "" {
		w.SetValue(text)
	}

	if w.IsBindable() {
		if _, ok := w.Attr("name"); !ok {
			if id := w.ID(); id != "" {
				w.SetAttr("name", id)
			}
		}
		state.record(name, w)
	}
	return w
}

// Bindings lists the bindings recorded for the pass in build order.
func (p *SimpleBindingProcessor) Bindings(ctx *model.Context) []Binding {
	state, ok := p.lookup(ctx)
	if !ok {
		return nil
	}
	return state.bindings()
}

// Actions maps bound button names to the dotted target they call.
func (p *SimpleBindingProcessor) Actions(ctx *model.Context) map[string]string {
	state, ok := p.lookup(ctx)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(state.actions))
	for name, target := range state.actions {
		out[name] = target
	}
	return out
}

// Save writes every bound widget's current value back to the inspected
// object, recursing into nested containers. Failures are collected so one
// bad field does not block the rest.
func (p *SimpleBindingProcessor) Save(ctx *model.Context) error {
	state, ok := p.lookup(ctx)
	if !ok {
		return nil
	}

	var errs []error
	for _, binding := range state.bindings() {
		if nested := binding.Nested(); nested != nil {
			if err := p.Save(nested); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if binding.Name == model.RootName {
			p.logger.Trace("binding.save.skip_root", "path", ctx.Path)
			continue
		}
		if err := property.Set(ctx.ToInspect, binding.Name, binding.Widget.Value()); err != nil {
			p.logger.Warn("binding.save.failed", "path", ctx.Path, "name", binding.Name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Apply copies submitted form values, keyed by widget id, into the bound
// widgets. Absent checkboxes are cleared; other absent fields keep their
// current value.
func (p *SimpleBindingProcessor) Apply(ctx *model.Context, values url.Values) {
	state, ok := p.lookup(ctx)
	if !ok {
		return
	}
	for _, binding := range state.bindings() {
		if nested := binding.Nested(); nested != nil {
			p.Apply(nested, values)
			continue
		}
		key := binding.Widget.ID()
		if key == "" {
			key = binding.Name
		}
		switch {
		case binding.Widget.IsCheckbox():
			binding.Widget.SetValue(values.Get(key))
		case values.Has(key):
			binding.Widget.SetValue(values.Get(key))
		}
	}
}

// Invoke calls the method behind the button bound under name. Dotted names
// address buttons inside nested containers.
func (p *SimpleBindingProcessor) Invoke(ctx *model.Context, name string) error {
	state, ok := p.lookup(ctx)
	if !ok {
		return actionNotBound(name)
	}

	if head, rest, dotted := strings.Cut(name, "."); dotted {
		binding, found := state.byName[head]
		if !found || binding.Nested() == nil {
			return actionNotBound(name)
		}
		return p.Invoke(binding.Nested(), rest)
	}

	if _, bound := state.actions[name]; !bound {
		return actionNotBound(name)
	}
	if name == model.RootName {
		return invokeRoot(ctx)
	}
	return property.Invoke(ctx.ToInspect, name)
}

func (p *SimpleBindingProcessor) state(ctx *model.Context) *bindingState {
	if state, ok := p.lookup(ctx); ok {
		return state
	}
	state := newBindingState()
	ctx.Store(bindingsKey{}, state)
	return state
}

func (p *SimpleBindingProcessor) lookup(ctx *model.Context) (*bindingState, bool) {
	raw, ok := ctx.Load(bindingsKey{})
	if !ok {
		return nil, false
	}
	state, ok := raw.(*bindingState)
	return state, ok
}

func actionNotBound(name string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrActionNotBound, name), goerrors.CategoryCommand, "action not bound").
		WithTextCode(TextCodeActionNotBound)
}

// invokeRoot handles passes whose inspected value is itself the action.
func invokeRoot(ctx *model.Context) error {
	var err error
	switch fn := ctx.ToInspect.(type) {
	case func():
		fn()
	case func() error:
		err = fn()
	default:
		return actionNotBound(model.RootName)
	}
	if err == nil {
		return nil
	}
	return goerrors.Wrap(fmt.Errorf("widgetprocessor: invoke %q: %w", ctx.Path, err), goerrors.CategoryCommand, "action failed").
		WithTextCode(property.TextCodeInvokeFailed)
}
