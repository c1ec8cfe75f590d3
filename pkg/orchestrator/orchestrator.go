package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-widgetgen/pkg/logging"
	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/property"
	"github.com/goliatone/go-widgetgen/pkg/widget"
	"github.com/goliatone/go-widgetgen/pkg/widgetbuilder"
	"github.com/goliatone/go-widgetgen/pkg/widgetprocessor"
)

// DefaultMaxDepth bounds nested expansion so self-referencing inspection
// documents cannot recurse forever.
const DefaultMaxDepth = 16

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithWidgetBuilder replaces the widget builder.
func WithWidgetBuilder(builder widgetbuilder.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithWidgetProcessors replaces the processor chain.
func WithWidgetProcessors(processors ...widgetprocessor.Processor) Option {
	return func(o *Orchestrator) {
		o.processors = append([]widgetprocessor.Processor(nil), processors...)
		o.processorsSet = true
	}
}

// WithInspector supplies the attribute source used for request paths and
// nested expansion.
func WithInspector(inspector model.Inspector) Option {
	return func(o *Orchestrator) {
		o.inspector = inspector
	}
}

// WithLogger sets the logger for pass lifecycle and expansion decisions.
func WithLogger(logger logging.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithRegistry injects the registry consulted by WithPipeline.
func WithRegistry(registry *Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithPipeline selects builders and processors by registry name. Empty
// slices keep the corresponding default.
func WithPipeline(builders, processors []string) Option {
	return func(o *Orchestrator) {
		o.pipelineBuilders = append([]string(nil), builders...)
		o.pipelineProcessors = append([]string(nil), processors...)
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *Orchestrator) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// Orchestrator builds forms from field attributes. It holds no per-pass
// state and can serve concurrent Build calls.
type Orchestrator struct {
	builder            widgetbuilder.Builder
	processors         []widgetprocessor.Processor
	processorsSet      bool
	inspector          model.Inspector
	logger             logging.Logger
	registry           *Registry
	pipelineBuilders   []string
	pipelineProcessors []string
	maxDepth           int
	initialiseErr      error
}

// New constructs an Orchestrator. Without options it uses the read-only and
// HTML builders followed by the id, required and binding processors.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{maxDepth: DefaultMaxDepth}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one build pass.
type Request struct {
	// ToInspect is the object the widgets are bound to. It may be nil.
	ToInspect any
	// Path names the inspected type, e.g. "person". Nested passes extend it.
	Path string
	// ReadOnly renders every field as read-only.
	ReadOnly bool
	// Attributes bypasses the inspector when supplied.
	Attributes []model.Attributes
}

type passIDKey struct{}

// PassID returns the correlation id of the build pass ctx belongs to.
func PassID(ctx *model.Context) string {
	raw, ok := ctx.Load(passIDKey{})
	if !ok {
		return ""
	}
	id, _ := raw.(string)
	return id
}

// Build runs a build pass and returns the resulting form.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*Form, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	attrs, err := o.resolveAttributes(ctx, req)
	if err != nil {
		return nil, err
	}

	passID := uuid.NewString()
	pass := model.NewContext(req.ToInspect, req.Path)
	pass.ReadOnly = req.ReadOnly
	pass.Store(passIDKey{}, passID)

	logger := logging.WithFields(o.logger, map[string]any{"pass": passID}).WithContext(ctx)
	logger.Debug("orchestrator.build.start", "path", pass.Path, "fields", len(attrs), "read_only", pass.ReadOnly)

	root := widget.Container()
	root.SetNested(pass)
	if err := o.buildPass(ctx, logger, pass, attrs, root, 0); err != nil {
		return nil, err
	}

	logger.Debug("orchestrator.build.end", "path", pass.Path, "widgets", len(root.Children()))

	return &Form{
		ID:      passID,
		Root:    root,
		Context: pass,
		binder:  o.binder(),
	}, nil
}

// Builder exposes the configured widget builder.
func (o *Orchestrator) Builder() widgetbuilder.Builder {
	return o.builder
}

// Processors returns a copy of the processor chain.
func (o *Orchestrator) Processors() []widgetprocessor.Processor {
	return append([]widgetprocessor.Processor(nil), o.processors...)
}

func (o *Orchestrator) resolveAttributes(ctx context.Context, req Request) ([]model.Attributes, error) {
	if req.Attributes != nil {
		return req.Attributes, nil
	}
	if o.inspector == nil {
		return nil, errors.New("orchestrator: attributes or inspector is required")
	}
	attrs, err := o.inspector.Inspect(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: inspect %q: %w", req.Path, err)
	}
	return attrs, nil
}

func (o *Orchestrator) buildPass(ctx context.Context, logger logging.Logger, pass *model.Context, attrs []model.Attributes, container *widget.Widget, depth int) error {
	o.startBuild(pass)
	defer o.endBuild(pass)

	for _, fieldAttrs := range attrs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("orchestrator: build %q: %w", pass.Path, err)
		}

		w := o.builder.BuildWidget(fieldAttrs, pass)
		if w == nil {
			nested, err := o.expand(ctx, logger, pass, fieldAttrs, depth)
			if err != nil {
				return err
			}
			w = nested
		}
		if w == nil {
			logger.Trace("orchestrator.field.skipped", "path", pass.Path, "name", fieldAttrs.Name())
			continue
		}

		w = widgetprocessor.Chain(w, fieldAttrs, pass, o.processors...)
		if w == nil {
			logger.Trace("orchestrator.field.dropped", "path", pass.Path, "name", fieldAttrs.Name())
			continue
		}
		container.Append(w)
	}
	return nil
}

// expand builds a nested pass for a field no builder handled. It returns nil
// when the field opts out or the inspector knows nothing about its path.
func (o *Orchestrator) expand(ctx context.Context, logger logging.Logger, parent *model.Context, attrs model.Attributes, depth int) (*widget.Widget, error) {
	name := attrs.Name()
	if attrs.IsTrue(model.AttrDontExpand) || o.inspector == nil || name == "" || name == model.RootName {
		return nil, nil
	}

	path := model.JoinPath(parent.Path, name)
	if depth+1 > o.maxDepth {
		logger.Warn("orchestrator.expand.depth_exceeded", "path", path, "max_depth", o.maxDepth)
		return nil, nil
	}

	nestedAttrs, err := o.inspector.Inspect(ctx, path)
	if errors.Is(err, model.ErrPathNotFound) {
		logger.Debug("orchestrator.expand.unknown_path", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("orchestrator: inspect %q: %w", path, err)
	}

	var value any
	if parent.ToInspect != nil {
		if found, err := property.Ref(parent.ToInspect, name); err == nil {
			value = found
		}
	}

	nested := parent.Child(name, value)
	nested.Store(passIDKey{}, PassID(parent))
	logger.Debug("orchestrator.expand.nested", "path", path, "fields", len(nestedAttrs))

	container := widget.Container()
	container.SetNested(nested)
	if err := o.buildPass(ctx, logger, nested, nestedAttrs, container, depth+1); err != nil {
		return nil, err
	}
	return container, nil
}

func (o *Orchestrator) startBuild(pass *model.Context) {
	if hook, ok := o.builder.(widgetbuilder.StartHook); ok {
		hook.OnStartBuild(pass)
	}
	for _, processor := range o.processors {
		if hook, ok := processor.(widgetbuilder.StartHook); ok {
			hook.OnStartBuild(pass)
		}
	}
}

func (o *Orchestrator) endBuild(pass *model.Context) {
	if hook, ok := o.builder.(widgetbuilder.EndHook); ok {
		hook.OnEndBuild(pass)
	}
	for _, processor := range o.processors {
		if hook, ok := processor.(widgetbuilder.EndHook); ok {
			hook.OnEndBuild(pass)
		}
	}
}

func (o *Orchestrator) binder() widgetprocessor.Binder {
	for _, processor := range o.processors {
		if binder, ok := processor.(widgetprocessor.Binder); ok {
			return binder
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	o.logger = logging.OrNoOp(o.logger)

	if len(o.pipelineBuilders) > 0 || len(o.pipelineProcessors) > 0 {
		if o.registry == nil {
			o.registry = DefaultRegistry(o.logger)
		}
		builders := o.pipelineBuilders
		if len(builders) == 0 {
			builders = DefaultBuilders
		}
		processors := o.pipelineProcessors
		if len(processors) == 0 {
			processors = DefaultProcessors
		}
		composite, chain, err := o.registry.Pipeline(builders, processors)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: pipeline: %w", err)
			return
		}
		if o.builder == nil {
			o.builder = composite
		}
		if !o.processorsSet {
			o.processors = chain
			o.processorsSet = true
		}
	}

	if o.builder == nil {
		o.builder = widgetbuilder.NewComposite(widgetbuilder.NewReadOnly(), widgetbuilder.NewHTML())
	}
	if !o.processorsSet {
		o.processors = []widgetprocessor.Processor{
			widgetprocessor.NewIDProcessor(),
			widgetprocessor.NewRequiredAttributeProcessor(),
			widgetprocessor.NewSimpleBindingProcessor(widgetprocessor.WithBindingLogger(o.logger)),
		}
	}
}
