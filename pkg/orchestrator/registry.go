package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-widgetgen/pkg/logging"
	"github.com/goliatone/go-widgetgen/pkg/widgetbuilder"
	"github.com/goliatone/go-widgetgen/pkg/widgetprocessor"
)

// Names of the built-in pipeline stages registered by DefaultRegistry.
const (
	BuilderReadOnly   = "readonly"
	BuilderHTML       = "html"
	ProcessorID       = "id"
	ProcessorRequired = "required"
	ProcessorBinding  = "binding"
)

// DefaultBuilders and DefaultProcessors name the stock pipeline.
var (
	DefaultBuilders   = []string{BuilderReadOnly, BuilderHTML}
	DefaultProcessors = []string{ProcessorID, ProcessorRequired, ProcessorBinding}
)

// Registry stores widget builders and processors by name so pipelines can be
// assembled from configuration.
type Registry struct {
	mu         sync.RWMutex
	builders   map[string]widgetbuilder.Builder
	processors map[string]widgetprocessor.Processor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders:   make(map[string]widgetbuilder.Builder),
		processors: make(map[string]widgetprocessor.Processor),
	}
}

// DefaultRegistry returns a registry holding the built-in stages. The binding
// processor logs through logger.
func DefaultRegistry(logger logging.Logger) *Registry {
	r := NewRegistry()
	r.MustRegisterBuilder(BuilderReadOnly, widgetbuilder.NewReadOnly())
	r.MustRegisterBuilder(BuilderHTML, widgetbuilder.NewHTML())
	r.MustRegisterProcessor(ProcessorID, widgetprocessor.NewIDProcessor())
	r.MustRegisterProcessor(ProcessorRequired, widgetprocessor.NewRequiredAttributeProcessor())
	r.MustRegisterProcessor(ProcessorBinding, widgetprocessor.NewSimpleBindingProcessor(
		widgetprocessor.WithBindingLogger(logger),
	))
	return r
}

// RegisterBuilder adds a builder under name. Duplicate names return an error.
func (r *Registry) RegisterBuilder(name string, builder widgetbuilder.Builder) error {
	name = normalizeName(name)
	if builder == nil {
		return fmt.Errorf("orchestrator: builder is required")
	}
	if name == "" {
		return fmt.Errorf("orchestrator: builder name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[name]; exists {
		return fmt.Errorf("orchestrator: builder %q already registered", name)
	}
	r.builders[name] = builder
	return nil
}

// MustRegisterBuilder panics on registration failure.
func (r *Registry) MustRegisterBuilder(name string, builder widgetbuilder.Builder) {
	if err := r.RegisterBuilder(name, builder); err != nil {
		panic(err)
	}
}

// RegisterProcessor adds a processor under name. Duplicate names return an
// error.
func (r *Registry) RegisterProcessor(name string, processor widgetprocessor.Processor) error {
	name = normalizeName(name)
	if processor == nil {
		return fmt.Errorf("orchestrator: processor is required")
	}
	if name == "" {
		return fmt.Errorf("orchestrator: processor name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processors[name]; exists {
		return fmt.Errorf("orchestrator: processor %q already registered", name)
	}
	r.processors[name] = processor
	return nil
}

// MustRegisterProcessor panics on registration failure.
func (r *Registry) MustRegisterProcessor(name string, processor widgetprocessor.Processor) {
	if err := r.RegisterProcessor(name, processor); err != nil {
		panic(err)
	}
}

// Builder retrieves a builder by name.
func (r *Registry) Builder(name string) (widgetbuilder.Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	builder, ok := r.builders[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("orchestrator: builder %q not found", name)
	}
	return builder, nil
}

// Processor retrieves a processor by name.
func (r *Registry) Processor(name string) (widgetprocessor.Processor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	processor, ok := r.processors[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("orchestrator: processor %q not found", name)
	}
	return processor, nil
}

// Builders returns the sorted builder names.
func (r *Registry) Builders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.builders)
}

// Processors returns the sorted processor names.
func (r *Registry) Processors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.processors)
}

// Pipeline resolves builder and processor names into a composite builder and
// an ordered processor chain.
func (r *Registry) Pipeline(builders, processors []string) (*widgetbuilder.Composite, []widgetprocessor.Processor, error) {
	resolvedBuilders := make([]widgetbuilder.Builder, 0, len(builders))
	for _, name := range builders {
		builder, err := r.Builder(name)
		if err != nil {
			return nil, nil, err
		}
		resolvedBuilders = append(resolvedBuilders, builder)
	}

	resolvedProcessors := make([]widgetprocessor.Processor, 0, len(processors))
	for _, name := range processors {
		processor, err := r.Processor(name)
		if err != nil {
			return nil, nil, err
		}
		resolvedProcessors = append(resolvedProcessors, processor)
	}

	return widgetbuilder.NewComposite(resolvedBuilders...), resolvedProcessors, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
