package widgetbuilder

import (
	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
)

// Matcher decides whether a rule applies to a field.
type Matcher func(attrs model.Attributes, ctx *model.Context) bool

// Rule pairs a predicate with the builder that runs when it matches. A
// matching rule may still return nil, which ends evaluation with no widget.
type Rule struct {
	Name  string
	Match Matcher
	Build BuilderFunc
}

// Rules evaluates entries in order; the first rule whose predicate matches
// decides the outcome.
type Rules []Rule

// BuildWidget implements Builder.
func (r Rules) BuildWidget(attrs model.Attributes, ctx *model.Context) *widget.Widget {
	rule, ok := r.Resolve(attrs, ctx)
	if !ok || rule.Build == nil {
		return nil
	}
	return rule.Build(attrs, ctx)
}

// Resolve returns the first matching rule.
func (r Rules) Resolve(attrs model.Attributes, ctx *model.Context) (Rule, bool) {
	for _, rule := range r {
		if rule.Match == nil {
			continue
		}
		if rule.Match(attrs, ctx) {
			return rule, true
		}
	}
	return Rule{}, false
}

func isTrue(key string) Matcher {
	return func(attrs model.Attributes, _ *model.Context) bool {
		return attrs.IsTrue(key)
	}
}

func hasKey(key string) Matcher {
	return func(attrs model.Attributes, _ *model.Context) bool {
		return attrs.Has(key)
	}
}

func hasType(fieldType string) Matcher {
	return func(attrs model.Attributes, _ *model.Context) bool {
		return attrs.Type() == fieldType
	}
}

func stub(model.Attributes, *model.Context) *widget.Widget { return widget.Stub() }

func output(model.Attributes, *model.Context) *widget.Widget { return widget.Output() }
