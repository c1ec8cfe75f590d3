package widgetbuilder

import (
	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
)

// Option configures the HTML builder.
type Option func(*HTML)

// WithRules registers caller rules that are evaluated ahead of the built-in
// ones, in the order supplied.
func WithRules(rules ...Rule) Option {
	return func(b *HTML) {
		b.extra = append(b.extra, rules...)
	}
}

// WithLabeler overrides how button labels are derived from field names when
// no explicit label is present.
func WithLabeler(labeler func(name string) string) Option {
	return func(b *HTML) {
		if labeler != nil {
			b.labeler = labeler
		}
	}
}

// WithLabelMarkup treats explicit button labels as inline markup. The markup
// is sanitized before it reaches the widget.
func WithLabelMarkup(enabled bool) Option {
	return func(b *HTML) {
		b.labelMarkup = enabled
	}
}

// HTML is the default interactive builder, mapping attribute metadata onto
// plain HTML form controls.
type HTML struct {
	extra       []Rule
	labeler     func(string) string
	labelMarkup bool
	rules       Rules
}

// NewHTML constructs the builder applying any options.
func NewHTML(options ...Option) *HTML {
	b := &HTML{labeler: model.Humanize}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}

	rules := make(Rules, 0, len(b.extra)+8)
	rules = append(rules, b.extra...)
	rules = append(rules,
		Rule{Name: "hidden", Match: isTrue(model.AttrHidden), Build: stub},
		Rule{Name: "lookup", Match: hasKey(model.AttrLookup), Build: b.buildSelect},
		Rule{Name: "function", Match: hasType(model.TypeFunction), Build: b.buildButton},
		Rule{Name: "number", Match: hasType(model.TypeNumber), Build: buildNumber},
		Rule{Name: "boolean", Match: hasType(model.TypeBoolean), Build: inputOf(widget.InputCheckbox)},
		Rule{Name: "date", Match: hasType(model.TypeDate), Build: inputOf(widget.InputDate)},
		Rule{Name: "string", Match: hasType(model.TypeString), Build: buildString},
		Rule{Name: "dont-expand", Match: isTrue(model.AttrDontExpand), Build: inputOf(widget.InputText)},
	)
	b.rules = rules
	return b
}

// Rules returns the evaluation order, caller rules first.
func (b *HTML) Rules() Rules {
	return append(Rules(nil), b.rules...)
}

// BuildWidget implements Builder.
func (b *HTML) BuildWidget(attrs model.Attributes, ctx *model.Context) *widget.Widget {
	return b.rules.BuildWidget(attrs, ctx)
}

func (b *HTML) buildSelect(attrs model.Attributes, _ *model.Context) *widget.Widget {
	sel := widget.Select()
	// Any required value other than "false" drops the empty choice.
	if required := attrs.Get(model.AttrRequired); required == "" || required == "false" {
		sel.Append(widget.Option("", ""))
	}

	values := model.SplitList(attrs.Get(model.AttrLookup))
	if !attrs.Has(model.AttrLookupLabels) {
		for _, value := range values {
			sel.Append(widget.Option("", value))
		}
		return sel
	}

	labels := model.SplitList(attrs.Get(model.AttrLookupLabels))
	for idx, value := range values {
		label := value
		if idx < len(labels) && labels[idx] != "" {
			label = labels[idx]
		}
		option := widget.Option(value, label)
		if value == "" {
			option.SetAttr("value", "")
		}
		sel.Append(option)
	}
	return sel
}

func (b *HTML) buildButton(attrs model.Attributes, _ *model.Context) *widget.Widget {
	if label := attrs.Get(model.AttrLabel); label != "" {
		if !b.labelMarkup {
			return widget.Button(label)
		}
		button := widget.New(widget.TagButton)
		if err := button.SetInnerHTML(label); err != nil {
			button.SetText(label)
		}
		return button
	}
	return widget.Button(b.labeler(attrs.Name()))
}

func buildNumber(attrs model.Attributes, _ *model.Context) *widget.Widget {
	if attrs.Has(model.AttrMinimumValue) && attrs.Has(model.AttrMaximumValue) {
		w := widget.Input(widget.InputRange)
		w.SetAttr("min", attrs.Get(model.AttrMinimumValue))
		w.SetAttr("max", attrs.Get(model.AttrMaximumValue))
		return w
	}
	return widget.Input(widget.InputNumber)
}

func buildString(attrs model.Attributes, _ *model.Context) *widget.Widget {
	if attrs.IsTrue(model.AttrMasked) {
		return withMaxLength(widget.Input(widget.InputPassword), attrs)
	}
	if attrs.IsTrue(model.AttrLarge) {
		return widget.Textarea()
	}
	return withMaxLength(widget.Input(widget.InputText), attrs)
}

func withMaxLength(w *widget.Widget, attrs model.Attributes) *widget.Widget {
	if attrs.Has(model.AttrMaximumLength) {
		w.SetAttr("maxlength", attrs.Get(model.AttrMaximumLength))
	}
	return w
}

func inputOf(inputType string) BuilderFunc {
	return func(model.Attributes, *model.Context) *widget.Widget {
		return widget.Input(inputType)
	}
}
