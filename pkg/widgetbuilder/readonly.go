package widgetbuilder

import (
	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
)

// ReadOnly renders read-only fields as text displays. It only fires when the
// field or the pass is read-only.
type ReadOnly struct {
	rules Rules
}

// NewReadOnly constructs the read-only builder.
func NewReadOnly() *ReadOnly {
	return &ReadOnly{rules: Rules{
		{Name: "hidden", Match: isTrue(model.AttrHidden), Build: stub},
		{Name: "string", Match: hasType(model.TypeString), Build: output},
		{Name: "dont-expand", Match: isTrue(model.AttrDontExpand), Build: output},
	}}
}

// BuildWidget implements Builder.
func (b *ReadOnly) BuildWidget(attrs model.Attributes, ctx *model.Context) *widget.Widget {
	if !ctx.IsReadOnly(attrs) {
		return nil
	}
	return b.rules.BuildWidget(attrs, ctx)
}
