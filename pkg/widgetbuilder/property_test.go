package widgetbuilder_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
	"github.com/goliatone/go-widgetgen/pkg/widgetbuilder"
)

var attributeKeys = []string{
	model.AttrName, model.AttrType, model.AttrRequired, model.AttrLookup,
	model.AttrLookupLabels, model.AttrMasked, model.AttrLarge,
	model.AttrMinimumValue, model.AttrMaximumValue, model.AttrMaximumLength,
	model.AttrDontExpand, model.AttrLabel,
}

func genAttributes() gopter.Gen {
	values := gen.OneConstOf("", "true", "false", "string", "number", "boolean", "date", "function", "a,b", "4")
	return gen.SliceOfN(len(attributeKeys), values).Map(func(picked []string) model.Attributes {
		attrs := model.Attributes{}
		for idx, value := range picked {
			if value != "" {
				attrs[attributeKeys[idx]] = value
			}
		}
		return attrs
	})
}

func TestHiddenAlwaysYieldsStub(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	htmlBuilder := widgetbuilder.NewHTML()
	readOnly := widgetbuilder.NewReadOnly()

	properties.Property("hidden fields render as stubs", prop.ForAll(
		func(attrs model.Attributes, passReadOnly bool) bool {
			attrs = attrs.Clone()
			attrs[model.AttrHidden] = "true"
			ctx := model.NewContext(nil, "")
			ctx.ReadOnly = passReadOnly

			if !htmlBuilder.BuildWidget(attrs, ctx).IsStub() {
				return false
			}
			if passReadOnly && !readOnly.BuildWidget(attrs, ctx).IsStub() {
				return false
			}
			return true
		},
		genAttributes(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestCompositeFirstNonNilWins(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)

	properties := gopter.NewProperties(parameters)

	properties.Property("only the last builder matches", prop.ForAll(
		func(attrs model.Attributes, leading int) bool {
			builders := make([]widgetbuilder.Builder, 0, leading+1)
			for i := 0; i < leading; i++ {
				builders = append(builders, widgetbuilder.BuilderFunc(func(model.Attributes, *model.Context) *widget.Widget { return nil }))
			}
			builders = append(builders, widgetbuilder.BuilderFunc(func(model.Attributes, *model.Context) *widget.Widget {
				return widget.New("x-third")
			}))
			return widgetbuilder.NewComposite(builders...).BuildWidget(attrs, nil).Is("x-third")
		},
		genAttributes(),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
