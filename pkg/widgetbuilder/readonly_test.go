package widgetbuilder_test

import (
	"testing"

	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widgetbuilder"
)

func TestReadOnlyBuilder(t *testing.T) {
	builder := widgetbuilder.NewReadOnly()
	ctx := model.NewContext(nil, "")

	cases := []struct {
		name  string
		attrs model.Attributes
		want  string
	}{
		{"not read-only", model.Attributes{}, "<nil>"},
		{"read-only without type", model.Attributes{"readOnly": "true"}, "<nil>"},
		{"string", model.Attributes{"readOnly": "true", "type": "string"}, "output"},
		{"hidden", model.Attributes{"hidden": "true", "readOnly": "true", "type": "string"}, "stub"},
		{"dont expand", model.Attributes{"readOnly": "true", "dontExpand": "true"}, "output"},
		{"number defers", model.Attributes{"readOnly": "true", "type": "number"}, "<nil>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := describe(builder.BuildWidget(tc.attrs, ctx)); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestReadOnlyBuilderHonoursPassFlag(t *testing.T) {
	builder := widgetbuilder.NewReadOnly()
	ctx := model.NewContext(nil, "")
	ctx.ReadOnly = true

	if got := describe(builder.BuildWidget(model.Attributes{"type": "string"}, ctx)); got != "output" {
		t.Fatalf("read-only pass should produce output, got %s", got)
	}
	if got := describe(builder.BuildWidget(model.Attributes{"type": "string"}, nil)); got != "<nil>" {
		t.Fatalf("nil context is editable, got %s", got)
	}
}
