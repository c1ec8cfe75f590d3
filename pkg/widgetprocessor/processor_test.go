package widgetprocessor_test

import (
	"testing"

	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
	"github.com/goliatone/go-widgetgen/pkg/widgetprocessor"
)

func TestWidgetID(t *testing.T) {
	cases := []struct {
		path string
		name string
		want string
	}{
		{"", "name", "name"},
		{"customer", "name", "name"},
		{"customer.address", "city", "addressCity"},
		{"customer.address.city", "zip", "addressCityZip"},
	}
	for _, tc := range cases {
		ctx := model.NewContext(nil, tc.path)
		if got := widgetprocessor.WidgetID(tc.name, ctx); got != tc.want {
			t.Fatalf("WidgetID(%q, %q) = %q, want %q", tc.name, tc.path, got, tc.want)
		}
	}
}

func TestIDProcessorSetsAttribute(t *testing.T) {
	w := widget.Input(widget.InputText)
	ctx := model.NewContext(nil, "customer.address")
	widgetprocessor.NewIDProcessor().ProcessWidget(w, model.Attributes{"name": "city"}, ctx)
	if got := w.ID(); got != "addressCity" {
		t.Fatalf("expected id addressCity, got %q", got)
	}
}

func TestRequiredAttributeProcessor(t *testing.T) {
	processor := widgetprocessor.NewRequiredAttributeProcessor()

	required := widget.Input(widget.InputText)
	processor.ProcessWidget(required, model.Attributes{"required": "true"}, nil)
	if value, ok := required.Attr("required"); !ok || value != "required" {
		t.Fatalf("expected required=required, got %q (%v)", value, ok)
	}

	optional := widget.Input(widget.InputText)
	processor.ProcessWidget(optional, model.Attributes{"required": "false"}, nil)
	if _, ok := optional.Attr("required"); ok {
		t.Fatal("expected no required attribute for required=false")
	}
}

func TestChainStopsOnDrop(t *testing.T) {
	var calls []string
	record := func(name string, drop bool) widgetprocessor.Processor {
		return widgetprocessor.ProcessorFunc(func(w *widget.Widget, _ model.Attributes, _ *model.Context) *widget.Widget {
			calls = append(calls, name)
			if drop {
				return nil
			}
			return w
		})
	}

	out := widgetprocessor.Chain(widget.Output(), model.Attributes{}, nil,
		record("first", false), nil, record("second", true), record("third", false))
	if out != nil {
		t.Fatalf("expected dropped widget, got %s", out.Describe())
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("unexpected call order %v", calls)
	}
}
