package widgetbuilder_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
	"github.com/goliatone/go-widgetgen/pkg/widgetbuilder"
)

type hookRecorder struct {
	name   string
	events *[]string
}

func (h hookRecorder) BuildWidget(model.Attributes, *model.Context) *widget.Widget {
	return nil
}

func (h hookRecorder) OnStartBuild(*model.Context) {
	*h.events = append(*h.events, "start:"+h.name)
}

func (h hookRecorder) OnEndBuild(*model.Context) {
	*h.events = append(*h.events, "end:"+h.name)
}

func TestCompositeBroadcastsHooks(t *testing.T) {
	var events []string
	composite := widgetbuilder.NewComposite(
		hookRecorder{name: "a", events: &events},
		widgetbuilder.BuilderFunc(func(model.Attributes, *model.Context) *widget.Widget { return nil }),
		hookRecorder{name: "b", events: &events},
	)

	ctx := model.NewContext(nil, "")
	composite.OnStartBuild(ctx)
	composite.OnEndBuild(ctx)

	want := []string{"start:a", "start:b", "end:a", "end:b"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("hook order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositeReturnsFirstMatch(t *testing.T) {
	named := func(name string) *widget.Widget {
		w := widget.New("x-widget")
		w.SetAttr("name", name)
		return w
	}
	composite := widgetbuilder.NewComposite(
		widgetbuilder.BuilderFunc(func(attrs model.Attributes, _ *model.Context) *widget.Widget {
			if attrs.Get("widgetBuilder") == "1" {
				return named("widgetBuilder1")
			}
			return nil
		}),
		nil,
		widgetbuilder.BuilderFunc(func(attrs model.Attributes, _ *model.Context) *widget.Widget {
			if attrs.Get("widgetBuilder") == "2" {
				return named("widgetBuilder2")
			}
			return nil
		}),
		widgetbuilder.BuilderFunc(func(model.Attributes, *model.Context) *widget.Widget {
			return named("widgetBuilder3")
		}),
	)

	cases := map[string]string{
		"":  "widgetBuilder3",
		"1": "widgetBuilder1",
		"2": "widgetBuilder2",
		"9": "widgetBuilder3",
	}
	for selector, want := range cases {
		attrs := model.Attributes{}
		if selector != "" {
			attrs["widgetBuilder"] = selector
		}
		got, _ := composite.BuildWidget(attrs, nil).Attr("name")
		if got != want {
			t.Fatalf("selector %q: got %q, want %q", selector, got, want)
		}
	}

	if len(composite.Builders()) != 3 {
		t.Fatalf("nil builders should be dropped, got %d", len(composite.Builders()))
	}
}

func TestCompositeReturnsNilWhenNothingMatches(t *testing.T) {
	composite := widgetbuilder.NewComposite(widgetbuilder.NewReadOnly(), widgetbuilder.NewHTML())
	if w := composite.BuildWidget(model.Attributes{model.AttrName: "address", model.AttrType: "com.example.Address"}, model.NewContext(nil, "")); w != nil {
		t.Fatalf("expected nil widget for expandable type, got %s", w.Describe())
	}
}
