package widgetprocessor_test

import (
	"errors"
	"net/url"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/widget"
	"github.com/goliatone/go-widgetgen/pkg/widgetprocessor"
)

type address struct {
	City string `json:"city"`
	Zip  int    `json:"zip"`
}

type customer struct {
	Name    string   `json:"name"`
	Active  bool     `json:"active"`
	Age     int      `json:"age"`
	Address *address `json:"address"`

	submitted int
}

func (c *customer) Submit() error {
	c.submitted++
	return nil
}

func (c *customer) Fail() error {
	return errors.New("boom")
}

type fixture struct {
	processor *widgetprocessor.SimpleBindingProcessor
	root      *model.Context
	nested    *model.Context
	widgets   map[string]*widget.Widget
}

func buildFixture(t *testing.T, target *customer) fixture {
	t.Helper()

	processor := widgetprocessor.NewSimpleBindingProcessor()
	ids := widgetprocessor.NewIDProcessor()
	root := model.NewContext(target, "customer")
	processor.OnStartBuild(root)

	widgets := map[string]*widget.Widget{}
	run := func(ctx *model.Context, w *widget.Widget, name string) {
		attrs := model.Attributes{"name": name}
		widgets[model.JoinPath(ctx.Path, name)] = widgetprocessor.Chain(w, attrs, ctx, ids, processor)
	}

	run(root, widget.Input(widget.InputText), "name")
	run(root, widget.Input(widget.InputCheckbox), "active")
	run(root, widget.Input(widget.InputNumber), "age")

	nested := root.Child("address", target.Address)
	processor.OnStartBuild(nested)
	run(nested, widget.Input(widget.InputText), "city")
	run(nested, widget.Input(widget.InputNumber), "zip")

	container := widget.Container()
	container.SetNested(nested)
	run(root, container, "address")
	run(root, widget.Button("Submit"), "submit")

	return fixture{processor: processor, root: root, nested: nested, widgets: widgets}
}

func TestBindingPopulatesWidgets(t *testing.T) {
	target := &customer{Name: "Ada", Active: true, Age: 36, Address: &address{City: "London", Zip: 1815}}
	f := buildFixture(t, target)

	got := map[string]string{}
	for path, w := range f.widgets {
		got[path] = w.Describe()
	}
	want := map[string]string{
		"customer.name":         `input type="text" id="name" value="Ada" name="name"`,
		"customer.active":       `input type="checkbox" id="active" checked="checked" name="active"`,
		"customer.age":          `input type="number" id="age" value="36" name="age"`,
		"customer.address.city": `input type="text" id="addressCity" value="London" name="addressCity"`,
		"customer.address.zip":  `input type="number" id="addressZip" value="1815" name="addressZip"`,
		"customer.address":      `div id="address"`,
		"customer.submit":       `button id="submit" onclick="return customer.submit()"`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("widget mismatch (-want +got):\n%s", diff)
	}

	var names []string
	for _, binding := range f.processor.Bindings(f.root) {
		names = append(names, binding.Name)
	}
	if diff := cmp.Diff([]string{"name", "active", "age", "address"}, names); diff != "" {
		t.Fatalf("binding order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"submit": "customer.submit"}, f.processor.Actions(f.root)); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestBindingWritesZeroValues(t *testing.T) {
	f := buildFixture(t, &customer{Address: &address{}})

	got := map[string]string{}
	for _, path := range []string{"customer.name", "customer.active", "customer.age", "customer.address.zip"} {
		got[path] = f.widgets[path].Describe()
	}
	want := map[string]string{
		"customer.name":        `input type="text" id="name" name="name"`,
		"customer.active":      `input type="checkbox" id="active" name="active"`,
		"customer.age":         `input type="number" id="age" value="0" name="age"`,
		"customer.address.zip": `input type="number" id="addressZip" value="0" name="addressZip"`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("zero value widgets mismatch (-want +got):\n%s", diff)
	}
}

func TestBindingApplyAndSaveRoundTrip(t *testing.T) {
	target := &customer{Name: "Ada", Active: true, Age: 36, Address: &address{City: "London", Zip: 1815}}
	f := buildFixture(t, target)

	f.processor.Apply(f.root, url.Values{
		"name":        {"Grace"},
		"age":         {"85"},
		"addressCity": {"Arlington"},
		"addressZip":  {"22201"},
	})

	if err := f.processor.Save(f.root); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	want := customer{Name: "Grace", Active: false, Age: 85, Address: &address{City: "Arlington", Zip: 22201}}
	if diff := cmp.Diff(want, *target, cmp.AllowUnexported(customer{})); diff != "" {
		t.Fatalf("saved object mismatch (-want +got):\n%s", diff)
	}
}

func TestBindingSaveCollectsErrors(t *testing.T) {
	target := &customer{Address: &address{}}
	f := buildFixture(t, target)

	f.processor.Apply(f.root, url.Values{"age": {"old"}, "addressZip": {"nowhere"}, "name": {"Ada"}})

	err := f.processor.Save(f.root)
	if err == nil {
		t.Fatal("expected decode errors")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if target.Name != "Ada" {
		t.Fatalf("expected valid fields to be saved, got %q", target.Name)
	}
}

func TestBindingInvoke(t *testing.T) {
	target := &customer{Address: &address{}}
	f := buildFixture(t, target)

	if err := f.processor.Invoke(f.root, "submit"); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if target.submitted != 1 {
		t.Fatalf("expected Submit to run once, got %d", target.submitted)
	}

	err := f.processor.Invoke(f.root, "fail")
	if err == nil {
		t.Fatal("expected error for unbound action")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}

	if err := f.processor.Invoke(f.root, "address.missing"); err == nil {
		t.Fatal("expected error for unbound nested action")
	}
}

func TestBindingRootValue(t *testing.T) {
	processor := widgetprocessor.NewSimpleBindingProcessor()
	ctx := model.NewContext("hello", "greeting")
	processor.OnStartBuild(ctx)

	w := processor.ProcessWidget(widget.Output(), model.Attributes{"name": model.RootName}, ctx)
	if got := w.Text(); got != "hello" {
		t.Fatalf("expected root value text, got %q", got)
	}
	if len(processor.Bindings(ctx)) != 0 {
		t.Fatal("expected outputs to stay unbound")
	}
}

func TestBindingResetOnStart(t *testing.T) {
	processor := widgetprocessor.NewSimpleBindingProcessor()
	ctx := model.NewContext(map[string]any{"name": "x"}, "thing")
	processor.OnStartBuild(ctx)
	processor.ProcessWidget(widget.Input(widget.InputText), model.Attributes{"name": "name"}, ctx)
	if len(processor.Bindings(ctx)) != 1 {
		t.Fatal("expected one binding")
	}

	processor.OnStartBuild(ctx)
	if len(processor.Bindings(ctx)) != 0 {
		t.Fatal("expected bindings to reset on start")
	}
}
