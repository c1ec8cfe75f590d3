package inspection_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetgen/pkg/inspection"
	"github.com/goliatone/go-widgetgen/pkg/model"
)

func TestParseYAMLStringifiesScalars(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "docs", "person.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	doc, err := inspection.Parse(data, "person.yaml")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	got, err := doc.Inspect(context.Background(), "person")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}

	want := []model.Attributes{
		{"name": "name", "type": "string", "required": "true", "maximumLength": "40"},
		{"name": "age", "type": "number", "minimumValue": "0", "maximumValue": "130"},
		{"name": "retired", "type": "boolean"},
		{"name": "gender", "type": "string", "lookup": "Male,Female", "lookupLabels": "M,F"},
		{"name": "notes", "type": "string", "large": "true"},
		{"name": "address", "type": "address"},
		{"name": "save", "type": "function"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSON(t *testing.T) {
	doc, err := inspection.Parse([]byte(`{"paths":{"thing":[{"name":"size","type":"number","maximumValue":10.5}]}}`), "inline")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	got, err := doc.Inspect(context.Background(), "thing")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if diff := cmp.Diff([]model.Attributes{{"name": "size", "type": "number", "maximumValue": "10.5"}}, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsEmptyAndMalformed(t *testing.T) {
	if _, err := inspection.Parse([]byte("   "), "empty"); err == nil {
		t.Fatal("expected error for empty document")
	}
	if _, err := inspection.Parse([]byte("paths: [unterminated"), "broken"); err == nil {
		t.Fatal("expected error for malformed document")
	}
	if _, err := inspection.Parse([]byte("paths:\n  thing:\n    - {name: x, extra: {nested: true}}\n"), "nested"); err == nil {
		t.Fatal("expected error for nested attribute values")
	}
}

func TestValidationFailures(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "invalid", "flags.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	_, err = inspection.Parse(data, "flags.yaml")
	if err == nil {
		t.Fatal("expected validation error")
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %T: %v", err, err)
	}
	for _, key := range []string{"person[0]", "person[1]", "person[2]"} {
		if _, ok := errs[key]; !ok {
			t.Fatalf("expected error for %s, got %v", key, errs)
		}
	}
}

func TestValidateAttributes(t *testing.T) {
	cases := []struct {
		name    string
		attrs   model.Attributes
		wantErr bool
	}{
		{"minimal", model.Attributes{"name": "a"}, false},
		{"flags", model.Attributes{"name": "a", "hidden": "false", "masked": "true"}, false},
		{"bounds", model.Attributes{"name": "a", "minimumValue": "-2", "maximumValue": "4.5"}, false},
		{"unknown keys", model.Attributes{"name": "a", "widget": "slider"}, false},
		{"missing name", model.Attributes{"type": "string"}, true},
		{"blank name", model.Attributes{"name": "  "}, true},
		{"bad flag", model.Attributes{"name": "a", "large": "yes"}, true},
		{"bad bound", model.Attributes{"name": "a", "maximumLength": "ten"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inspection.ValidateAttributes(tc.attrs)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateAttributes error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadFSMergesDocuments(t *testing.T) {
	doc, err := inspection.LoadFS(os.DirFS(filepath.Join("testdata", "docs")))
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"person", "person.address"}, doc.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if !doc.Has("person.address") {
		t.Fatal("expected nested path to be present")
	}
}

func TestLoadFSRejectsDuplicatePaths(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("paths:\n  person:\n    - {name: name}\n")},
		"b.json": {Data: []byte(`{"paths":{"person":[{"name":"age"}]}}`)},
	}
	_, err := inspection.LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), "duplicate path") {
		t.Fatalf("expected duplicate path error, got %v", err)
	}
}

func TestInspectUnknownPath(t *testing.T) {
	doc, err := inspection.NewDocument("inline", map[string][]model.Attributes{
		"person": {{"name": "name"}},
	})
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}
	_, err = doc.Inspect(context.Background(), "person.address")
	if !errors.Is(err, model.ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound, got %v", err)
	}
}

func TestInspectReturnsCopies(t *testing.T) {
	doc, err := inspection.NewDocument("inline", map[string][]model.Attributes{
		"person": {{"name": "name"}},
	})
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}
	first, _ := doc.Inspect(context.Background(), "person")
	first[0]["name"] = "changed"

	second, _ := doc.Inspect(context.Background(), "person")
	if second[0].Name() != "name" {
		t.Fatalf("expected stored attributes to be untouched, got %q", second[0].Name())
	}
}

func TestParseSource(t *testing.T) {
	src, err := inspection.ParseSource("https://example.com/person.yaml")
	if err != nil {
		t.Fatalf("ParseSource returned error: %v", err)
	}
	if src.Kind() != inspection.SourceKindURL {
		t.Fatalf("expected url source, got %s", src.Kind())
	}

	src, err = inspection.ParseSource("testdata/docs/person.yaml")
	if err != nil {
		t.Fatalf("ParseSource returned error: %v", err)
	}
	if src.Kind() != inspection.SourceKindFile {
		t.Fatalf("expected file source, got %s", src.Kind())
	}

	if _, err := inspection.ParseSource(""); err == nil {
		t.Fatal("expected error for empty location")
	}
}
