package widgetgen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetgen/pkg/inspection"
	"github.com/goliatone/go-widgetgen/pkg/orchestrator"
)

type contact struct {
	Name       string `json:"name"`
	Subscribed bool   `json:"subscribed"`
}

func TestGenerateHTMLFromFile(t *testing.T) {
	out, err := GenerateHTML(context.Background(), filepath.Join("testdata", "contact.yaml"), "contact", &contact{Name: "Ada"})
	if err != nil {
		t.Fatalf("GenerateHTML returned error: %v", err)
	}

	want := `<div><input type="text" id="name" value="Ada" name="name"/><input type="checkbox" id="subscribed" name="subscribed"/></div>`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHTMLCustomPipeline(t *testing.T) {
	out, err := GenerateHTML(context.Background(), filepath.Join("testdata", "contact.yaml"), "contact", &contact{Name: "Ada"},
		orchestrator.WithPipeline(nil, []string{"id"}))
	if err != nil {
		t.Fatalf("GenerateHTML returned error: %v", err)
	}

	want := `<div><input type="text" id="name"/><input type="checkbox" id="subscribed"/></div>`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHTMLMissingPath(t *testing.T) {
	_, err := GenerateHTML(context.Background(), filepath.Join("testdata", "contact.yaml"), "invoice", nil)
	if err == nil {
		t.Fatalf("expected error for unknown path")
	}
}

func TestLoadDocumentOverHTTP(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "contact.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	}))
	defer server.Close()

	if _, err := LoadDocument(context.Background(), server.URL+"/contact.yaml"); err == nil {
		t.Fatalf("expected HTTP loading to be disabled by default")
	}

	doc, err := LoadDocument(context.Background(), server.URL+"/contact.yaml", inspection.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("LoadDocument returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"contact"}, doc.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHTMLFromURL(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "contact.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	}))
	defer server.Close()

	out, err := GenerateHTML(context.Background(), server.URL+"/contact.yaml", "contact", &contact{Subscribed: true})
	if err != nil {
		t.Fatalf("GenerateHTML returned error: %v", err)
	}

	want := `<div><input type="text" id="name" name="name"/><input type="checkbox" id="subscribed" checked="checked" name="subscribed"/></div>`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s", diff)
	}
}
