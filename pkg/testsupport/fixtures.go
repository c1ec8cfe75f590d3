// Package testsupport holds fixture and golden helpers shared by package
// tests.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetgen/pkg/inspection"
)

// MustLoadInspection parses an inspection fixture or fails the test.
func MustLoadInspection(t *testing.T, path string) *inspection.Document {
	t.Helper()

	doc, err := LoadInspection(path)
	if err != nil {
		t.Fatalf("load inspection: %v", err)
	}
	return doc
}

// LoadInspection parses an inspection fixture without requiring testing.T.
func LoadInspection(path string) (*inspection.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: inspection path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read inspection: %w", err)
	}
	doc, err := inspection.Parse(data, path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse inspection: %w", err)
	}
	return doc, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file with surrounding whitespace
// trimmed, so editors adding a final newline do not break comparisons.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return strings.TrimSpace(string(MustReadGolden(t, path)))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
