package model

import (
	"context"
	"errors"
)

// ErrPathNotFound is returned by an Inspector that has no attributes for the
// requested path.
var ErrPathNotFound = errors.New("model: path not found")

// Inspector resolves the ordered field attributes for a property path. It is
// the seam to whatever inspection step produced the metadata.
type Inspector interface {
	Inspect(ctx context.Context, path string) ([]Attributes, error)
}

// InspectorFunc adapts a function into an Inspector.
type InspectorFunc func(ctx context.Context, path string) ([]Attributes, error)

// Inspect calls the underlying function.
func (fn InspectorFunc) Inspect(ctx context.Context, path string) ([]Attributes, error) {
	return fn(ctx, path)
}
