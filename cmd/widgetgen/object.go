package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cast"

	"github.com/goliatone/go-widgetgen/pkg/model"
)

// loadObject decodes the JSON object at path. An empty path yields an empty
// object so interactive runs can start from scratch.
func loadObject(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("widgetgen: read object: %w", err)
	}
	object := map[string]any{}
	if err := json.Unmarshal(data, &object); err != nil {
		return nil, fmt.Errorf("widgetgen: decode object %s: %w", path, err)
	}
	return object, nil
}

// coerceObject converts the strings written back by Save into JSON numbers
// and booleans according to each field's declared type. Empty numbers become
// null.
func coerceObject(ctx context.Context, inspector model.Inspector, path string, object map[string]any, depth int) {
	walkNested(ctx, inspector, path, depth, func(attrs model.Attributes, nestedPath string) {
		if nested, ok := object[attrs.Name()].(map[string]any); ok {
			coerceObject(ctx, inspector, nestedPath, nested, depth-1)
		}
	}, func(attrs model.Attributes) {
		name := attrs.Name()
		raw, ok := object[name].(string)
		if !ok {
			return
		}
		switch attrs.Type() {
		case model.TypeNumber:
			if raw == "" {
				object[name] = nil
				return
			}
			if number, err := cast.ToFloat64E(raw); err == nil {
				object[name] = number
			}
		case model.TypeBoolean:
			if flag, err := cast.ToBoolE(raw); err == nil {
				object[name] = flag
			}
		}
	})
}

func walkNested(ctx context.Context, inspector model.Inspector, path string, depth int, nested func(model.Attributes, string), scalar func(model.Attributes)) {
	if depth < 0 {
		return
	}
	sets, err := inspector.Inspect(ctx, path)
	if err != nil {
		return
	}
	for _, attrs := range sets {
		name := attrs.Name()
		if name == "" || name == model.RootName {
			continue
		}
		nestedPath := model.JoinPath(path, name)
		if !attrs.IsTrue(model.AttrDontExpand) {
			if _, err := inspector.Inspect(ctx, nestedPath); err == nil {
				if nested != nil {
					nested(attrs, nestedPath)
				}
				continue
			}
		}
		if scalar != nil {
			scalar(attrs)
		}
	}
}
