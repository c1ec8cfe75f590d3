package inspection

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-widgetgen/pkg/model"
)

// Document holds the attribute sets of every path it describes.
type Document struct {
	location string
	paths    map[string][]model.Attributes
}

var _ model.Inspector = (*Document)(nil)

type documentFile struct {
	Paths map[string][]map[string]any `json:"paths" yaml:"paths"`
}

// NewDocument builds a document from already resolved attribute sets.
func NewDocument(location string, paths map[string][]model.Attributes) (*Document, error) {
	doc := &Document{location: location, paths: make(map[string][]model.Attributes, len(paths))}
	for rawPath, sets := range paths {
		path := strings.TrimSpace(rawPath)
		if _, exists := doc.paths[path]; exists {
			return nil, fmt.Errorf("inspection: duplicate path %q (%s)", path, location)
		}
		doc.paths[path] = cloneSets(sets)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("inspection: validate %s: %w", location, err)
	}
	return doc, nil
}

// Parse decodes a JSON or YAML document. JSON is attempted first.
func Parse(data []byte, location string) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("inspection: document %s is empty", location)
	}

	var file documentFile
	if err := json.Unmarshal(data, &file); err != nil {
		file = documentFile{}
		if yamlErr := yaml.Unmarshal(data, &file); yamlErr != nil {
			return nil, fmt.Errorf("inspection: parse %s: invalid JSON or YAML: %w", location, yamlErr)
		}
	}

	paths := make(map[string][]model.Attributes, len(file.Paths))
	for rawPath, rawSets := range file.Paths {
		sets := make([]model.Attributes, 0, len(rawSets))
		for index, raw := range rawSets {
			attrs, err := toAttributes(raw)
			if err != nil {
				return nil, fmt.Errorf("inspection: %s path %q field %d: %w", location, rawPath, index, err)
			}
			sets = append(sets, attrs)
		}
		paths[rawPath] = sets
	}

	return NewDocument(location, paths)
}

// LoadFS parses every .json, .yaml and .yml file in fsys and merges them into
// one document. A path defined by more than one file is an error.
func LoadFS(fsys fs.FS) (*Document, error) {
	merged := &Document{location: "fs", paths: make(map[string][]model.Attributes)}
	if fsys == nil {
		return merged, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !IsDocumentFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("inspection: read %s: %w", path, err)
		}
		doc, err := Parse(data, path)
		if err != nil {
			return err
		}
		return merged.Merge(doc)
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// IsDocumentFile reports whether name has a supported extension.
func IsDocumentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Merge adds the paths of other to d. Paths present in both are an error and
// leave d unchanged.
func (d *Document) Merge(other *Document) error {
	if other == nil {
		return nil
	}
	for path := range other.paths {
		if _, exists := d.paths[path]; exists {
			return fmt.Errorf("inspection: duplicate path %q (%s, %s)", path, d.location, other.location)
		}
	}
	if d.paths == nil {
		d.paths = make(map[string][]model.Attributes, len(other.paths))
	}
	for path, sets := range other.paths {
		d.paths[path] = cloneSets(sets)
	}
	return nil
}

// Location reports where the document was loaded from.
func (d *Document) Location() string {
	if d == nil {
		return ""
	}
	return d.location
}

// Paths returns the sorted paths the document describes.
func (d *Document) Paths() []string {
	if d == nil {
		return nil
	}
	paths := make([]string, 0, len(d.paths))
	for path := range d.paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Has reports whether the document describes path.
func (d *Document) Has(path string) bool {
	if d == nil {
		return false
	}
	_, ok := d.paths[strings.TrimSpace(path)]
	return ok
}

// Inspect implements model.Inspector. The returned sets are copies.
func (d *Document) Inspect(ctx context.Context, path string) ([]model.Attributes, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if d == nil {
		return nil, fmt.Errorf("inspection: %w: %q", model.ErrPathNotFound, path)
	}
	sets, ok := d.paths[strings.TrimSpace(path)]
	if !ok {
		return nil, fmt.Errorf("inspection: %w: %q", model.ErrPathNotFound, path)
	}
	return cloneSets(sets), nil
}

func toAttributes(raw map[string]any) (model.Attributes, error) {
	attrs := make(model.Attributes, len(raw))
	for key, value := range raw {
		text, err := scalarString(value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", key, err)
		}
		attrs[key] = text
	}
	return attrs, nil
}

// scalarString stringifies YAML/JSON scalars. Lists are joined with commas so
// lookups can be written as sequences.
func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			part, err := scalarString(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ","), nil
	case map[string]any:
		return "", fmt.Errorf("nested objects are not supported")
	}
	return cast.ToStringE(value)
}

func cloneSets(sets []model.Attributes) []model.Attributes {
	out := make([]model.Attributes, len(sets))
	for i, attrs := range sets {
		out[i] = attrs.Clone()
	}
	return out
}
