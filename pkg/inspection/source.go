package inspection

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where an inspection document originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }

func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses raw and returns a Source. It panics on invalid input
// to surface configuration mistakes early; ParseSource is the non-panicking
// variant.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("inspection: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("inspection: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// ParseSource returns a URL source for http(s) locations and a file source
// for everything else.
func ParseSource(location string) (Source, error) {
	if location == "" {
		return nil, fmt.Errorf("inspection: location is required")
	}
	parsed, err := url.Parse(location)
	if err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		if _, err := url.ParseRequestURI(location); err != nil {
			return nil, fmt.Errorf("inspection: invalid URL %q: %w", location, err)
		}
		return urlSource{raw: location}, nil
	}
	return SourceFromFile(location), nil
}
