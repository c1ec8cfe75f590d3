// Package loader implements inspection.Loader with file, fs.FS and HTTP
// strategies. Loading is offline-first: URL sources fail unless an HTTP
// client or the fallback is configured.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-widgetgen/pkg/inspection"
)

// Loader delegates to the strategy matching the source kind.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ inspection.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options inspection.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches and parses the document behind src.
func (l *Loader) Load(ctx context.Context, src inspection.Source) (*inspection.Document, error) {
	if ctx == nil {
		return nil, errors.New("inspection loader: context is required")
	}
	if src == nil {
		return nil, errors.New("inspection loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case inspection.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case inspection.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case inspection.SourceKindURL:
		if !l.allowHTTP {
			return nil, errors.New("inspection loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("inspection loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, err
	}

	return inspection.Parse(data, src.Location())
}
