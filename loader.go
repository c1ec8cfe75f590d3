package widgetgen

import (
	internalLoader "github.com/goliatone/go-widgetgen/internal/inspection/loader"
	"github.com/goliatone/go-widgetgen/pkg/inspection"
)

// NewLoader constructs an inspection loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...inspection.LoaderOption) inspection.Loader {
	cfg := inspection.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
