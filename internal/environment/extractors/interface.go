package extractors

import (
	"context"

	"github.com/railwayapp/helmenv/internal/environment/types"
)

// ContentExtractor processes file content and extracts environment variables
type ContentExtractor interface {
	// Extract environment variables from file content, in declaration order
	Extract(ctx context.Context, filename string, content []byte) ([]types.EnvSetting, error)

	// CanHandle returns true if this extractor can process the given file
	CanHandle(filename string) bool

	// Name returns the source name used to select this extractor
	Name() string
}
