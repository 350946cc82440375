package environment

import (
	"context"
	"log/slog"

	"github.com/railwayapp/helmenv/internal/environment/envblock"
	"github.com/railwayapp/helmenv/internal/environment/extractors"
	"github.com/railwayapp/helmenv/internal/environment/types"
)

type Extractor struct {
	extractors []extractors.ContentExtractor
	logger     *slog.Logger
}

// NewExtractor fans file content out to the given extractors. With none
// given it only reads manifests, using the default boundary options.
func NewExtractor(list ...extractors.ContentExtractor) *Extractor {
	if len(list) == 0 {
		list = []extractors.ContentExtractor{extractors.NewManifestExtractor(envblock.Options{})}
	}

	return &Extractor{
		extractors: list,
		logger:     slog.Default(),
	}
}

// CanHandle reports whether any extractor accepts the file.
func (e *Extractor) CanHandle(filename string) bool {
	for _, extractor := range e.extractors {
		if extractor.CanHandle(filename) {
			return true
		}
	}
	return false
}

// Extract environment variables from file content
func (e *Extractor) Extract(ctx context.Context, filename string, content []byte) <-chan types.EnvSetting {
	results := make(chan types.EnvSetting, 32)

	go func() {
		defer close(results)

		// Apply all extractors that can handle this file
		for _, extractor := range e.extractors {
			if !extractor.CanHandle(filename) {
				continue
			}

			settings, err := extractor.Extract(ctx, filename, content)
			if err != nil {
				e.logger.Debug("extractor skipped file", "source", extractor.Name(), "path", filename, "error", err)
				continue
			}

			for _, setting := range settings {
				select {
				case results <- setting:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return results
}

// ExtractUnique drains Extract and drops repeated settings, keeping the
// first occurrence of each.
func (e *Extractor) ExtractUnique(ctx context.Context, filename string, content []byte) []types.EnvSetting {
	var settings []types.EnvSetting
	for setting := range e.Extract(ctx, filename, content) {
		settings = append(settings, setting)
	}
	return types.Unique(settings)
}
