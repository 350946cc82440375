package extractors

import (
	"context"
	"strings"

	"github.com/railwayapp/helmenv/internal/environment/envblock"
	"github.com/railwayapp/helmenv/internal/environment/types"
)

// ManifestExtractor reads container env: lists from Kubernetes manifests and
// Helm templates.
type ManifestExtractor struct {
	opts envblock.Options
}

func NewManifestExtractor(opts envblock.Options) *ManifestExtractor {
	return &ManifestExtractor{opts: opts}
}

func (m *ManifestExtractor) Name() string {
	return SourceManifest
}

func (m *ManifestExtractor) CanHandle(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// Extract returns every declaration of every env: block in document order.
// Repeats are kept; the caller deduplicates per file.
func (m *ManifestExtractor) Extract(ctx context.Context, filename string, content []byte) ([]types.EnvSetting, error) {
	var settings []types.EnvSetting
	for section := range envblock.Sections(string(content), m.opts) {
		settings = append(settings, envblock.Entries(section.Text, m.opts)...)
	}
	return settings, nil
}
