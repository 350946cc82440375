package extractors

import (
	"errors"
	"fmt"

	"github.com/railwayapp/helmenv/internal/environment/envblock"
)

const (
	SourceManifest   = "manifest"
	SourceCompose    = "compose"
	SourceDockerfile = "dockerfile"
	SourceDotEnv     = "dotenv"
)

var ErrUnknownSource = errors.New("unknown source")

// SourceNames lists every source that ForSources accepts.
func SourceNames() []string {
	return []string{SourceManifest, SourceCompose, SourceDockerfile, SourceDotEnv}
}

// ForSources builds the extractors for the named sources, in the given order.
// Repeated names are ignored.
func ForSources(names []string, opts envblock.Options) ([]ContentExtractor, error) {
	var result []ContentExtractor
	seen := make(map[string]bool)

	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case SourceManifest:
			result = append(result, NewManifestExtractor(opts))
		case SourceCompose:
			result = append(result, NewDockerComposeExtractor())
		case SourceDockerfile:
			result = append(result, NewDockerfileExtractor())
		case SourceDotEnv:
			result = append(result, NewDotEnvExtractor())
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
		}
	}

	return result, nil
}
