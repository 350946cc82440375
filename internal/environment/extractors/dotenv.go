package extractors

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/railwayapp/helmenv/internal/environment/types"
)

type DotEnvExtractor struct{}

func NewDotEnvExtractor() *DotEnvExtractor {
	return &DotEnvExtractor{}
}

func (d *DotEnvExtractor) Name() string {
	return SourceDotEnv
}

func (d *DotEnvExtractor) CanHandle(filename string) bool {
	base := strings.ToLower(filepath.Base(filename))
	return strings.HasPrefix(base, ".env")
}

func (d *DotEnvExtractor) Extract(ctx context.Context, filename string, content []byte) ([]types.EnvSetting, error) {
	env, err := godotenv.Unmarshal(string(content))
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	results := make([]types.EnvSetting, 0, len(keys))
	for _, key := range keys {
		results = append(results, types.EnvSetting{Name: key, Value: env[key]})
	}

	return results, nil
}
