package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railwayapp/helmenv/internal/environment/envblock"
	"github.com/railwayapp/helmenv/internal/environment/extractors"
	"github.com/railwayapp/helmenv/internal/export"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, []string{"manifest"}, cfg.Sources)
	assert.Empty(t, cfg.Exclude)
	assert.Equal(t, envblock.Options{}, cfg.EnvblockOptions())
	assert.Zero(t, cfg.ScanOptions().Concurrency)
	assert.False(t, cfg.ScanOptions().KeepGoing)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("HELMENV_FORMAT", "json")
	t.Setenv("HELMENV_KEEP_GOING", "true")
	t.Setenv("HELMENV_BOUNDED_VALUES", "true")
	t.Setenv("HELMENV_CONCURRENCY", "3")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.KeepGoing)
	assert.Equal(t, envblock.Options{BoundValues: true}, cfg.EnvblockOptions())
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helmenv.yaml")
	content := "format: yaml\n" +
		"sources: [manifest, dotenv]\n" +
		"exclude:\n  - vendor/\n" +
		"gitignore: true\n" +
		"end-on-dedent: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, []string{"manifest", "dotenv"}, cfg.Sources)
	assert.Equal(t, []string{"vendor/"}, cfg.ExcludeConfig().Patterns)
	assert.True(t, cfg.ExcludeConfig().UseGitignore)
	assert.Equal(t, envblock.Options{EndOnDedent: true}, cfg.EnvblockOptions())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"unknown format", func(c *Config) { c.Format = "xml" }, export.ErrUnknownFormat},
		{"unknown source", func(c *Config) { c.Sources = []string{"manifest", "terraform"} }, extractors.ErrUnknownSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	cfg := Default()
	cfg.Sources = nil
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Concurrency = -1
	require.Error(t, cfg.Validate())
}
