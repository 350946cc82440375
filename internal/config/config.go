package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/railwayapp/helmenv/internal/environment/envblock"
	"github.com/railwayapp/helmenv/internal/environment/extractors"
	"github.com/railwayapp/helmenv/internal/export"
	"github.com/railwayapp/helmenv/internal/filesystems"
	"github.com/railwayapp/helmenv/internal/scan"
)

// EnvPrefix is prepended to every environment override, e.g.
// HELMENV_KEEP_GOING=true.
const EnvPrefix = "HELMENV"

// Config is the merged result of flags, environment and config file
type Config struct {
	Format        string   `mapstructure:"format"`
	Sources       []string `mapstructure:"sources"`
	Exclude       []string `mapstructure:"exclude"`
	Gitignore     bool     `mapstructure:"gitignore"`
	BoundedValues bool     `mapstructure:"bounded-values"`
	EndOnDedent   bool     `mapstructure:"end-on-dedent"`
	KeepGoing     bool     `mapstructure:"keep-going"`
	Concurrency   int      `mapstructure:"concurrency"`
	Watch         bool     `mapstructure:"watch"`
	Verbose       bool     `mapstructure:"verbose"`
}

// Default returns the settings that reproduce a plain manifest scan
func Default() Config {
	return Config{
		Format:  export.FormatText,
		Sources: []string{extractors.SourceManifest},
	}
}

// New returns a viper instance with defaults and environment overrides
// registered.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("format", defaults.Format)
	v.SetDefault("sources", defaults.Sources)
	v.SetDefault("exclude", []string{})
	v.SetDefault("gitignore", false)
	v.SetDefault("bounded-values", false)
	v.SetDefault("end-on-dedent", false)
	v.SetDefault("keep-going", false)
	v.SetDefault("concurrency", 0)
	v.SetDefault("watch", false)
	v.SetDefault("verbose", false)
}

// Load unmarshals and validates the configuration held by v
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !slices.Contains(export.Formats(), c.Format) {
		return fmt.Errorf("%w: %q (want one of %s)", export.ErrUnknownFormat, c.Format, strings.Join(export.Formats(), ", "))
	}

	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	for _, source := range c.Sources {
		if !slices.Contains(extractors.SourceNames(), source) {
			return fmt.Errorf("%w: %q (want any of %s)", extractors.ErrUnknownSource, source, strings.Join(extractors.SourceNames(), ", "))
		}
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}

	return nil
}

func (c Config) EnvblockOptions() envblock.Options {
	return envblock.Options{
		BoundValues: c.BoundedValues,
		EndOnDedent: c.EndOnDedent,
	}
}

func (c Config) ExcludeConfig() filesystems.ExcludeConfig {
	return filesystems.ExcludeConfig{
		Patterns:     c.Exclude,
		UseGitignore: c.Gitignore,
	}
}

func (c Config) ScanOptions() scan.Options {
	return scan.Options{
		Concurrency: c.Concurrency,
		KeepGoing:   c.KeepGoing,
	}
}
