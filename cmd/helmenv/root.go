package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/railwayapp/helmenv/internal/config"
	"github.com/railwayapp/helmenv/internal/environment"
	"github.com/railwayapp/helmenv/internal/environment/extractors"
	"github.com/railwayapp/helmenv/internal/export"
	"github.com/railwayapp/helmenv/internal/filesystems"
	"github.com/railwayapp/helmenv/internal/scan"
	"github.com/railwayapp/helmenv/internal/schema"
	"github.com/railwayapp/helmenv/internal/watch"
)

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("helmenv failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "helmenv [root-path]",
		Short: "List the environment variables set by Kubernetes and Helm manifests",
		Long: `helmenv walks a source tree, finds every .yaml and .yml file and prints the
entries of each container env: list it contains, one "Name - Value" line per
distinct entry, grouped by file.

Docker Compose files, Dockerfiles and .env files can be scanned as well with
--sources.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			setupLogging(v.GetBool("verbose"))
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return run(cmd, v, args[0])
			}

			// Like the original tool, report absolute paths by default.
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			return run(cmd, v, cwd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.helmenv.yaml)")
	flags.BoolP("verbose", "v", false, "enable verbose output")

	flags = cmd.Flags()
	flags.StringP("format", "f", export.FormatText, fmt.Sprintf("output format (%s)", strings.Join(export.Formats(), ", ")))
	flags.StringSlice("sources", []string{extractors.SourceManifest}, fmt.Sprintf("file kinds to scan (%s)", strings.Join(extractors.SourceNames(), ", ")))
	flags.StringSlice("exclude", nil, "gitignore-style patterns to skip")
	flags.Bool("gitignore", false, "also skip paths matched by the root .gitignore")
	flags.Bool("bounded-values", false, "only search for an entry's value up to the next entry")
	flags.Bool("end-on-dedent", false, "also end an env: list at any less indented line")
	flags.Bool("keep-going", false, "report unreadable files instead of failing")
	flags.Int("concurrency", 0, "maximum files read at once (default GOMAXPROCS)")
	flags.BoolP("watch", "w", false, "keep running and rescan manifests as they change")

	cobra.CheckErr(v.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose")))
	cobra.CheckErr(v.BindPFlags(cmd.Flags()))

	return cmd
}

// initConfig loads configuration from the config file and environment.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}

		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".helmenv")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}

	slog.Debug("using config file", "file", v.ConfigFileUsed())
	// The file may turn on verbose output.
	setupLogging(v.GetBool("verbose"))
	return nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func run(cmd *cobra.Command, v *viper.Viper, source string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	filesystem, err := filesystems.NewFileSystem(source)
	if err != nil {
		return fmt.Errorf("failed to create filesystem: %w", err)
	}

	// If user provided a file path, use the parent directory
	root := filesystems.GetBasePath(source)
	if stat, err := os.Stat(root); err == nil && !stat.IsDir() {
		root = filepath.Dir(root)
	}

	excluder, err := filesystems.NewExcluder(filesystem, root, cfg.ExcludeConfig())
	if err != nil {
		return err
	}

	list, err := extractors.ForSources(cfg.Sources, cfg.EnvblockOptions())
	if err != nil {
		return err
	}

	exporter, err := export.New(cfg.Format)
	if err != nil {
		return err
	}

	scanner := scan.NewScanner(filesystem, excluder, environment.NewExtractor(list...), cfg.ScanOptions())
	write := func(report *schema.Report) error {
		output, err := exporter.Export(report)
		if err != nil {
			return fmt.Errorf("%s export failed: %w", exporter.Name(), err)
		}
		_, err = cmd.OutOrStdout().Write(output)
		return err
	}

	ctx := cmd.Context()
	report, err := scanner.Run(ctx, root)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if err := write(report); err != nil {
		return err
	}

	if !cfg.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("watching for changes", "root", root)
	return watch.NewWatcher(root, scanner, excluder, write).Run(ctx)
}
