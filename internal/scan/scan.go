package scan

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/railwayapp/helmenv/internal/discovery"
	"github.com/railwayapp/helmenv/internal/environment"
	"github.com/railwayapp/helmenv/internal/environment/types"
	"github.com/railwayapp/helmenv/internal/filesystems"
	"github.com/railwayapp/helmenv/internal/schema"
)

type Options struct {
	// Concurrency caps simultaneous file reads. Zero means GOMAXPROCS.
	Concurrency int

	// KeepGoing records unreadable files on the report instead of failing
	// the run.
	KeepGoing bool
}

// Scanner discovers candidate files under a root and extracts their
// environment settings.
type Scanner struct {
	filesystem filesystems.FileSystem
	discovery  *discovery.Scanner
	extractor  *environment.Extractor
	opts       Options
	logger     *slog.Logger
}

func NewScanner(filesystem filesystems.FileSystem, excluder *filesystems.Excluder, extractor *environment.Extractor, opts Options) *Scanner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	return &Scanner{
		filesystem: filesystem,
		discovery:  discovery.NewScanner(filesystem, excluder, extractor),
		extractor:  extractor,
		opts:       opts,
		logger:     slog.Default(),
	}
}

// CanHandle reports whether changes to path could affect the report.
func (s *Scanner) CanHandle(path string) bool {
	return s.extractor.CanHandle(s.filesystem.Base(path))
}

// Run scans every candidate file under root. Files are reported in
// discovery order; files without settings are left out.
func (s *Scanner) Run(ctx context.Context, root string) (*schema.Report, error) {
	files, err := s.discovery.DiscoverFiles(root)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("discovered files", "root", root, "count", len(files))

	results := make([][]types.EnvSetting, len(files))
	failures := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, path := range files {
		g.Go(func() error {
			settings, err := s.scanFile(ctx, path)
			if err != nil {
				if !s.opts.KeepGoing || ctx.Err() != nil {
					return err
				}
				s.logger.Warn("skipping unreadable file", "path", path, "error", err)
				failures[i] = err
				return nil
			}
			results[i] = settings
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := schema.NewReport(root)
	for i, path := range files {
		if failures[i] != nil {
			report.AddError(path, failures[i])
			continue
		}
		report.AddFile(path, results[i])
	}

	return report, nil
}

// ScanFile extracts the settings of a single file.
func (s *Scanner) ScanFile(ctx context.Context, path string) (schema.FileReport, error) {
	settings, err := s.scanFile(ctx, path)
	if err != nil {
		return schema.FileReport{}, err
	}
	return schema.NewFileReport(path, settings), nil
}

func (s *Scanner) scanFile(ctx context.Context, path string) ([]types.EnvSetting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := s.filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	settings := s.extractor.ExtractUnique(ctx, s.filesystem.Base(path), content)
	s.logger.Debug("scanned file", "path", path, "settings", len(settings))
	return settings, nil
}
