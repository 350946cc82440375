package discovery

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/railwayapp/helmenv/internal/filesystems"
)

// Detector decides whether a file is worth reading. The environment
// extractor satisfies it.
type Detector interface {
	CanHandle(filename string) bool
}

// Scanner handles recursive discovery of candidate files
type Scanner struct {
	filesystem filesystems.FileSystem
	excluder   *filesystems.Excluder
	detectors  []Detector
	logger     *slog.Logger
}

// NewScanner creates a scanner over filesystem. A nil excluder skips nothing.
func NewScanner(filesystem filesystems.FileSystem, excluder *filesystems.Excluder, detectors ...Detector) *Scanner {
	return &Scanner{
		filesystem: filesystem,
		excluder:   excluder,
		detectors:  detectors,
		logger:     slog.Default(),
	}
}

// DiscoverFiles walks root and returns the files some detector accepts, in
// lexical walk order. Any walk error aborts discovery.
func (s *Scanner) DiscoverFiles(root string) ([]string, error) {
	var files []string

	err := s.filesystem.Walk(root, func(path string, info filesystems.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := s.filesystem.Rel(root, path)
		if err != nil {
			return err
		}

		if s.excluder.Excluded(filepath.ToSlash(rel), info.IsDir()) {
			s.logger.Debug("excluded", "path", path)
			if info.IsDir() {
				return filesystems.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		for _, detector := range s.detectors {
			if detector.CanHandle(info.Name()) {
				files = append(files, path)
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}
