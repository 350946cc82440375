package filesystems

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Excluder decides which paths under a scan root are skipped. Patterns use
// gitignore syntax.
type Excluder struct {
	matcher *ignore.GitIgnore
}

// ExcludeConfig holds configuration for an Excluder
type ExcludeConfig struct {
	// Patterns are explicit exclude patterns (gitignore syntax)
	Patterns []string

	// UseGitignore also applies the .gitignore found at the scan root
	UseGitignore bool
}

// Directories that are never scanned.
var alwaysExcluded = []string{".git/", ".hg/", ".svn/"}

// NewExcluder compiles the exclusion rules for the tree rooted at root.
// A missing .gitignore is not an error.
func NewExcluder(filesystem FileSystem, root string, cfg ExcludeConfig) (*Excluder, error) {
	lines := append([]string{}, alwaysExcluded...)

	if cfg.UseGitignore {
		content, err := filesystem.ReadFile(filesystem.Join(root, ".gitignore"))
		switch {
		case err == nil:
			lines = append(lines, strings.Split(string(content), "\n")...)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read .gitignore: %w", err)
		}
	}

	// Explicit patterns come last so they can re-include with "!".
	lines = append(lines, cfg.Patterns...)

	return &Excluder{matcher: ignore.CompileIgnoreLines(lines...)}, nil
}

// Excluded reports whether relPath, relative to the scan root and
// slash-separated, should be skipped. isDir marks directories so that
// directory-only patterns ("build/") apply.
func (e *Excluder) Excluded(relPath string, isDir bool) bool {
	if e == nil || relPath == "." || relPath == "" {
		return false
	}
	if isDir {
		relPath = strings.TrimSuffix(relPath, "/") + "/"
	}
	return e.matcher.MatchesPath(relPath)
}
