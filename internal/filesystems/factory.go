package filesystems

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

var ErrUnsupportedScheme = errors.New("unsupported scheme")

// NewFileSystem creates a filesystem implementation based on the given URI.
// Supports plain paths and file:///path/to/local/dir.
func NewFileSystem(uri string) (FileSystem, error) {
	// Handle local paths without scheme
	if !strings.Contains(uri, "://") {
		if _, err := filepath.Abs(uri); err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %s: %w", uri, err)
		}
		return NewLocalFS(), nil
	}

	parsedURL, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid URI %s: %w", uri, err)
	}

	if parsedURL.Scheme != "file" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, parsedURL.Scheme)
	}
	return NewLocalFS(), nil
}

// GetBasePath returns the path to walk for the given URI
func GetBasePath(uri string) string {
	if !strings.Contains(uri, "://") {
		return uri
	}

	parsedURL, err := url.Parse(uri)
	if err != nil || parsedURL.Scheme != "file" {
		return uri
	}

	return filepath.FromSlash(parsedURL.Path)
}
