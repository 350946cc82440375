package export

import (
	"errors"
	"fmt"

	"github.com/railwayapp/helmenv/internal/schema"
)

// Exporter defines the interface for rendering scan reports
type Exporter interface {
	// Export converts a report to the target format
	Export(report *schema.Report) ([]byte, error)

	// Name returns the exporter name (e.g., "text", "json", "dotenv")
	Name() string
}

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatDotEnv = "dotenv"
)

var ErrUnknownFormat = errors.New("unknown format")

// Formats lists every format New accepts.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatDotEnv}
}

func New(format string) (Exporter, error) {
	switch format {
	case FormatText, "":
		return NewTextExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatYAML:
		return NewYAMLExporter(), nil
	case FormatDotEnv:
		return NewDotEnvExporter(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
