package export

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/railwayapp/helmenv/internal/schema"
)

type YAMLExporter struct{}

func (e *YAMLExporter) Name() string {
	return FormatYAML
}

func (e *YAMLExporter) Export(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close YAML encoder: %w", err)
	}

	return buf.Bytes(), nil
}

func NewYAMLExporter() Exporter {
	return &YAMLExporter{}
}
