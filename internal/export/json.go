package export

import (
	"encoding/json"

	"github.com/railwayapp/helmenv/internal/schema"
)

type JSONExporter struct{}

func (e *JSONExporter) Name() string {
	return FormatJSON
}

func (e *JSONExporter) Export(report *schema.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func NewJSONExporter() Exporter {
	return &JSONExporter{}
}
