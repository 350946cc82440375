package export

import (
	"bytes"

	"github.com/railwayapp/helmenv/internal/schema"
)

// TextExporter prints the console listing: a header line per file followed
// by one "Name - Value" line per setting.
type TextExporter struct{}

func (e *TextExporter) Name() string {
	return FormatText
}

func (e *TextExporter) Export(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer

	for _, file := range report.Files {
		buf.WriteString("----K8s deployment file: ")
		buf.WriteString(file.Path)
		buf.WriteByte('\n')

		for _, setting := range file.Settings {
			buf.WriteString(setting.Name)
			buf.WriteString(" - ")
			buf.WriteString(setting.Value)
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes(), nil
}

func NewTextExporter() Exporter {
	return &TextExporter{}
}
