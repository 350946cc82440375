package export

import (
	"bytes"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/railwayapp/helmenv/internal/schema"
)

// DotEnvExporter writes one .env block per file. The format keeps a single
// value per name, so a later setting overwrites an earlier one.
type DotEnvExporter struct{}

func (e *DotEnvExporter) Name() string {
	return FormatDotEnv
}

func (e *DotEnvExporter) Export(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer

	for i, file := range report.Files {
		env := make(map[string]string, len(file.Settings))
		for _, setting := range file.Settings {
			env[setting.Name] = setting.Value
		}

		content, err := godotenv.Marshal(env)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", file.Path, err)
		}

		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "# %s\n%s\n", file.Path, content)
	}

	return buf.Bytes(), nil
}

func NewDotEnvExporter() Exporter {
	return &DotEnvExporter{}
}
