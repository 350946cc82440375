package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/railwayapp/helmenv/internal/environment/types"
	"github.com/railwayapp/helmenv/internal/schema"
)

func sampleReport() *schema.Report {
	report := schema.NewReport("charts")
	report.AddFile("charts/api/deployment.yaml", []types.EnvSetting{
		{Name: "LOG_LEVEL", Value: "debug"},
		{Name: "DB_PASSWORD", Value: "password"},
	})
	report.AddFile("charts/worker/deployment.yaml", []types.EnvSetting{
		{Name: "QUEUE", Value: "jobs"},
		{Name: "QUEUE", Value: "mail"},
	})
	return report
}

func TestNew(t *testing.T) {
	for _, format := range Formats() {
		exporter, err := New(format)
		require.NoError(t, err)
		assert.Equal(t, format, exporter.Name())
	}

	exporter, err := New("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, exporter.Name())

	_, err = New("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestTextExporter(t *testing.T) {
	out, err := NewTextExporter().Export(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "----K8s deployment file: charts/api/deployment.yaml\n"+
		"LOG_LEVEL - debug\n"+
		"DB_PASSWORD - password\n"+
		"----K8s deployment file: charts/worker/deployment.yaml\n"+
		"QUEUE - jobs\n"+
		"QUEUE - mail\n", string(out))
}

func TestTextExporterEmptyReport(t *testing.T) {
	out, err := NewTextExporter().Export(schema.NewReport("."))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleReport())
	require.NoError(t, err)

	var decoded schema.Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, *sampleReport(), decoded)
	assert.Contains(t, string(out), `"sensitive": true`)
}

func TestYAMLExporter(t *testing.T) {
	out, err := NewYAMLExporter().Export(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, string(out), "root: charts\n")
	assert.Contains(t, string(out), "  - path: charts/api/deployment.yaml\n")

	var decoded schema.Report
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, *sampleReport(), decoded)
}

func TestDotEnvExporter(t *testing.T) {
	out, err := NewDotEnvExporter().Export(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "# charts/api/deployment.yaml\n"+
		"DB_PASSWORD=\"password\"\n"+
		"LOG_LEVEL=\"debug\"\n"+
		"\n"+
		"# charts/worker/deployment.yaml\n"+
		"QUEUE=\"mail\"\n", string(out))
}
