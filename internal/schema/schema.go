package schema

import "github.com/railwayapp/helmenv/internal/environment/types"

// Report is the result of scanning one directory tree
type Report struct {
	Root   string       `json:"root" yaml:"root"`
	Files  []FileReport `json:"files" yaml:"files"`
	Errors []FileError  `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// FileReport holds the deduplicated settings found in one file
type FileReport struct {
	Path     string    `json:"path" yaml:"path"`
	Settings []Setting `json:"settings" yaml:"settings"`
}

// Setting is one environment variable with metadata
type Setting struct {
	Name      string `json:"name" yaml:"name"`
	Value     string `json:"value" yaml:"value"`
	Type      string `json:"type" yaml:"type"`
	Sensitive bool   `json:"sensitive" yaml:"sensitive"`
}

// FileError records a file that could not be read
type FileError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// Constructors

func NewReport(root string) *Report {
	return &Report{
		Root:  root,
		Files: make([]FileReport, 0),
	}
}

// AddFile appends a file's settings. Files without settings are not
// reported.
func (r *Report) AddFile(path string, settings []types.EnvSetting) {
	if len(settings) == 0 {
		return
	}
	r.Files = append(r.Files, NewFileReport(path, settings))
}

func (r *Report) AddError(path string, err error) {
	r.Errors = append(r.Errors, FileError{Path: path, Error: err.Error()})
}

func NewFileReport(path string, settings []types.EnvSetting) FileReport {
	report := FileReport{
		Path:     path,
		Settings: make([]Setting, 0, len(settings)),
	}
	for _, setting := range settings {
		report.Settings = append(report.Settings, NewSetting(setting))
	}
	return report
}

func NewSetting(setting types.EnvSetting) Setting {
	envType, sensitive := types.Classify(setting.Name, setting.Value)
	return Setting{
		Name:      setting.Name,
		Value:     setting.Value,
		Type:      envType.String(),
		Sensitive: sensitive,
	}
}
