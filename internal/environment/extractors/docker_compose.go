package extractors

import (
	"context"
	"slices"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	composeTypes "github.com/compose-spec/compose-go/v2/types"
	"github.com/railwayapp/helmenv/internal/environment/types"
)

type DockerComposeExtractor struct{}

func NewDockerComposeExtractor() *DockerComposeExtractor {
	return &DockerComposeExtractor{}
}

func (d *DockerComposeExtractor) Name() string {
	return SourceCompose
}

func (d *DockerComposeExtractor) CanHandle(filename string) bool {
	name := strings.ToLower(filename)
	return strings.Contains(name, "compose") && (strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml"))
}

func (d *DockerComposeExtractor) Extract(ctx context.Context, filename string, content []byte) ([]types.EnvSetting, error) {
	configDetails := composeTypes.ConfigDetails{
		WorkingDir: ".",
		ConfigFiles: []composeTypes.ConfigFile{
			{
				Filename: filename,
				Content:  content,
			},
		},
	}

	project, err := loader.LoadWithContext(ctx, configDetails, func(options *loader.Options) {
		options.SetProjectName("helmenv", true)
	})
	if err != nil {
		return nil, err
	}

	// Services and their environments are maps; sort for a stable report.
	serviceNames := make([]string, 0, len(project.Services))
	for name := range project.Services {
		serviceNames = append(serviceNames, name)
	}
	slices.Sort(serviceNames)

	var results []types.EnvSetting
	for _, serviceName := range serviceNames {
		environment := project.Services[serviceName].Environment

		keys := make([]string, 0, len(environment))
		for key := range environment {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		for _, key := range keys {
			value := ""
			if v := environment[key]; v != nil {
				value = *v
			}
			results = append(results, types.EnvSetting{Name: key, Value: value})
		}
	}

	return results, nil
}
