package extractors

import (
	"bytes"
	"context"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
	"github.com/railwayapp/helmenv/internal/environment/types"
)

type DockerfileExtractor struct{}

func NewDockerfileExtractor() *DockerfileExtractor {
	return &DockerfileExtractor{}
}

func (d *DockerfileExtractor) Name() string {
	return SourceDockerfile
}

func (d *DockerfileExtractor) CanHandle(filename string) bool {
	base := strings.ToLower(filename[strings.LastIndexAny(filename, `/\`)+1:])
	return base == "dockerfile" || strings.HasPrefix(base, "dockerfile.") || strings.HasSuffix(base, ".dockerfile")
}

func (d *DockerfileExtractor) Extract(ctx context.Context, filename string, content []byte) ([]types.EnvSetting, error) {
	result, err := parser.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var settings []types.EnvSetting
	for _, child := range result.AST.Children {
		if strings.EqualFold(child.Value, "env") {
			settings = append(settings, parseEnvNode(child)...)
		}
	}

	return settings, nil
}

func parseEnvNode(node *parser.Node) []types.EnvSetting {
	var args []string
	for n := node.Next; n != nil; n = n.Next {
		args = append(args, n.Value)
	}
	if len(args) == 0 {
		return nil
	}

	var settings []types.EnvSetting

	// Some parser versions leave KEY=value words unsplit.
	if strings.Contains(args[0], "=") {
		for _, arg := range args {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				continue
			}
			settings = append(settings, types.EnvSetting{Name: name, Value: unquote(value)})
		}
		return settings
	}

	// Otherwise name/value node pairs, optionally followed by a separator node.
	for i := 0; i+1 < len(args); {
		name, value := args[i], args[i+1]
		i += 2
		if i < len(args) && (args[i] == "=" || args[i] == " ") {
			i++
		}
		settings = append(settings, types.EnvSetting{Name: name, Value: unquote(value)})
	}

	return settings
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
