package envblock

import (
	"regexp"

	"github.com/railwayapp/helmenv/internal/environment/types"
)

var (
	// `- name: LOG_LEVEL`
	entryNamePattern = regexp.MustCompile(`-\s*name:\s*([A-Za-z_]+)\s*`)

	// `value: debug`, or a valueFrom/secretKeyRef reference whose key is
	// reported in place of a literal value.
	entryValuePattern = regexp.MustCompile(
		`value:\s*(\S+)` +
			`|valueFrom:[.\n\s]*secretKeyRef:[.\n\s]*name:\s*\S*[.\n\s]*key:\s*(\S+)`,
	)
)

// Entries returns the declarations listed in one section, in document
// order and without deduplication.
//
// The value of an entry is the first value or secret reference found after
// its name. Unless opts.BoundValues is set the search runs to the end of the
// section, so an entry without a value of its own picks up the next one.
func Entries(section string, opts Options) []types.EnvSetting {
	matches := entryNamePattern.FindAllStringSubmatchIndex(section, -1)
	if len(matches) == 0 {
		return nil
	}

	settings := make([]types.EnvSetting, 0, len(matches))
	for i, m := range matches {
		tail := section[m[0]:]
		if opts.BoundValues && i+1 < len(matches) {
			tail = section[m[0]:matches[i+1][0]]
		}

		settings = append(settings, types.EnvSetting{
			Name:  section[m[2]:m[3]],
			Value: resolveValue(tail),
		})
	}
	return settings
}

func resolveValue(tail string) string {
	m := entryValuePattern.FindStringSubmatch(tail)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// ScanText extracts the distinct settings declared in every env: block of
// a manifest.
func ScanText(text string, opts Options) []types.EnvSetting {
	var settings []types.EnvSetting
	for section := range Sections(text, opts) {
		settings = append(settings, Entries(section.Text, opts)...)
	}
	return types.Unique(settings)
}
