package types

// EnvSetting is an environment variable declared in a manifest. Value holds
// either the literal value or, for secret references, the secret key.
type EnvSetting struct {
	Name  string
	Value string
}

// Unique drops repeated settings, keeping the first occurrence of each.
// Settings sharing a name but not a value are all kept.
func Unique(settings []EnvSetting) []EnvSetting {
	if len(settings) == 0 {
		return nil
	}

	seen := make(map[EnvSetting]bool, len(settings))
	result := make([]EnvSetting, 0, len(settings))
	for _, setting := range settings {
		if seen[setting] {
			continue
		}
		seen[setting] = true
		result = append(result, setting)
	}
	return result
}
