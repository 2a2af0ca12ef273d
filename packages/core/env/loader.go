package env

import (
	"fmt"
	"maps"
	"os"
	"strings"
)

// ParseAssignments turns KEY=value strings, as given to --var, into variables.
func ParseAssignments(assignments []string) (map[string]any, error) {
	result := make(map[string]any, len(assignments))
	for _, a := range assignments {
		key, value, found := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid variable %q: expected KEY=value", a)
		}
		result[key] = value
	}
	return result, nil
}

// MergeVariables merges sources left to right, later sources winning.
func MergeVariables(sources ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, src := range sources {
		maps.Copy(result, src)
	}
	return result
}

// FromStrings converts a string map, such as the result of LoadDotEnv.
func FromStrings(vars map[string]string) map[string]any {
	result := make(map[string]any, len(vars))
	for k, v := range vars {
		result[k] = v
	}
	return result
}

// LoadSystemEnv returns OS environment variables whose name starts with
// prefix, keyed by the name with the prefix removed. An empty prefix returns
// every variable.
func LoadSystemEnv(prefix string) map[string]any {
	result := make(map[string]any)
	for _, e := range os.Environ() {
		key, value, found := strings.Cut(e, "=")
		if !found {
			continue
		}
		if prefix == "" {
			result[key] = value
		} else if name, ok := strings.CutPrefix(key, prefix); ok && name != "" {
			result[name] = value
		}
	}
	return result
}
