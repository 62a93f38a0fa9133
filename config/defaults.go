package config

import "strings"

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "yaml",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{
		Module:         pick(loaded.Module, defaults.Module),
		Library:        pick(loaded.Library, defaults.Library),
		Headers:        pickList(loaded.Headers, defaults.Headers),
		HeaderPatterns: pickList(loaded.HeaderPatterns, defaults.HeaderPatterns),
		CFlags:         pickList(loaded.CFlags, defaults.CFlags),
		Prefixes:       pickList(loaded.Prefixes, defaults.Prefixes),
		Blocking:       pickList(loaded.Blocking, defaults.Blocking),
		ReservedWords:  pickList(loaded.ReservedWords, defaults.ReservedWords),
		Output: OutputConfig{
			Format: pick(loaded.Output.Format, defaults.Output.Format),
			Query:  pick(loaded.Output.Query, defaults.Output.Query),
		},
	}

	// Library: the module name lower-cased when neither side names one
	if result.Library == "" {
		result.Library = strings.ToLower(result.Module)
	}

	return result
}

func pick(loaded, def string) string {
	if loaded != "" {
		return loaded
	}
	return def
}

func pickList(loaded, def []string) []string {
	if len(loaded) > 0 {
		return loaded
	}
	return def
}
