package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// fileValues holds the raw key/value pairs from the optional config file.
// Values are kept as strings and coerced on access so a missing or
// malformed file degrades to defaults instead of failing startup.
type fileValues map[string]string

// loadFile reads and parses the YAML config file at path. A missing or
// unparsable file yields an empty set; the client must still start.
func loadFile(path string) fileValues {
	if path == "" {
		return fileValues{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fileValues{}
	}

	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fileValues{}
	}
	return fileValues(raw)
}

func (f fileValues) str(key, def string) string {
	if v, ok := f[key]; ok && v != "" {
		return v
	}
	return def
}

func (f fileValues) integer(key string, def int) int {
	if v, ok := f[key]; ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func (f fileValues) boolean(key string, def bool) bool {
	if v, ok := f[key]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func (f fileValues) duration(key string, def time.Duration) time.Duration {
	if v, ok := f[key]; ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
