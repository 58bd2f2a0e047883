package config

import "os"

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// parseEnv overlays the connection settings from the NEO4J_* variables.
// Unset or empty variables are ignored.
func parseEnv(cfg *Config) {
	vars := []struct {
		name string
		dst  *string
	}{
		{"NEO4J_URI", &cfg.Endpoint},
		{"NEO4J_USER", &cfg.User},
		{"NEO4J_PASSWORD", &cfg.Password},
		{"NEO4J_DATABASE", &cfg.DatabaseName},
	}

	for _, v := range vars {
		if val, ok := lookupEnv(v.name); ok {
			setIfNotEmpty(v.dst, val)
		}
	}
}
