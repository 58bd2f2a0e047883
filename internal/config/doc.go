// Package config loads runtime configuration for the GophSocial CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD, NEO4J_DATABASE.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   graph endpoint URI (neo4j://, bolt://, neo4j+s:// ...)
//	-u string   graph user
//	-p string   graph password
//	-d string   database name
//	-s string   storage backend: neo4j | memory
//	-l          allow passwordless login for legacy accounts
//	-log-backend string   slog | zap
//	-log-level string     debug | info | warn | error
//
// # JSON schema
//
//	{
//	  "endpoint": "neo4j://localhost:7687",
//	  "user": "neo4j",
//	  "password": "secret",
//	  "database": "neo4j",
//	  "store": "neo4j",
//	  "legacy_login": false,
//	  "log_backend": "slog",
//	  "log_level": "info"
//	}
//
// Empty JSON values leave the previous layer untouched.
package config
