package config

const (
	StoreNeo4j  = "neo4j"
	StoreMemory = "memory"
)

// Config holds runtime settings for the GophSocial CLI.
//
// Endpoint, User, Password and DatabaseName describe the graph connection.
// Store picks the repository backend; StoreMemory keeps everything in
// process and is meant for demos. LegacyLogin enables the compatibility
// path for accounts imported without a password hash.
type Config struct {
	Endpoint     string
	User         string
	Password     string
	DatabaseName string
	Store        string
	LegacyLogin  bool
	LogBackend   string
	LogLevel     string
}

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.Endpoint = "neo4j://localhost:7687"
	c.User = "neo4j"
	c.Password = ""
	c.DatabaseName = "neo4j"
	c.Store = StoreNeo4j
	c.LegacyLogin = false
	c.LogBackend = "slog"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
