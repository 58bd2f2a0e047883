package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophsocial/internal/flagx"
)

// parseFlags populates Config from command-line flags. os.Args is filtered
// with flagx.FilterArgs first so -c/-config and unrelated arguments do not
// reach this FlagSet. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-u", "-p", "-d", "-s", "-log-backend", "-log-level"},
		"-l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Endpoint, "a", cfg.Endpoint, "graph endpoint URI")
	fs.StringVar(&cfg.User, "u", cfg.User, "graph user")
	fs.StringVar(&cfg.Password, "p", cfg.Password, "graph password")
	fs.StringVar(&cfg.DatabaseName, "d", cfg.DatabaseName, "database name")
	fs.StringVar(&cfg.Store, "s", cfg.Store, "storage backend (neo4j|memory)")
	fs.BoolVar(&cfg.LegacyLogin, "l", cfg.LegacyLogin, "allow passwordless login for legacy accounts")
	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "logger backend (slog|zap)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
