package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophsocial/internal/flagx"
)

// JsonConfig is the on-disk shape of the config file. LegacyLogin is a
// pointer so an absent key can be told apart from false.
type JsonConfig struct {
	Endpoint     string `json:"endpoint"`
	User         string `json:"user"`
	Password     string `json:"password"`
	DatabaseName string `json:"database"`
	Store        string `json:"store"`
	LegacyLogin  *bool  `json:"legacy_login"`
	LogBackend   string `json:"log_backend"`
	LogLevel     string `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config. It is a no-op
// when no file is given and panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIfNotEmpty(&cfg.Endpoint, jc.Endpoint)
	setIfNotEmpty(&cfg.User, jc.User)
	setIfNotEmpty(&cfg.Password, jc.Password)
	setIfNotEmpty(&cfg.DatabaseName, jc.DatabaseName)
	setIfNotEmpty(&cfg.Store, jc.Store)
	setIfNotEmpty(&cfg.LogBackend, jc.LogBackend)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
	if jc.LegacyLogin != nil {
		cfg.LegacyLogin = *jc.LegacyLogin
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
