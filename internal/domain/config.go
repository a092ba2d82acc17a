package domain

import (
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "/etc/tokenreport.yaml"

// Config is base config in /etc/tokenreport.yaml
type Config struct {
	BaseURL   string            `yaml:"base_url"`
	UsersPath string            `yaml:"users_path"`
	Session   SessionConfig     `yaml:"session"`
	Headers   map[string]string `yaml:"headers"`
	DBPath    string            `yaml:"db_path"`
	LogLevel  string            `yaml:"log_level"`
	DebugHTTP bool              `yaml:"debug_http"`
}

// SessionConfig carries the credential a browser would have sent
// implicitly with the page's cookies.
type SessionConfig struct {
	CookieName  string `yaml:"cookie_name"`
	CookieValue string `yaml:"cookie_value"`
	BearerToken string `yaml:"bearer_token"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:5000",
		UsersPath: "/api/users",
		Session: SessionConfig{
			CookieName: "session",
		},
		Headers:  map[string]string{},
		DBPath:   "/var/lib/tokenreport/snapshots.db",
		LogLevel: "info",
	}
}

// LoadConfig reads path on top of the defaults. A missing or broken file is
// not fatal: the tool falls back to defaults and flags can fill the gaps.
func LoadConfig(path string) *Config {
	cfg := DefaultConfig()

	cfgfile, cfgErr := os.ReadFile(path)
	if cfgErr != nil {
		log.Warn().Msgf("open config file, using defaults: %s", cfgErr.Error())
		return &cfg
	}

	loaded := cfg
	if cfgErr = yaml.Unmarshal(cfgfile, &loaded); cfgErr != nil {
		log.Warn().Msgf("parse config file, using defaults: %s", cfgErr.Error())
		return &cfg
	}

	if loaded.UsersPath == "" {
		loaded.UsersPath = cfg.UsersPath
	}
	if loaded.Session.CookieName == "" {
		loaded.Session.CookieName = cfg.Session.CookieName
	}
	if loaded.Headers == nil {
		loaded.Headers = map[string]string{}
	}

	return &loaded
}
