package apps

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/h2hsecure/tokenreport/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	AppDescription = `Debugging tool that reads /api/users and prints the current user's credentials. Here is the options:
	- report: Print access token and Open ID of the current user
	- snapshot save: Store the raw /api/users body for offline replay
	- snapshot export: Print a stored body as a base64 env line
	- snapshot list: Show stored snapshots`
)

// Options holds the persistent flags shared by all commands.
type Options struct {
	ConfigFile string
	BaseURL    string
	Cookie     string
	Token      string
	Verbose    bool
}

var opts Options

// httpClient is handed to the users API adapter; nil means resty's default.
var httpClient *http.Client

func BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&opts.ConfigFile, "config", domain.DefaultConfigPath, "config file")
	flags.StringVar(&opts.BaseURL, "base-url", "", "API base URL, overrides base_url")
	flags.StringVar(&opts.Cookie, "cookie", "", "session cookie as NAME=VALUE or VALUE")
	flags.StringVar(&opts.Token, "token", "", "bearer token sent with the request")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
}

// Setup configures the global logger before any command runs.
func Setup(cmd *cobra.Command, args []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return nil
}

// LoadConfig reads the config file and applies flag overrides.
func LoadConfig() (*domain.Config, error) {
	cfg := domain.LoadConfig(opts.ConfigFile)

	if !opts.Verbose && cfg.LogLevel != "" {
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zerolog.SetGlobalLevel(level)
	}

	return applyOverrides(cfg, opts)
}

func applyOverrides(cfg *domain.Config, o Options) (*domain.Config, error) {
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.Token != "" {
		cfg.Session.BearerToken = o.Token
	}
	if o.Cookie != "" {
		name, value, found := strings.Cut(o.Cookie, "=")
		switch {
		case !found:
			cfg.Session.CookieValue = o.Cookie
		case name == "":
			return nil, fmt.Errorf("cookie: empty name in %q", o.Cookie)
		default:
			cfg.Session.CookieName = name
			cfg.Session.CookieValue = value
		}
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is not configured")
	}

	return cfg, nil
}
