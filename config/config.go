package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the scheduling assistant.
type Config struct {
	// General settings
	ApplicationName string `env:"APPLICATION_NAME, default=schedule-bot" description:"The name of the application"`
	Environment     string `env:"ENVIRONMENT, default=production" description:"The environment"`
	EnableTelemetry bool   `env:"ENABLE_TELEMETRY, default=false" description:"Enable telemetry"`

	// Messaging platform settings
	Bot *BotConfig `env:", prefix=BOT_" description:"Messaging connector configuration"`

	// Google OAuth and Calendar settings
	Google *GoogleConfig `env:", prefix=GOOGLE_" description:"Google OAuth configuration"`

	// Dialog settings
	Dialog *DialogConfig `env:", prefix=DIALOG_" description:"Dialog configuration"`

	// Server settings
	Server *ServerConfig `env:", prefix=SERVER_" description:"Server configuration"`
}

// BotConfig configures the messaging-platform connector.
type BotConfig struct {
	AppID       string `env:"APP_ID" type:"secret" description:"Messaging platform app ID"`
	AppPassword string `env:"APP_PASSWORD" type:"secret" description:"Messaging platform app password"`
	TokenURL    string `env:"TOKEN_URL, default=https://login.microsoftonline.com/botframework.com/oauth2/v2.0/token" description:"Connector token endpoint"`
	TokenScope  string `env:"TOKEN_SCOPE, default=https://api.botframework.com/.default" description:"Connector token scope"`
	PromptsFile string `env:"PROMPTS_FILE" description:"Optional YAML file overriding the built-in dialog prompts"`
}

// GoogleConfig configures the OAuth consent flow and the calendar client.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID" type:"secret" description:"Google OAuth client ID"`
	ClientSecret string `env:"CLIENT_SECRET" type:"secret" description:"Google OAuth client secret"`
	RedirectURL  string `env:"REDIRECT_URL, default=http://localhost:3978/oauthcallback" description:"OAuth redirect URL"`
	Timezone     string `env:"TIMEZONE, default=America/Los_Angeles" description:"Default timezone for parsed meeting times"`
	CalendarID   string `env:"CALENDAR_ID, default=primary" description:"Calendar the events are created on"`
}

// DialogConfig controls dialog/session lifetimes.
type DialogConfig struct {
	TTL           time.Duration `env:"TTL, default=15m" description:"Idle time before a suspended dialog expires"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL, default=1m" description:"How often expired sessions are collected"`
}

// ServerConfig holds the HTTP server settings. The original service listened
// on 3978, the Bot Framework emulator default.
type ServerConfig struct {
	Host         string        `env:"HOST, default=0.0.0.0" description:"Server host"`
	Port         string        `env:"PORT, default=3978" description:"Server port"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=30s" description:"Read timeout"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=30s" description:"Write timeout"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT, default=120s" description:"Idle timeout"`
	TLSCertPath  string        `env:"TLS_CERT_PATH" description:"TLS certificate path"`
	TLSKeyPath   string        `env:"TLS_KEY_PATH" description:"TLS key path"`
}

// OAuthConfig builds the oauth2 configuration for the Google consent flow.
// The calendar scope covers event creation; openid/email/profile let the bot
// greet the user by name after sign-in.
func (cfg *Config) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Endpoint:     googleoauth.Endpoint,
		Scopes: []string{
			calendar.CalendarScope,
			"openid", "email", "profile",
		},
	}
}

// Location resolves the configured timezone.
func (cfg *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Google.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid GOOGLE_TIMEZONE %q: %w", cfg.Google.Timezone, err)
	}
	return loc, nil
}

// Prompts returns the dialog prompt catalog, applying overrides from the
// optional YAML file when one is configured.
func (cfg *Config) Prompts() (map[string]string, error) {
	prompts := map[string]string{}
	if cfg.Bot.PromptsFile == "" {
		return prompts, nil
	}
	data, err := os.ReadFile(cfg.Bot.PromptsFile)
	if err != nil {
		return nil, fmt.Errorf("reading prompts file: %w", err)
	}
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("parsing prompts file: %w", err)
	}
	return prompts, nil
}

// Load configuration
func (cfg *Config) Load(lookuper envconfig.Lookuper) (Config, error) {
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, err
	}

	// PORT alone is honored too, matching the original deployment contract.
	if port, ok := lookuper.Lookup("PORT"); ok && port != "" {
		cfg.Server.Port = port
	}

	return *cfg, nil
}
