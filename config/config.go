// Package config loads Mythoscribe settings from the environment and an
// optional config.yaml using viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/mythoscribe/mythoscribe/fs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. MYTHOSCRIBE_BASE_URL.
const EnvPrefix = "MYTHOSCRIBE"

// Defaults.
const (
	DefaultBaseURL       = "http://localhost:5000"
	DefaultPlayer        = "mpv"
	DefaultAlertDuration = 5 * time.Second
	DefaultLogLevel      = "info"
	LogFileName          = "mythoscribe.log"
)

// PlayerDisabled as the player setting turns media playback off.
const PlayerDisabled = "none"

// Config holds the resolved client settings.
type Config struct {
	BaseURL       string
	ConfigDir     string
	DownloadDir   string
	LogFile       string
	LogLevel      logrus.Level
	Player        string // media player binary, PlayerDisabled for none
	AlertDuration time.Duration
}

// PlayerEnabled reports whether media should be opened in a player.
func (c *Config) PlayerEnabled() bool {
	return c.Player != "" && c.Player != PlayerDisabled
}

// Load reads settings from MYTHOSCRIBE_* environment variables and
// config.yaml in the config directory. A missing config file is not an
// error; environment variables take precedence over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("config_dir", fs.DefaultConfigDir())
	v.SetDefault("download_dir", fs.DefaultDownloadDir())
	v.SetDefault("log_file", filepath.Join(fs.DefaultStateDir(), LogFileName))
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("player", DefaultPlayer)
	v.SetDefault("alert_duration", DefaultAlertDuration)

	configDir := v.GetString("config_dir")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	level, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	cfg := &Config{
		BaseURL:       v.GetString("base_url"),
		ConfigDir:     configDir,
		DownloadDir:   v.GetString("download_dir"),
		LogFile:       v.GetString("log_file"),
		LogLevel:      level,
		Player:        v.GetString("player"),
		AlertDuration: v.GetDuration("alert_duration"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url: %q is not an http(s) URL", c.BaseURL)
	}
	if c.AlertDuration <= 0 {
		return fmt.Errorf("alert_duration: must be positive, got %s", c.AlertDuration)
	}
	if c.DownloadDir == "" {
		return errors.New("download_dir: must not be empty")
	}
	return nil
}
