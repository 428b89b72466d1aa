package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. LUNAR_ACCOUNTS_STORE_PATH.
const EnvPrefix = "LUNAR_ACCOUNTS"

// Config represents the user configuration for lunar-accounts.
type Config struct {
	Store   StoreConfig   `mapstructure:"store" yaml:"store" json:"store"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
	Menu    MenuConfig    `mapstructure:"menu" yaml:"menu" json:"menu"`
}

// StoreConfig locates the launcher accounts file.
type StoreConfig struct {
	Path   string `mapstructure:"path" yaml:"path" json:"path"`
	Backup bool   `mapstructure:"backup" yaml:"backup" json:"backup"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// MenuConfig holds interactive menu configuration.
type MenuConfig struct {
	ClearScreen bool `mapstructure:"clear_screen" yaml:"clear_screen" json:"clear_screen"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path:   DefaultStorePath,
			Backup: false,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Menu: MenuConfig{
			ClearScreen: true,
		},
	}
}

// SetDefaults registers the DefaultConfig values on v so that every key
// can be overridden from the environment.
func SetDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("store.backup", def.Store.Backup)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("menu.clear_screen", def.Menu.ClearScreen)
}

// ConfigureViper points v at the config file and the environment.
// An empty cfgFile selects config.yaml in the configuration directory.
func ConfigureViper(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		configDir, err := GetConfigDir()
		if err != nil {
			return fmt.Errorf("get config dir: %w", err)
		}
		v.AddConfigPath(configDir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	return nil
}

// LoadConfig reads the configuration known to v. When no config file is
// found in the search path the defaults apply; an explicitly named file
// must exist.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		slog.Debug("using config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	storePath, err := ExpandHome(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	cfg.Store.Path = storePath

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig validates the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if strings.TrimSpace(cfg.Store.Path) == "" {
		return fmt.Errorf("store path cannot be empty")
	}

	if _, err := ParseLogLevel(cfg.Logging.Level); err != nil {
		return err
	}

	return nil
}

// ParseLogLevel maps a configured level name to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", level)
	}
}

type configKey struct{}

// ContextWithConfig returns a copy of ctx carrying cfg.
func ContextWithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the Config stored by ContextWithConfig, or the
// defaults with the store path expanded when ctx carries none.
func ConfigFromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}

	cfg := DefaultConfig()
	if path, err := ExpandHome(cfg.Store.Path); err == nil {
		cfg.Store.Path = path
	}
	return cfg
}
