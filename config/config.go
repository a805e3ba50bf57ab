package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level configuration of the vtree tools.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" yaml:"scheduler"`
	Render    RenderConfig    `mapstructure:"render" yaml:"render"`
}

// LoggerConfig configures the global logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names used for each log level in console
// format.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// ServerConfig configures the prerendering HTTP server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// CacheConfig configures the persisted page cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// SchedulerConfig configures the frame loop.
type SchedulerConfig struct {
	FrameInterval time.Duration `mapstructure:"frame_interval" yaml:"frame_interval"`
}

// RenderConfig configures document rendering.
type RenderConfig struct {
	Doctype       bool   `mapstructure:"doctype" yaml:"doctype"`
	MountSelector string `mapstructure:"mount_selector" yaml:"mount_selector"`
}

// SetDefaults registers the default value of every setting.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "vtree")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Server --
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")

	// -- Cache --
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "vtree-pages.db")

	// -- Scheduler --
	v.SetDefault("scheduler.frame_interval", "16ms")

	// -- Render --
	v.SetDefault("render.doctype", true)
	v.SetDefault("render.mount_selector", "body")
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration made of default values only.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is a required configuration field")
	}
	if c.Scheduler.FrameInterval <= 0 {
		return fmt.Errorf("scheduler.frame_interval must be positive")
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required when the cache is enabled")
	}
	if c.Render.MountSelector == "" {
		return fmt.Errorf("render.mount_selector is a required configuration field")
	}
	return nil
}
