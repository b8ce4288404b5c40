package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. GRIDPATH_SCENARIO_ROWS.
const EnvPrefix = "GRIDPATH"

type Config struct {
	Scenario ScenarioConfig `mapstructure:"scenario"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

type ScenarioConfig struct {
	Rows      int    `mapstructure:"rows"`
	Cols      int    `mapstructure:"cols"`
	Obstacles int    `mapstructure:"obstacles"`
	Seed      uint64 `mapstructure:"seed"` // 0 = seed from the runtime
}

type PlaybackConfig struct {
	FrameDelay time.Duration `mapstructure:"frame_delay"`
	Plain      bool          `mapstructure:"plain"` // text output instead of the terminal UI
}

type ServerConfig struct {
	Addr       string        `mapstructure:"addr"`
	GinMode    string        `mapstructure:"gin_mode"`
	SessionTTL time.Duration `mapstructure:"session_ttl"` // idle web sessions are dropped after this
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
	Level      string `mapstructure:"level"` // debug/info/warn/error
	Dev        bool   `mapstructure:"dev"`
}

var defaults = map[string]any{
	"scenario.rows":        10,
	"scenario.cols":        10,
	"scenario.obstacles":   30,
	"scenario.seed":        0,
	"playback.frame_delay": 500 * time.Millisecond,
	"playback.plain":       false,
	"server.addr":          ":8080",
	"server.gin_mode":      "release",
	"server.session_ttl":   10 * time.Minute,
	"log.file":             "",
	"log.max_size":         10,
	"log.max_backups":      3,
	"log.max_age":          7,
	"log.compress":         false,
	"log.level":            "info",
	"log.dev":              false,
}

// NewViper returns a viper instance with defaults and GRIDPATH_* environment
// lookups installed. Callers may bind command-line flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads envFile (if it exists) into the process environment, then the
// optional config file, and decodes the merged result.
func Load(v *viper.Viper, configPath, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}
	return decode(v)
}

// Watch re-reads the config file whenever it changes and passes the decoded
// result to onChange. Without a config file it does nothing.
func Watch(v *viper.Viper, onChange func(Config, error)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(fsnotify.Event) {
		onChange(decode(v))
	})
	v.WatchConfig()
}

func decode(v *viper.Viper) (Config, error) {
	var conf Config
	hook := viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())
	if err := v.Unmarshal(&conf, hook); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c Config) Validate() error {
	if c.Scenario.Rows <= 0 || c.Scenario.Cols <= 0 {
		return fmt.Errorf("scenario dimensions must be positive, got %dx%d", c.Scenario.Rows, c.Scenario.Cols)
	}
	if c.Scenario.Obstacles < 0 {
		return fmt.Errorf("scenario obstacles must not be negative, got %d", c.Scenario.Obstacles)
	}
	if c.Playback.FrameDelay < 0 {
		return fmt.Errorf("playback frame_delay must not be negative, got %s", c.Playback.FrameDelay)
	}
	if c.Server.SessionTTL < 0 {
		return fmt.Errorf("server session_ttl must not be negative, got %s", c.Server.SessionTTL)
	}
	return nil
}
