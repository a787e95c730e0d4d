// Package config provides configuration loading and management for tasklist.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/metalagman/tasklist/internal/db"
	"github.com/metalagman/tasklist/internal/jsonstore"
	"github.com/metalagman/tasklist/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

const (
	// DefaultPath is the config file used when --config is not given.
	DefaultPath = ".tasklist/config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. TASKLIST_STORE_DRIVER.
	EnvPrefix = "TASKLIST"
)

// Config is the root configuration.
type Config struct {
	Store   StoreConfig   `json:"store"   mapstructure:"store"`
	Display DisplayConfig `json:"display" mapstructure:"display"`
	Due     DueConfig     `json:"due"     mapstructure:"due"`
}

// StoreConfig selects where tasks are persisted.
type StoreConfig struct {
	Driver string `json:"driver"         mapstructure:"driver"`
	Path   string `json:"path,omitempty" mapstructure:"path"`
	Lock   bool   `json:"lock"           mapstructure:"lock"`
}

// DisplayConfig controls table rendering.
type DisplayConfig struct {
	Color bool `json:"color" mapstructure:"color"`
	Width int  `json:"width" mapstructure:"width"`
}

// DueConfig controls due status computation.
type DueConfig struct {
	Timezone *time.Location `json:"-" mapstructure:"timezone"`
}

// Defaults returns the default settings as a nested map.
func Defaults() map[string]any {
	return map[string]any{
		"store": map[string]any{
			"driver": DriverJSON,
			"path":   "",
			"lock":   true,
		},
		"display": map[string]any{
			"color": true,
			"width": render.DefaultWidth,
		},
		"due": map[string]any{
			"timezone": "UTC",
		},
	}
}

// Load resolves configuration from defaults, the optional file at path and
// TASKLIST_* environment variables, in increasing precedence.
func Load(v *viper.Viper, path string) (Config, error) {
	setDefaults(v, "", Defaults())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		settings, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if settings != nil {
			if err := v.MergeConfigMap(settings); err != nil {
				return Config{}, fmt.Errorf("merge config: %w", err)
			}
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		locationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	log.Debug().
		Str("driver", cfg.Store.Driver).
		Str("path", cfg.Store.Path).
		Str("timezone", cfg.Due.Timezone.String()).
		Msg("config resolved")
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverJSON:
		if c.Store.Path == "" {
			c.Store.Path = jsonstore.DefaultPath
		}
	case DriverSQLite:
		if c.Store.Path == "" {
			c.Store.Path = db.DefaultPath
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q", DriverJSON, DriverSQLite, c.Store.Driver)
	}
	if c.Display.Width < 8 {
		return fmt.Errorf("display.width must be >= 8, got %d", c.Display.Width)
	}
	if c.Due.Timezone == nil {
		c.Due.Timezone = time.UTC
	}
	return nil
}

// readFile reads and validates the YAML config file. A missing file yields
// nil settings.
func readFile(path string) (map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", path).Msg("config file not found, using defaults")
			return nil, nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}
	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType("yaml")
	if err := fv.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	settings := fv.AllSettings()
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func setDefaults(v *viper.Viper, prefix string, values map[string]any) {
	for key, value := range values {
		if nested, ok := value.(map[string]any); ok {
			setDefaults(v, prefix+key+".", nested)
			continue
		}
		v.SetDefault(prefix+key, value)
	}
}

var locationType = reflect.TypeOf((*time.Location)(nil))

func locationHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != locationType || from.Kind() != reflect.String {
			return data, nil
		}
		name := strings.TrimSpace(data.(string))
		if name == "" {
			return time.UTC, nil
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("due.timezone: %w", err)
		}
		return loc, nil
	}
}
