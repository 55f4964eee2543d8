package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverRedis  = "redis"
	DriverDuckDB = "duckdb"
	DriverBadger = "badger"
	DriverMemory = "memory"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Scheduler Cache

type Configuration struct {
	Server    Server    `mapstructure:"server" debugmap:"visible"`
	Scheduler Scheduler `mapstructure:"scheduler" debugmap:"visible"`
	Cache     Cache     `mapstructure:"cache" debugmap:"hidden"`
	Jobs      []Job     `mapstructure:"jobs" debugmap:"hidden"`
	LogFormat string    `mapstructure:"log-format" default:"console" debugmap:"visible"`
	LogLevel  string    `mapstructure:"log-level" default:"info" debugmap:"visible"`
}

type Server struct {
	HTTPPort   int    `mapstructure:"http-port" default:"8000" debugmap:"visible"`
	ServerMode string `mapstructure:"server-mode" default:"dev" debugmap:"visible"`
}

type Scheduler struct {
	Concurrency int  `mapstructure:"concurrency" default:"50" debugmap:"visible"`
	EmitErrors  bool `mapstructure:"emit-errors" default:"false" debugmap:"visible"`
}

// Cache is logged on its own through Cache.DebugMap, which leaves out the
// password.
type Cache struct {
	Enabled        bool   `mapstructure:"enabled" default:"false" debugmap:"visible"`
	Driver         string `mapstructure:"driver" default:"redis" debugmap:"visible"`
	Namespace      string `mapstructure:"namespace" default:"neuron" debugmap:"visible"`
	Host           string `mapstructure:"host" default:"localhost" debugmap:"visible"`
	Port           int    `mapstructure:"port" default:"6379" debugmap:"visible"`
	Password       string `mapstructure:"password" debugmap:"hidden"`
	DB             int    `mapstructure:"db" default:"0" debugmap:"visible"`
	Path           string `mapstructure:"path" debugmap:"visible"`
	PersistScripts bool   `mapstructure:"persist-scripts" default:"false" debugmap:"visible"`
}

// Job declares a job whose work is a JavaScript function.
type Job struct {
	Name        string `mapstructure:"name"`
	Concurrency int    `mapstructure:"concurrency"`
	Script      string `mapstructure:"script"`
}

// NewConfigurationWithDefaults returns a configuration with every default
// applied.
func NewConfigurationWithDefaults() *Configuration {
	return NewConfigurationWithOptionsAndDefaults()
}

// Load reads the configuration from v on top of the defaults. v carries
// whatever sources the caller bound: a config file, NEURON_ environment
// variables and command line flags.
func Load(v *viper.Viper) (*Configuration, error) {
	cfg := NewConfigurationWithDefaults()
	bindEnv(v, reflect.TypeOf(*cfg), "")
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewViper returns a viper instance reading NEURON_ prefixed variables, with
// dashes and dots in keys mapped to underscores (cache.host → NEURON_CACHE_HOST).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("neuron")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func (c *Configuration) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http-port: %d is not a valid port", c.Server.HTTPPort))
	}
	if c.Scheduler.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.concurrency must be positive, got %d", c.Scheduler.Concurrency))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log-format: unknown format %q", c.LogFormat))
	}

	if c.Cache.Enabled {
		switch c.Cache.Driver {
		case DriverRedis, DriverMemory:
		case DriverDuckDB, DriverBadger:
			if c.Cache.Path == "" {
				errs = append(errs, fmt.Errorf("cache.path is required by the %s driver", c.Cache.Driver))
			}
		default:
			errs = append(errs, fmt.Errorf("cache.driver: unknown driver %q", c.Cache.Driver))
		}
	}

	seen := make(map[string]bool, len(c.Jobs))
	for i, j := range c.Jobs {
		switch {
		case j.Name == "":
			errs = append(errs, fmt.Errorf("jobs[%d]: name is required", i))
		case seen[j.Name]:
			errs = append(errs, fmt.Errorf("jobs[%d]: duplicate name %q", i, j.Name))
		}
		seen[j.Name] = true
		if j.Script == "" {
			errs = append(errs, fmt.Errorf("jobs[%d]: script is required", i))
		}
		if j.Concurrency < 0 {
			errs = append(errs, fmt.Errorf("jobs[%d]: concurrency must not be negative", i))
		}
	}

	return errors.Join(errs...)
}

// bindEnv registers every leaf key of t so that Unmarshal sees environment
// variables for keys absent from the config file.
func bindEnv(v *viper.Viper, t reflect.Type, prefix string) {
	for i := range t.NumField() {
		f := t.Field(i)
		key := f.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if f.Type.Kind() == reflect.Struct {
			bindEnv(v, f.Type, key)
			continue
		}
		if f.Type.Kind() == reflect.Slice {
			continue
		}
		_ = v.BindEnv(key)
	}
}
