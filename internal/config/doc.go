// Package config defines the configuration structure for neuron.
//
// Configuration is organized into logical sections (Server, Scheduler, Cache,
// Jobs). Defaults are declared with `default` struct tags and applied by
// creasty/defaults; values are then decoded from viper, which merges a config
// file, NEURON_ environment variables and command line flags.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Scheduler      - Manager defaults
//	├── Cache          - Durable mirror
//	├── Jobs           - Script jobs registered at startup
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	│ ServerMode       │ "dev"   │ "prod" runs gin in release mode        │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Scheduler Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ Concurrency      │ 50      │ Limit for jobs without their own       │
//	│ EmitErrors       │ false   │ Deliver cache failures as events       │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Cache Configuration
//
//	┌──────────────────┬─────────────┬────────────────────────────────────┐
//	│ Field            │ Default     │ Description                        │
//	├──────────────────┼─────────────┼────────────────────────────────────┤
//	│ Enabled          │ false       │ Mirror jobs and workers            │
//	│ Driver           │ "redis"     │ redis, duckdb, badger or memory    │
//	│ Namespace        │ "neuron"    │ Key prefix                         │
//	│ Host             │ "localhost" │ Redis host                         │
//	│ Port             │ 6379        │ Redis port                         │
//	│ Password         │ ""          │ Redis password                     │
//	│ DB               │ 0           │ Redis database index               │
//	│ Path             │ ""          │ File (duckdb) or directory (badger)│
//	│ PersistScripts   │ false       │ Store script source with jobs      │
//	└──────────────────┴─────────────┴────────────────────────────────────┘
//
// # Jobs
//
// Each entry registers a job whose work is a JavaScript function:
//
//	jobs:
//	  - name: sum
//	    concurrency: 4
//	    script: "function (a, b) { return a + b }"
//
// # Usage Example
//
//	v := config.NewViper()
//	v.SetConfigFile("neuron.yaml")
//	_ = v.ReadInConfig()
//
//	cfg, err := config.Load(v)
//
// # Code Generation
//
// Option helpers and DebugMap come from optgen:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Scheduler Cache
//
// Generated helpers include NewConfigurationWithOptionsAndDefaults, one
// WithX option per field and DebugMap(). Fields tagged `debugmap:"hidden"`
// never reach DebugMap: the cache password, and on Configuration the whole
// Cache section and the job scripts. Log the cache through Cache.DebugMap:
//
//	log.Debugw("configuration loaded", "config", cfg.DebugMap(), "cache", cfg.Cache.DebugMap())
package config
