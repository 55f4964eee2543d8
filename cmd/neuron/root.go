package main

import (
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dtex/neuron/internal/config"
)

type globalOptions struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Configuration
}

func NewRootCommand() *cobra.Command {
	opts := &globalOptions{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:           "neuron",
		Short:         "Bounded-concurrency job scheduler with a durable cache",
		SilenceUsage:  true,
		SilenceErrors: false,
		// NEURON_ variables fill flags left unset before they reach viper
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE("neuron"),
			func(cmd *cobra.Command, _ []string) error {
				return opts.load(cmd.Flags())
			},
		),
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = zap.L().Sync()
		},
	}

	registerGlobalFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(
		newServeCommand(opts),
		newInspectCommand(opts),
		newPurgeCommand(opts),
	)
	return cmd
}

// flagKeys maps global flags to configuration keys.
var flagKeys = map[string]string{
	"log-format":    "log-format",
	"log-level":     "log-level",
	"cache-driver":  "cache.driver",
	"cache-path":    "cache.path",
	"cache-enabled": "cache.enabled",
}

func registerGlobalFlags(fs *pflag.FlagSet, opts *globalOptions) {
	fs.StringVarP(&opts.configFile, "config", "c", "", "path to a configuration file (yaml, json or toml)")
	fs.String("log-format", "console", "log format: console or json")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("cache-driver", "redis", "cache backend: redis, duckdb, badger or memory")
	fs.String("cache-path", "", "database path for the duckdb and badger drivers")
	fs.Bool("cache-enabled", false, "mirror jobs and workers into the cache")
}

func (o *globalOptions) bindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := o.v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func (o *globalOptions) load(fs *pflag.FlagSet) error {
	if err := o.bindFlags(fs); err != nil {
		return err
	}
	if o.configFile != "" {
		o.v.SetConfigFile(o.configFile)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", o.configFile, err)
		}
	}

	cfg, err := config.Load(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	zap.S().Named("config").Debugw("configuration loaded",
		"config", cfg.DebugMap(),
		"cache", cfg.Cache.DebugMap(),
		"jobs", len(cfg.Jobs),
	)
	return nil
}

func newLogger(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log-level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = level

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
