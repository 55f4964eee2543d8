package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dtex/neuron/internal/config"
)

var _ = Describe("Configuration", func() {
	It("should apply defaults", func() {
		cfg := config.NewConfigurationWithDefaults()

		Expect(cfg.Server.HTTPPort).To(Equal(8000))
		Expect(cfg.Scheduler.Concurrency).To(Equal(50))
		Expect(cfg.Cache.Driver).To(Equal(config.DriverRedis))
		Expect(cfg.Cache.Namespace).To(Equal("neuron"))
		Expect(cfg.Cache.Host).To(Equal("localhost"))
		Expect(cfg.Cache.Port).To(Equal(6379))
		Expect(cfg.Cache.PersistScripts).To(BeFalse())
		Expect(cfg.LogFormat).To(Equal("console"))
		Expect(cfg.Validate()).To(Succeed())
	})

	Describe("Load", func() {
		// Given a config file overriding some fields
		// When we load it
		// Then the file values should win and the rest keep their defaults
		It("should merge a config file over defaults", func() {
			// Arrange
			path := filepath.Join(GinkgoT().TempDir(), "neuron.yaml")
			Expect(os.WriteFile(path, []byte(`
scheduler:
  concurrency: 10
cache:
  enabled: true
  driver: duckdb
  path: /var/lib/neuron/cache.db
jobs:
  - name: sum
    concurrency: 2
    script: "function (a, b) { return a + b }"
`), 0o600)).To(Succeed())
			v := config.NewViper()
			v.SetConfigFile(path)
			Expect(v.ReadInConfig()).To(Succeed())

			// Act
			cfg, err := config.Load(v)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Scheduler.Concurrency).To(Equal(10))
			Expect(cfg.Cache.Enabled).To(BeTrue())
			Expect(cfg.Cache.Driver).To(Equal(config.DriverDuckDB))
			Expect(cfg.Cache.Namespace).To(Equal("neuron"))
			Expect(cfg.Jobs).To(HaveLen(1))
			Expect(cfg.Jobs[0].Name).To(Equal("sum"))
			Expect(cfg.Jobs[0].Concurrency).To(Equal(2))
		})

		It("should read NEURON_ environment variables", func() {
			GinkgoT().Setenv("NEURON_CACHE_HOST", "redis.internal")
			GinkgoT().Setenv("NEURON_CACHE_PORT", "6380")
			GinkgoT().Setenv("NEURON_SERVER_HTTP_PORT", "9000")

			cfg, err := config.Load(config.NewViper())

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Cache.Host).To(Equal("redis.internal"))
			Expect(cfg.Cache.Port).To(Equal(6380))
			Expect(cfg.Server.HTTPPort).To(Equal(9000))
		})
	})

	Describe("Validate", func() {
		var cfg *config.Configuration

		BeforeEach(func() {
			cfg = config.NewConfigurationWithDefaults()
		})

		It("should require a path for file backed drivers", func() {
			cfg.Cache.Enabled = true
			cfg.Cache.Driver = config.DriverBadger

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("cache.path")))
		})

		It("should reject unknown drivers", func() {
			cfg.Cache.Enabled = true
			cfg.Cache.Driver = "etcd"

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("unknown driver")))
		})

		It("should ignore the driver when the cache is disabled", func() {
			cfg.Cache.Driver = "etcd"

			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject incomplete or duplicate jobs", func() {
			cfg.Jobs = []config.Job{
				{Name: "a", Script: "function () {}"},
				{Name: "a", Script: "function () {}"},
				{Script: "function () {}"},
				{Name: "b"},
			}

			err := cfg.Validate()
			Expect(err).To(MatchError(ContainSubstring("duplicate name")))
			Expect(err).To(MatchError(ContainSubstring("jobs[2]: name is required")))
			Expect(err).To(MatchError(ContainSubstring("jobs[3]: script is required")))
		})

		It("should reject a non positive concurrency", func() {
			cfg.Scheduler.Concurrency = 0

			Expect(cfg.Validate()).To(HaveOccurred())
		})
	})

	Describe("Options", func() {
		It("should build sections from options on top of defaults", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults(
				config.WithCache(*config.NewCacheWithOptionsAndDefaults(
					config.WithEnabled(true),
					config.WithDriver(config.DriverBadger),
					config.WithPath("/var/lib/neuron"),
				)),
				config.WithJobs(config.Job{Name: "sum", Script: "function (a, b) { return a + b }"}),
				config.WithLogLevel("debug"),
			)

			Expect(cfg.Server.HTTPPort).To(Equal(8000))
			Expect(cfg.Cache.Driver).To(Equal(config.DriverBadger))
			Expect(cfg.Cache.Namespace).To(Equal("neuron"))
			Expect(cfg.Jobs).To(HaveLen(1))
			Expect(cfg.LogLevel).To(Equal("debug"))
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Describe("DebugMap", func() {
		It("should never expose the cache password", func() {
			cfg := config.NewConfigurationWithDefaults()
			cfg.Cache.Password = "s3cret"

			cacheMap := cfg.Cache.DebugMap()
			Expect(cacheMap).To(HaveKey("Host"))
			Expect(cacheMap).To(HaveKey("Driver"))
			Expect(cacheMap).NotTo(HaveKey("Password"))

			top := cfg.DebugMap()
			Expect(top).To(HaveKey("Server"))
			Expect(top).To(HaveKey("LogLevel"))
			Expect(top).NotTo(HaveKey("Cache"))
			Expect(top).NotTo(HaveKey("Jobs"))
		})
	})
})
