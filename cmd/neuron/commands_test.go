package main

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dtex/neuron/internal/config"
	"github.com/dtex/neuron/pkg/cache"
	"github.com/dtex/neuron/pkg/serializer"
)

var _ = Describe("CLI", func() {
	var (
		ctx context.Context
		dir string
	)

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"--cache-driver", "badger", "--cache-path", dir, "--log-level", "error"}, args...))
		err := cmd.ExecuteContext(ctx)
		return out.String(), err
	}

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()

		// Given a badger cache holding one job with two workers
		backend, err := cache.NewBadgerBackend(dir)
		Expect(err).NotTo(HaveOccurred())
		c := cache.New(backend, cache.Options{})
		Expect(c.AddJob(ctx, "resize", serializer.Bag{"concurrency": 2, "bucket": "images"})).To(Succeed())
		Expect(c.AddWorker(ctx, "resize", "abc123", []any{"a.png", 640})).To(Succeed())
		Expect(c.AddWorker(ctx, "resize", "def456", []any{"b.png"})).To(Succeed())
		Expect(c.Close()).To(Succeed())
	})

	It("should print the cache snapshot", func() {
		// When
		out, err := run("inspect")

		// Then
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("namespace neuron: 1 job(s)"))
		Expect(out).To(ContainSubstring("resize (2 worker(s))"))
		Expect(out).To(ContainSubstring(`bucket = "images"`))
		Expect(out).To(ContainSubstring(`abc123 ["a.png",640]`))
	})

	It("should purge a job", func() {
		// When
		out, err := run("purge", "resize")

		// Then
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("purged resize"))

		out, err = run("inspect")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("0 job(s)"))
	})

	It("should require a job name to purge", func() {
		_, err := run("purge")

		Expect(err).To(HaveOccurred())
	})

	It("should take global flags from NEURON_ variables", func() {
		// Given the cache location only in the environment
		GinkgoT().Setenv("NEURON_CACHE_DRIVER", "badger")
		GinkgoT().Setenv("NEURON_CACHE_PATH", dir)

		var out bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"--log-level", "error", "inspect"})

		// When
		err := cmd.ExecuteContext(ctx)

		// Then
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("resize (2 worker(s))"))
	})

	It("should reject an invalid configuration", func() {
		var out bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"--log-format", "xml", "inspect"})

		Expect(cmd.ExecuteContext(ctx)).To(HaveOccurred())
	})
})

var _ = Describe("registerJobs", func() {
	It("should compile configured scripts into jobs", func() {
		cfg := config.NewConfigurationWithDefaults()
		manager, err := newManager(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		defer manager.Close()

		err = registerJobs(manager, []config.Job{
			{Name: "add", Concurrency: 2, Script: "function (a, b) { return a + b }"},
		})

		Expect(err).NotTo(HaveOccurred())
		job, err := manager.Job("add")
		Expect(err).NotTo(HaveOccurred())
		Expect(job.Concurrency()).To(Equal(2))
	})

	It("should fail on a script that does not compile", func() {
		cfg := config.NewConfigurationWithDefaults()
		manager, err := newManager(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		defer manager.Close()

		err = registerJobs(manager, []config.Job{{Name: "bad", Script: "function ("}})

		Expect(err).To(HaveOccurred())
	})
})
