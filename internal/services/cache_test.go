package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dtex/neuron/internal/services"
	"github.com/dtex/neuron/pkg/cache"
	"github.com/dtex/neuron/pkg/serializer"
)

var _ = Describe("CacheService", func() {
	var (
		ctx context.Context
		c   *cache.Cache
		srv *services.CacheService
	)

	BeforeEach(func() {
		ctx = context.Background()
		c = cache.New(cache.NewMemoryBackend(), cache.Options{})
		srv = services.NewCacheService(c)

		Expect(c.AddJob(ctx, "zeta", serializer.Bag{"concurrency": 1})).To(Succeed())
		Expect(c.AddJob(ctx, "alpha", serializer.Bag{"concurrency": 3, "owner": "ops"})).To(Succeed())
		Expect(c.AddWorker(ctx, "alpha", "w1", []any{"x"})).To(Succeed())
		Expect(c.AddWorker(ctx, "alpha", "w2", nil)).To(Succeed())
	})

	It("should list cached jobs sorted by name", func() {
		entries, err := srv.Snapshot(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Name).To(Equal("alpha"))
		Expect(entries[0].Properties).To(HaveKeyWithValue("owner", "ops"))
		Expect(entries[0].Workers).To(HaveLen(2))
		Expect(entries[0].Workers[0].ID).To(Equal("w1"))
		Expect(entries[0].Workers[0].Args).To(Equal([]any{"x"}))
		Expect(entries[1].Name).To(Equal("zeta"))
		Expect(entries[1].Workers).To(BeEmpty())
	})

	It("should purge a job with its workers", func() {
		Expect(srv.Purge(ctx, "alpha")).To(Succeed())

		entries, err := srv.Snapshot(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Name).To(Equal("zeta"))

		members, err := c.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(members.Workers["alpha"]).To(BeEmpty())
	})
})
