package cache_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dtex/neuron/pkg/cache"
)

func behavesLikeABackend(open func() cache.Backend) {
	var (
		ctx     context.Context
		backend cache.Backend
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = open()
		DeferCleanup(func() {
			Expect(backend.Close()).To(Succeed())
		})
	})

	It("should answer ping", func() {
		Expect(backend.Ping(ctx)).To(Succeed())
	})

	It("should store and overwrite values", func() {
		_, found, err := backend.Get(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())

		Expect(backend.Set(ctx, "k", "one")).To(Succeed())
		Expect(backend.Set(ctx, "k", "two")).To(Succeed())

		v, found, err := backend.Get(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(v).To(Equal("two"))
	})

	It("should keep set members unique", func() {
		Expect(backend.SAdd(ctx, "s", "a", "b")).To(Succeed())
		Expect(backend.SAdd(ctx, "s", "b", "c")).To(Succeed())

		members, err := backend.SMembers(ctx, "s")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(ConsistOf("a", "b", "c"))
	})

	It("should remove set members", func() {
		Expect(backend.SAdd(ctx, "s", "a", "b", "c")).To(Succeed())
		Expect(backend.SRem(ctx, "s", "b", "missing")).To(Succeed())

		members, err := backend.SMembers(ctx, "s")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(ConsistOf("a", "c"))
	})

	It("should delete values and whole sets", func() {
		Expect(backend.Set(ctx, "k", "v")).To(Succeed())
		Expect(backend.SAdd(ctx, "s", "a")).To(Succeed())
		Expect(backend.SAdd(ctx, "s2", "z")).To(Succeed())

		Expect(backend.Del(ctx, "k", "s", "absent")).To(Succeed())

		_, found, err := backend.Get(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
		members, err := backend.SMembers(ctx, "s")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(BeEmpty())
		members, err = backend.SMembers(ctx, "s2")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(ConsistOf("z"))
	})

	It("should not confuse sets sharing a prefix", func() {
		Expect(backend.SAdd(ctx, "workers:t", "1")).To(Succeed())
		Expect(backend.SAdd(ctx, "workers:t:1", "x")).To(Succeed())

		members, err := backend.SMembers(ctx, "workers:t")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(ConsistOf("1"))
	})
}

var _ = Describe("MemoryBackend", func() {
	behavesLikeABackend(func() cache.Backend {
		return cache.NewMemoryBackend()
	})

	It("should enumerate members in insertion order", func() {
		ctx := context.Background()
		b := cache.NewMemoryBackend()
		Expect(b.SAdd(ctx, "s", "c", "a", "b")).To(Succeed())

		members, err := b.SMembers(ctx, "s")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(Equal([]string{"c", "a", "b"}))
	})
})

var _ = Describe("BadgerBackend", func() {
	Context("on disk", func() {
		behavesLikeABackend(func() cache.Backend {
			b, err := cache.NewBadgerBackend(GinkgoT().TempDir())
			Expect(err).NotTo(HaveOccurred())
			return b
		})
	})

	Context("in memory", func() {
		behavesLikeABackend(func() cache.Backend {
			b, err := cache.NewBadgerBackend("")
			Expect(err).NotTo(HaveOccurred())
			return b
		})
	})

	It("should keep data across reopen", func() {
		ctx := context.Background()
		dir := GinkgoT().TempDir()

		b, err := cache.NewBadgerBackend(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Set(ctx, "k", "v")).To(Succeed())
		Expect(b.SAdd(ctx, "s", "m")).To(Succeed())
		Expect(b.Close()).To(Succeed())

		b, err = cache.NewBadgerBackend(dir)
		Expect(err).NotTo(HaveOccurred())
		defer b.Close()

		v, found, err := b.Get(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(v).To(Equal("v"))
		members, err := b.SMembers(ctx, "s")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(ConsistOf("m"))
	})
})
