package serializer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dtex/neuron/pkg/serializer"
)

var _ = Describe("Registry", func() {
	It("should resolve names both ways", func() {
		reg := serializer.NewRegistry()
		reg.MustRegister("square", square)

		fn, ok := reg.Lookup("square")
		Expect(ok).To(BeTrue())
		Expect(fn.(func(float64) float64)(4)).To(Equal(16.0))

		name, ok := reg.NameOf(square)
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("square"))
	})

	It("should reject duplicates and non functions", func() {
		reg := serializer.NewRegistry()
		Expect(reg.Register("add", add)).To(Succeed())

		Expect(reg.Register("add", square)).To(HaveOccurred())
		Expect(reg.Register("n", 42)).To(HaveOccurred())
		Expect(reg.Register("", add)).To(HaveOccurred())
	})

	It("should tell apart closures built by the same literal", func() {
		reg := serializer.NewRegistry()
		fns := map[string]func() string{}
		for _, name := range []string{"first", "second"} {
			fns[name] = func() string { return name }
			Expect(reg.Register(name, fns[name])).To(Succeed())
		}

		for _, name := range []string{"first", "second"} {
			got, ok := reg.NameOf(fns[name])
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(name))
		}
		_, ok := reg.NameOf(func() string { return "first" })
		Expect(ok).To(BeFalse())
	})

	It("should refuse one function under two names", func() {
		reg := serializer.NewRegistry()
		Expect(reg.Register("square", square)).To(Succeed())

		Expect(reg.Register("alias", square)).To(MatchError(ContainSubstring(`already registered as "square"`)))
		Expect(reg.Names()).To(Equal([]string{"square"}))
	})

	It("should tolerate a nil registry on lookups", func() {
		var reg *serializer.Registry

		_, ok := reg.Lookup("x")
		Expect(ok).To(BeFalse())
		_, ok = reg.NameOf(add)
		Expect(ok).To(BeFalse())
		Expect(reg.Names()).To(BeEmpty())
	})
})
