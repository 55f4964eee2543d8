package serializer_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dtex/neuron/pkg/serializer"
)

var _ = Describe("Script", func() {
	It("should call the compiled function", func() {
		script, err := serializer.Compile("function (a, b) { return a + b }")
		Expect(err).NotTo(HaveOccurred())

		res, err := script.Call(1, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(BeNumerically("==", 3))
	})

	It("should return nil for undefined results", func() {
		script, err := serializer.Compile("function () {}")
		Expect(err).NotTo(HaveOccurred())

		res, err := script.Call()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(BeNil())
	})

	It("should report exceptions thrown by the function", func() {
		script, err := serializer.Compile("function () { throw new Error('nope') }")
		Expect(err).NotTo(HaveOccurred())

		_, err = script.Call()
		Expect(err).To(MatchError(ContainSubstring("nope")))
	})

	It("should reject source that is not a function", func() {
		_, err := serializer.Compile("42")
		Expect(err).To(HaveOccurred())

		_, err = serializer.Compile("function (")
		Expect(err).To(HaveOccurred())
	})

	It("should be safe for concurrent calls", func() {
		script, err := serializer.Compile("function (x) { return x * 2 }")
		Expect(err).NotTo(HaveOccurred())

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				res, err := script.Call(i)
				Expect(err).NotTo(HaveOccurred())
				Expect(res).To(BeNumerically("==", i*2))
			}()
		}
		wg.Wait()
	})

	It("should recognize function source", func() {
		Expect(serializer.LooksLikeScript("function (a) { return a }")).To(BeTrue())
		Expect(serializer.LooksLikeScript("function(a) { return a }")).To(BeTrue())
		Expect(serializer.LooksLikeScript("functional")).To(BeFalse())
	})
})
