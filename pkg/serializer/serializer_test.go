package serializer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dtex/neuron/pkg/serializer"
)

func add(a, b float64) float64 {
	return a + b
}

func square(x float64) float64 {
	return x * x
}

var _ = Describe("Serializer", func() {
	var reg *serializer.Registry

	BeforeEach(func() {
		reg = serializer.NewRegistry()
		Expect(reg.Register("add", add)).To(Succeed())
		Expect(reg.Register("square", square)).To(Succeed())
	})

	Context("with registered functions", func() {
		It("should restore a callable that computes the same results", func() {
			// Arrange
			s := &serializer.Serializer{Registry: reg}
			bag := serializer.Bag{"concurrency": 5, "sum": add, "label": "math"}

			// Act
			text, err := s.Stringify(bag)
			Expect(err).NotTo(HaveOccurred())
			parsed, err := s.Parse(text)
			Expect(err).NotTo(HaveOccurred())

			// Assert
			Expect(text).To(ContainSubstring(`"sum":{"$work":"add"}`))
			fn, ok := parsed["sum"].(func(float64, float64) float64)
			Expect(ok).To(BeTrue())
			for _, in := range [][2]float64{{1, 2}, {-4, 9.5}, {0, 0}} {
				Expect(fn(in[0], in[1])).To(Equal(add(in[0], in[1])))
			}
			Expect(parsed["concurrency"]).To(BeNumerically("==", 5))
			Expect(parsed["label"]).To(Equal("math"))
		})

		It("should drop functions the registry does not know", func() {
			s := &serializer.Serializer{Registry: reg}

			text, err := s.Stringify(serializer.Bag{"anon": func() {}, "keep": true})
			Expect(err).NotTo(HaveOccurred())

			parsed, err := s.Parse(text)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).NotTo(HaveKey("anon"))
			Expect(parsed).To(HaveKeyWithValue("keep", true))
		})

		It("should keep an unresolved reference as a Ref", func() {
			writer := &serializer.Serializer{Registry: reg}
			reader := &serializer.Serializer{Registry: serializer.NewRegistry()}

			text, err := writer.Stringify(serializer.Bag{"work": serializer.Ref{Name: "square"}})
			Expect(err).NotTo(HaveOccurred())

			parsed, err := reader.Parse(text)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed["work"]).To(Equal(serializer.Ref{Name: "square"}))
		})

		It("should encode functions nested in arguments", func() {
			s := &serializer.Serializer{Registry: reg}

			text, err := s.StringifyArgs([]any{"/a/b", square, []any{1, "x"}})
			Expect(err).NotTo(HaveOccurred())

			args, err := s.ParseArgs(text)
			Expect(err).NotTo(HaveOccurred())
			Expect(args).To(HaveLen(3))
			Expect(args[0]).To(Equal("/a/b"))
			fn, ok := args[1].(func(float64) float64)
			Expect(ok).To(BeTrue())
			Expect(fn(3)).To(Equal(9.0))
		})
	})

	Context("with scripts", func() {
		const src = "function (a, b) { return a * b + 1 }"

		It("should round trip a script when persisting scripts", func() {
			// Arrange
			s := &serializer.Serializer{PersistScripts: true}
			script, err := serializer.Compile(src)
			Expect(err).NotTo(HaveOccurred())

			// Act
			text, err := s.Stringify(serializer.Bag{"work": script})
			Expect(err).NotTo(HaveOccurred())
			parsed, err := s.Parse(text)
			Expect(err).NotTo(HaveOccurred())

			// Assert
			restored, ok := parsed["work"].(*serializer.Script)
			Expect(ok).To(BeTrue())
			Expect(restored.Source()).To(Equal(src))
			for _, in := range [][2]int{{2, 3}, {0, 7}, {-1, 5}} {
				want, err := script.Call(in[0], in[1])
				Expect(err).NotTo(HaveOccurred())
				got, err := restored.Call(in[0], in[1])
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want))
			}
		})

		It("should drop scripts unless persisting scripts", func() {
			s := &serializer.Serializer{}
			script, err := serializer.Compile(src)
			Expect(err).NotTo(HaveOccurred())

			text, err := s.Stringify(serializer.Bag{"work": script})
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("{}"))
		})

		It("should leave function source as data unless persisting scripts", func() {
			s := &serializer.Serializer{}

			parsed, err := s.Parse(`{"note":"function () { return 1 }"}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed["note"]).To(Equal("function () { return 1 }"))
		})
	})

	It("should fail on malformed text", func() {
		s := &serializer.Serializer{}

		_, err := s.Parse("{not json")
		Expect(err).To(HaveOccurred())
		_, err = s.ParseArgs(`{"a":1}`)
		Expect(err).To(HaveOccurred())
	})
})
