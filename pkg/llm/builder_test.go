package llm_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/chatmodel/pkg/llm"
)

var _ = Describe("Builder", func() {
	It("builds a response from its parts", func() {
		g := llm.NewGeneration("hi", llm.FinishReasonStop)
		md := llm.ResponseMetadata{Model: "m"}

		resp, err := llm.NewBuilder().
			AddGeneration(g).
			Metadata(md).
			Build()
		Expect(err).NotTo(HaveOccurred())

		Expect(resp.Results()).To(Equal([]llm.Generation{g}))
		Expect(resp.Metadata().Equal(md)).To(BeTrue())
		Expect(resp.AdvisorContext()).NotTo(BeNil())
	})

	It("fails without generations", func() {
		_, err := llm.NewBuilder().Build()

		Expect(errors.Is(err, llm.ErrInvalidArgument)).To(BeTrue())
	})

	It("accepts an explicitly empty generation list", func() {
		resp, err := llm.NewBuilder().Generations([]llm.Generation{}).Build()
		Expect(err).NotTo(HaveOccurred())

		_, ok := resp.Result()
		Expect(ok).To(BeFalse())
	})

	Describe("From", func() {
		var source *llm.ChatResponse

		BeforeEach(func() {
			var err error
			source, err = llm.NewChatResponseWithContext(
				[]llm.Generation{llm.NewGeneration("a", llm.FinishReasonStop)},
				llm.ResponseMetadata{Model: "m", Extra: map[string]any{"k": "v"}},
				llm.AdvisorContext{"stage": "one"},
			)
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces an equal response", func() {
			copied, err := llm.NewBuilder().From(source).Build()
			Expect(err).NotTo(HaveOccurred())

			Expect(copied.Equal(source)).To(BeTrue())
		})

		It("shares the advisor context", func() {
			copied, err := llm.NewBuilder().From(source).Build()
			Expect(err).NotTo(HaveOccurred())

			copied.AdvisorContext()["stage"] = "two"

			Expect(source.AdvisorContext()).To(HaveKeyWithValue("stage", "two"))
		})

		It("does not share metadata maps", func() {
			copied, err := llm.NewBuilder().From(source).Build()
			Expect(err).NotTo(HaveOccurred())

			copied.Metadata().Extra["k"] = "changed"

			v, _ := source.Metadata().Get("k")
			Expect(v).To(Equal("v"))
		})

		It("allows appending generations", func() {
			extended, err := llm.NewBuilder().
				From(source).
				AddGeneration(llm.NewGeneration("b", llm.FinishReasonLength)).
				Build()
			Expect(err).NotTo(HaveOccurred())

			Expect(extended.Results()).To(HaveLen(2))
			Expect(source.Results()).To(HaveLen(1))
		})
	})
})
