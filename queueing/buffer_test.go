package queueing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Buffer", func() {
	var buf Buffer

	BeforeEach(func() {
		buf = BufferBuilder{}.
			WithCapacity(2).
			Build("Buf")
	})

	It("should allow push and pop in order", func() {
		Expect(buf.Capacity()).To(Equal(2))
		Expect(buf.Empty()).To(BeTrue())
		Expect(buf.CanPush()).To(BeTrue())

		buf.Push(1)
		Expect(buf.Empty()).To(BeFalse())
		Expect(buf.Size()).To(Equal(1))

		buf.Push(2)
		Expect(buf.Full()).To(BeTrue())
		Expect(buf.CanPush()).To(BeFalse())
		Expect(func() {
			buf.Push(3)
		}).To(Panic())

		Expect(buf.Pop()).To(Equal(1))
		Expect(buf.Pop()).To(Equal(2))
		Expect(buf.Pop()).To(BeNil())
		Expect(buf.Empty()).To(BeTrue())
	})

	It("should make a value pushed into an empty buffer visible "+
		"immediately", func() {
		Expect(buf.Peek()).To(BeNil())

		buf.Push(42)

		Expect(buf.Peek()).To(Equal(42))
	})

	It("should wrap around the fixed backing storage", func() {
		for i := 0; i < 10; i++ {
			buf.Push(i)
			Expect(buf.Pop()).To(Equal(i))
		}
	})

	It("should clear", func() {
		buf.Push(1)
		buf.Push(2)

		buf.Clear()

		Expect(buf.Empty()).To(BeTrue())
		Expect(buf.CanPush()).To(BeTrue())
		Expect(buf.Peek()).To(BeNil())
	})

	It("should refuse a non-positive capacity", func() {
		Expect(func() {
			BufferBuilder{}.Build("Buf")
		}).To(Panic())
	})
})
