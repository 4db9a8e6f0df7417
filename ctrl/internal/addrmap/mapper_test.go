package addrmap

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Mapper", func() {
	It("should extract column, row, and bank fields on a 16-bit bus",
		func() {
			m := MakeMapper(16, 11, 8)

			loc := m.Map(0b11_10000000011_10000001)

			Expect(loc.Col).To(Equal(uint32(0b10000001)))
			Expect(loc.Row).To(Equal(uint32(0b10000000011)))
			Expect(loc.Bank).To(Equal(uint8(0b11)))
		})

	It("should drop the half-word bit on a 32-bit bus", func() {
		m := MakeMapper(32, 11, 8)

		even := m.Map(0x200)
		odd := m.Map(0x201)

		Expect(even).To(Equal(odd))
		Expect(even.Col).To(Equal(uint32(0x00)))
		Expect(even.Row).To(Equal(uint32(0x1)))
	})

	It("should round-trip random addresses on a 16-bit bus", func() {
		m := MakeMapper(16, 13, 9)
		rng := rand.New(rand.NewSource(1))

		for i := 0; i < 1000; i++ {
			addr := rng.Uint32() & (1<<24 - 1)

			Expect(m.Unmap(m.Map(addr))).To(Equal(addr))
		}
	})

	It("should round-trip even addresses on a 32-bit bus", func() {
		m := MakeMapper(32, 11, 8)
		rng := rand.New(rand.NewSource(2))

		for i := 0; i < 1000; i++ {
			addr := rng.Uint32() & (1<<22 - 1) &^ 1

			Expect(m.Unmap(m.Map(addr))).To(Equal(addr))
		}
	})
})
