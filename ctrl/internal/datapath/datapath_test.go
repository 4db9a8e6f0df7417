package datapath

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DataPath", func() {
	Context("on a 16-bit bus", func() {
		dp := MakeDataPath(16)

		It("should pass write data through", func() {
			Expect(dp.ReplicateWrite(0xBEEF)).To(Equal(uint32(0xBEEF)))
		})

		It("should enable all bytes for a read", func() {
			Expect(dp.Mask(false, 0x3, 0)).To(Equal(uint8(0)))
		})

		It("should use the strobes directly for a write", func() {
			Expect(dp.Mask(true, 0x0, 0)).To(Equal(uint8(0x0)))
			Expect(dp.Mask(true, 0x1, 1)).To(Equal(uint8(0x1)))
			Expect(dp.Mask(true, 0x2, 0)).To(Equal(uint8(0x2)))
		})

		It("should pass read data through", func() {
			Expect(dp.SelectRead(0xCAFE, 0)).To(Equal(uint16(0xCAFE)))
			Expect(dp.SelectRead(0xCAFE, 1)).To(Equal(uint16(0xCAFE)))
		})
	})

	Context("on a 32-bit bus", func() {
		dp := MakeDataPath(32)

		It("should replicate write data into both halves", func() {
			Expect(dp.ReplicateWrite(0xBEEF)).
				To(Equal(uint32(0xBEEF_BEEF)))
		})

		It("should enable all bytes for a read", func() {
			Expect(dp.Mask(false, 0x3, 1)).To(Equal(uint8(0)))
		})

		It("should place the strobes in the half the address LSB "+
			"selects and mask the other half off", func() {
			Expect(dp.Mask(true, 0x0, 0)).To(Equal(uint8(0xC)))
			Expect(dp.Mask(true, 0x1, 0)).To(Equal(uint8(0xD)))
			Expect(dp.Mask(true, 0x0, 1)).To(Equal(uint8(0x3)))
			Expect(dp.Mask(true, 0x2, 1)).To(Equal(uint8(0xB)))
		})

		It("should select the half the address LSB indicates", func() {
			Expect(dp.SelectRead(0xAABB_CCDD, 0)).
				To(Equal(uint16(0xCCDD)))
			Expect(dp.SelectRead(0xAABB_CCDD, 1)).
				To(Equal(uint16(0xAABB)))
		})
	})
})
