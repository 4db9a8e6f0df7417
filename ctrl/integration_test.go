package ctrl

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sdram/bus"
	"github.com/sarchlab/sdram/device"
)

// runCycleWithDevice runs one full cycle with the device model wired
// to the controller. The device's data-line value from each tick is
// what the controller samples on the following tick, matching the
// harness in cmd/sdramsim.
func runCycleWithDevice(
	c *Comp,
	d *device.Comp,
	in bus.Input,
	busData *uint32,
) []bus.Output {
	tick := func(i bus.Input) bus.Output {
		i.Data = *busData
		out := c.Tick(i)
		*busData = d.Tick(out)

		return out
	}

	high := in
	high.Sync = true
	low := in
	low.Sync = false

	tick(high)

	outs := make([]bus.Output, 0, 7)
	outs = append(outs, tick(high))

	for i := 0; i < 6; i++ {
		outs = append(outs, tick(low))
	}

	return outs
}

var _ = Describe("Controller with device model", func() {
	var (
		c       *Comp
		d       *device.Comp
		busData uint32
	)

	write := func(port int, addr uint32, data uint16, strobe uint8) {
		req := bus.Request{
			Addr:    addr,
			Data:    data,
			Strobe:  strobe,
			IsWrite: true,
			Valid:   true,
		}

		in := bus.Input{}
		if port == 1 {
			in.Port1 = req
		} else {
			in.Port2 = req
		}

		runCycleWithDevice(c, d, in, &busData)
	}

	read := func(port int, addr uint32) (uint16, bool) {
		req := bus.Request{Addr: addr, Valid: true}

		in := bus.Input{}
		if port == 1 {
			in.Port1 = req
		} else {
			in.Port2 = req
		}

		outs := runCycleWithDevice(c, d, in, &busData)
		last := outs[len(outs)-1]

		if port == 1 {
			return last.Port1Data, last.Port2Ack
		}

		return last.Port2Data, last.Port2Ack
	}

	Context("on a 32-bit bus", func() {
		BeforeEach(func() {
			c = MakeBuilder().Build("Ctrl")
			d = device.MakeBuilder().Build("Device")
			busData = 0

			for !c.Ready() {
				runCycleWithDevice(c, d, bus.Input{}, &busData)
			}
		})

		It("should load the device mode register during bring-up",
			func() {
				Expect(d.ModeRegisterLoaded()).To(BeTrue())
				Expect(d.ModeRegister()).To(Equal(uint32(0x220)))
			})

		It("should read back written half-words independently", func() {
			write(1, 0x400, 0x1234, 0)
			write(1, 0x401, 0xBEEF, 0)

			got, _ := read(1, 0x400)
			Expect(got).To(Equal(uint16(0x1234)))

			got, _ = read(1, 0x401)
			Expect(got).To(Equal(uint16(0xBEEF)))
		})

		It("should honor byte strobes on writes", func() {
			write(1, 0x80, 0x1122, 0)
			write(1, 0x80, 0xAABB, 0x2)

			got, _ := read(1, 0x80)
			Expect(got).To(Equal(uint16(0x11BB)))
		})

		It("should serve Port2 and toggle its acknowledgment", func() {
			write(1, 0x31, 0x5678, 0)

			got, ack := read(2, 0x31)
			Expect(got).To(Equal(uint16(0x5678)))
			Expect(ack).To(BeTrue())

			got, ack = read(2, 0x31)
			Expect(got).To(Equal(uint16(0x5678)))
			Expect(ack).To(BeFalse())
		})

		It("should deliver both refresh pulses to the device", func() {
			before := d.RefreshCount()

			in := bus.Input{
				Port1:      bus.Request{Addr: 0x1, Valid: true},
				RefreshReq: true,
			}
			runCycleWithDevice(c, d, in, &busData)

			Expect(d.RefreshCount()).To(Equal(before + 2))
		})

		It("should span writes across banks and rows", func() {
			addrs := []uint32{
				0x000000, 0x0001FF, 0x0C0300, 0x3FFFFF,
			}

			for i, addr := range addrs {
				write(1, addr, uint16(0x1000+i), 0)
			}

			for i, addr := range addrs {
				got, _ := read(1, addr)
				Expect(got).To(Equal(uint16(0x1000 + i)))
			}
		})
	})

	Context("on a 16-bit bus", func() {
		BeforeEach(func() {
			c = MakeBuilder().
				WithDataWidth(16).
				WithRowWidth(13).
				WithColWidth(9).
				WithAddrWidth(24).
				Build("Ctrl")
			d = device.MakeBuilder().
				WithDataWidth(16).
				WithRowWidth(13).
				WithColWidth(9).
				Build("Device")
			busData = 0

			for !c.Ready() {
				runCycleWithDevice(c, d, bus.Input{}, &busData)
			}
		})

		It("should read back written words", func() {
			write(1, 0x1234, 0xCAFE, 0)
			write(1, 0x1235, 0xD00D, 0)

			got, _ := read(1, 0x1234)
			Expect(got).To(Equal(uint16(0xCAFE)))

			got, _ = read(1, 0x1235)
			Expect(got).To(Equal(uint16(0xD00D)))
		})

		It("should honor byte strobes directly", func() {
			write(1, 0x20, 0x1122, 0)
			write(1, 0x20, 0xAABB, 0x1)

			got, _ := read(1, 0x20)
			Expect(got).To(Equal(uint16(0xAA22)))
		})
	})
})
