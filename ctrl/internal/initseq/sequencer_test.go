package initseq

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sdram/bus"
)

var _ = Describe("Sequencer", func() {
	var s *Sequencer

	BeforeEach(func() {
		s = NewSequencer(2)
	})

	It("should not be ready after reset", func() {
		Expect(s.Ready()).To(BeFalse())
		Expect(s.Countdown()).To(Equal(uint8(31)))
	})

	It("should schedule PRECHARGE-all and LOAD_MODE at their "+
		"countdown values and NOP everywhere else", func() {
		var cmds []bus.Command

		for !s.Ready() {
			cmd, addr := s.CycleStartCommand()
			cmds = append(cmds, cmd)

			switch cmd {
			case bus.CmdPrecharge:
				Expect(addr & bus.AddrBit10).ToNot(BeZero())
				Expect(s.Countdown()).To(Equal(uint8(30)))
			case bus.CmdLoadMode:
				Expect(addr).To(Equal(ModeRegister(2)))
				Expect(s.Countdown()).To(Equal(uint8(2)))
			default:
				Expect(cmd).To(Equal(bus.CmdNOP))
			}

			s.CycleCompleted()
		}

		Expect(cmds).To(HaveLen(31))
		Expect(cmds).To(ContainElement(bus.CmdPrecharge))
		Expect(cmds).To(ContainElement(bus.CmdLoadMode))
	})

	It("should count down monotonically and stop at zero", func() {
		last := s.Countdown()

		for i := 0; i < 40; i++ {
			s.CycleCompleted()

			Expect(s.Countdown() <= last).To(BeTrue())
			last = s.Countdown()
		}

		Expect(s.Countdown()).To(Equal(uint8(0)))
		Expect(s.Ready()).To(BeTrue())
	})

	It("should re-arm on reset", func() {
		for i := 0; i < 31; i++ {
			s.CycleCompleted()
		}
		Expect(s.Ready()).To(BeTrue())

		s.Reset()

		Expect(s.Ready()).To(BeFalse())
		Expect(s.Countdown()).To(Equal(uint8(31)))
	})

	It("should assemble the mode register from the CAS latency", func() {
		Expect(ModeRegister(2)).To(Equal(uint32(0x220)))
		Expect(ModeRegister(3)).To(Equal(uint32(0x230)))
	})
})
