// Package initseq drives the mandatory post-reset bring-up schedule
// of the device.
package initseq

import "github.com/sarchlab/sdram/bus"

const (
	// countdownMax is the reset value of the 5-bit bring-up counter.
	countdownMax = 31

	prechargeAt = 30
	loadModeAt  = 2
)

// ModeRegister assembles the mode-register word written once during
// bring-up: burst length one, sequential ordering, the given CAS
// latency, standard operation, single-access writes.
func ModeRegister(casLatency int) uint32 {
	return 1<<9 | uint32(casLatency)<<4
}

// A Sequencer counts down the bring-up cycles and schedules the
// PRECHARGE and LOAD_MODE commands at their fixed countdown values.
type Sequencer struct {
	countdown   uint8
	modeRegWord uint32
}

// NewSequencer creates a sequencer in the post-reset state.
func NewSequencer(casLatency int) *Sequencer {
	s := &Sequencer{
		modeRegWord: ModeRegister(casLatency),
	}
	s.Reset()

	return s
}

// Reset re-arms the bring-up sequence.
func (s *Sequencer) Reset() {
	s.countdown = countdownMax
}

// Ready is true once the countdown has run out.
func (s *Sequencer) Ready() bool {
	return s.countdown == 0
}

// Countdown returns the remaining bring-up cycle count.
func (s *Sequencer) Countdown() uint8 {
	return s.countdown
}

// CycleStartCommand returns the command and address lines to present
// at the cycle-start phase of a bring-up cycle. Every countdown value
// other than the two scheduled ones yields NOP.
func (s *Sequencer) CycleStartCommand() (bus.Command, uint32) {
	switch s.countdown {
	case prechargeAt:
		return bus.CmdPrecharge, bus.AddrBit10
	case loadModeAt:
		return bus.CmdLoadMode, s.modeRegWord
	default:
		return bus.CmdNOP, 0
	}
}

// CycleCompleted records the completion of one full cycle. The counter
// only decreases and stops at zero.
func (s *Sequencer) CycleCompleted() {
	if s.countdown > 0 {
		s.countdown--
	}
}
