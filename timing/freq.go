// Package timing provides clock-frequency arithmetic for relating
// tick counts to simulated wall time.
package timing

import (
	"log"
	"math"
)

// VTimeInSec is virtual time in seconds.
type VTimeInSec float64

// Freq is a clock frequency.
type Freq float64

// Units of frequency.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive ticks.
func (f Freq) Period() VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInSec(1.0 / f)
}

// Cycle converts a time to the number of ticks elapsed since time 0.
func (f Freq) Cycle(t VTimeInSec) uint64 {
	return uint64(math.Round(float64(t) * float64(f)))
}

// NCyclesLater returns the time n ticks after now.
func (f Freq) NCyclesLater(n int, now VTimeInSec) VTimeInSec {
	return now + VTimeInSec(Freq(n)/f)
}
