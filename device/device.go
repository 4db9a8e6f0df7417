// Package device models the SDRAM device on the far side of the
// memory bus. It executes the command stream the controller issues,
// reproduces the CAS-latency read timing, and panics on protocol
// violations such as a column access with no open row or two drivers
// on the data lines in the same tick.
package device

import (
	"fmt"

	"github.com/sarchlab/sdram/bus"
	"github.com/sarchlab/sdram/naming"
)

const numBanks = 4

// Comp is the behavioral device model.
type Comp struct {
	naming.NamedBase

	dataWidth   int
	rowWidth    uint
	colWidth    uint
	bytesPerLoc uint64

	storage *Storage

	modeReg    uint32
	casLatency int

	openRow [numBanks]uint32
	rowOpen [numBanks]bool

	pending []pendingRead

	refreshCount uint64
	loadModeSeen bool
}

type pendingRead struct {
	ticksLeft int
	value     uint32
}

// RefreshCount returns the number of AUTO_REFRESH commands received.
func (d *Comp) RefreshCount() uint64 {
	return d.refreshCount
}

// ModeRegister returns the last value loaded with LOAD_MODE.
func (d *Comp) ModeRegister() uint32 {
	return d.modeReg
}

// ModeRegisterLoaded reports whether LOAD_MODE has been received since
// the device was built.
func (d *Comp) ModeRegisterLoaded() bool {
	return d.loadModeSeen
}

// Tick consumes the controller outputs for one tick and returns the
// value the device presents on the data lines. Read data appears
// CAS-latency ticks after the READ command, so a harness that feeds
// each tick's return value into the controller's next-tick input
// reproduces the data-latch timing exactly.
func (d *Comp) Tick(out bus.Output) uint32 {
	driving, value := d.ageReads()

	if driving && out.Data.Driving {
		panic("data bus driven by both controller and device")
	}

	switch out.Cmd {
	case bus.CmdActive:
		d.activate(out)
	case bus.CmdRead:
		d.read(out)
	case bus.CmdWrite:
		d.write(out)
	case bus.CmdPrecharge:
		d.precharge(out)
	case bus.CmdAutoRefresh:
		d.refreshCount++
	case bus.CmdLoadMode:
		d.loadMode(out)
	case bus.CmdNOP, bus.CmdBurstTerminate:
	}

	return value
}

func (d *Comp) ageReads() (driving bool, value uint32) {
	remaining := d.pending[:0]

	for _, p := range d.pending {
		p.ticksLeft--
		if p.ticksLeft <= 0 {
			driving = true
			value = p.value
			continue
		}

		remaining = append(remaining, p)
	}

	d.pending = remaining

	return driving, value
}

func (d *Comp) activate(out bus.Output) {
	bank := out.Bank % numBanks
	d.openRow[bank] = out.Addr
	d.rowOpen[bank] = true
}

func (d *Comp) read(out bus.Output) {
	addr := d.cellAddr(out)

	data, err := d.storage.Read(addr, d.bytesPerLoc)
	if err != nil {
		panic(err)
	}

	value := uint32(0)
	for i := uint64(0); i < d.bytesPerLoc; i++ {
		value |= uint32(data[i]) << (8 * i)
	}

	d.pending = append(d.pending, pendingRead{
		ticksLeft: d.casLatency,
		value:     value,
	})

	d.autoPrecharge(out)
}

func (d *Comp) write(out bus.Output) {
	if !out.Data.Driving {
		panic("WRITE received with released data bus")
	}

	addr := d.cellAddr(out)

	data, err := d.storage.Read(addr, d.bytesPerLoc)
	if err != nil {
		panic(err)
	}

	for i := uint64(0); i < d.bytesPerLoc; i++ {
		if out.Mask&(1<<i) != 0 {
			continue
		}

		data[i] = byte(out.Data.Value >> (8 * i))
	}

	err = d.storage.Write(addr, data)
	if err != nil {
		panic(err)
	}

	d.autoPrecharge(out)
}

// cellAddr combines the open row of the addressed bank with the column
// on the address lines into a byte address in the backing storage.
func (d *Comp) cellAddr(out bus.Output) uint64 {
	bank := out.Bank % numBanks
	if !d.rowOpen[bank] {
		panic(fmt.Sprintf(
			"column access to bank %d with no active row", bank))
	}

	row := uint64(d.openRow[bank])
	col := uint64(out.Addr) & ((1 << d.colWidth) - 1)

	internal := uint64(bank)<<(d.rowWidth+d.colWidth) |
		row<<d.colWidth |
		col

	return internal * d.bytesPerLoc
}

func (d *Comp) autoPrecharge(out bus.Output) {
	if out.Addr&bus.AddrBit10 != 0 {
		d.rowOpen[out.Bank%numBanks] = false
	}
}

func (d *Comp) precharge(out bus.Output) {
	if out.Addr&bus.AddrBit10 != 0 {
		for i := range d.rowOpen {
			d.rowOpen[i] = false
		}

		return
	}

	d.rowOpen[out.Bank%numBanks] = false
}

func (d *Comp) loadMode(out bus.Output) {
	d.modeReg = out.Addr
	d.casLatency = int(out.Addr >> 4 & 0x7)
	d.loadModeSeen = true
}
