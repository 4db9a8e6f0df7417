// Package ctrl implements the synchronous memory-controller scheduler.
// The controller advances one phase per tick of its driving clock,
// starts a new fixed-length cycle on each detected rising edge of the
// external sync pulse, and decides at the cycle-start phase which
// requester owns the cycle.
package ctrl

import (
	"github.com/sarchlab/sdram/bus"
	"github.com/sarchlab/sdram/ctrl/internal/addrmap"
	"github.com/sarchlab/sdram/ctrl/internal/arbit"
	"github.com/sarchlab/sdram/ctrl/internal/datapath"
	"github.com/sarchlab/sdram/ctrl/internal/initseq"
	"github.com/sarchlab/sdram/hooking"
	"github.com/sarchlab/sdram/naming"
)

// phaseLast is the final phase of every memory cycle. A cycle always
// spans phases 0 through phaseLast regardless of configuration.
const phaseLast = 6

// HookPosCmdIssue marks the issue of a non-NOP command.
var HookPosCmdIssue = &hooking.HookPos{Name: "Command Issue"}

// HookPosCycleStart marks the first phase of a new cycle.
var HookPosCycleStart = &hooking.HookPos{Name: "Cycle Start"}

// CommandInfo describes one issued command. It is the Item of
// HookPosCmdIssue invocations.
type CommandInfo struct {
	Cycle uint64
	Phase int
	Owner bus.Owner
	Cmd   bus.Command
	Addr  uint32
	Bank  uint8
}

// Comp is the cycle scheduler. It owns all per-cycle state; the
// arbiter, mapper, and data path are stateless decision functions it
// calls each tick, and the init sequencer holds the bring-up counter.
type Comp struct {
	naming.NamedBase
	hooking.HookableBase

	mapper   addrmap.Mapper
	arbiter  arbit.Arbiter
	dataPath datapath.DataPath
	initSeq  *initseq.Sequencer

	casPhase  int
	dataPhase int

	running   bool
	phase     int
	syncShift uint8

	owner    bus.Owner
	req      bus.Request
	loc      addrmap.Location
	mask     uint8
	writeVal uint32

	port1Data uint16
	port2Data uint16
	port2Ack  bool

	cycleCount   uint64
	refreshCount uint64
}

// Ready is false only while the bring-up sequence is running.
func (c *Comp) Ready() bool {
	return c.initSeq.Ready()
}

// Phase returns the current position within the cycle.
func (c *Comp) Phase() int {
	return c.phase
}

// CurrentOwner returns the owner decided for the running cycle, or
// OwnerIdle between cycles.
func (c *Comp) CurrentOwner() bus.Owner {
	return c.owner
}

// CycleCount returns the number of completed cycles since reset.
func (c *Comp) CycleCount() uint64 {
	return c.cycleCount
}

// RefreshCount returns the number of AUTO_REFRESH commands issued.
func (c *Comp) RefreshCount() uint64 {
	return c.refreshCount
}

// Reset re-arms the bring-up sequence and abandons any running cycle.
func (c *Comp) Reset() {
	c.initSeq.Reset()
	c.running = false
	c.phase = 0
	c.syncShift = 0
	c.owner = bus.OwnerIdle
	c.port1Data = 0
	c.port2Data = 0
	c.port2Ack = false
	c.cycleCount = 0
	c.refreshCount = 0
}

// Tick advances the controller by one clock tick. It samples the
// inputs, updates the internal state, and returns the command,
// address, and data-path outputs for this tick. The default command on
// a tick with no active decision is NOP and the data bus is released.
func (c *Comp) Tick(in bus.Input) bus.Output {
	out := bus.Output{
		Cmd:       bus.CmdNOP,
		Data:      bus.Released(),
		Ready:     c.initSeq.Ready(),
		Port1Data: c.port1Data,
		Port2Data: c.port2Data,
		Port2Ack:  c.port2Ack,
	}

	edge := c.sampleSync(in.Sync)

	if !c.running {
		if !edge {
			return out
		}

		c.running = true
		c.phase = 0
		c.invokeCycleStartHook()
	}

	if !c.initSeq.Ready() {
		c.initTick(&out)
	} else {
		c.accessTick(in, &out)
	}

	out.Port1Data = c.port1Data
	out.Port2Data = c.port2Data
	out.Port2Ack = c.port2Ack

	if out.Cmd != bus.CmdNOP {
		c.invokeCmdHook(out)
	}

	c.advance()

	return out
}

// sampleSync shifts the raw pulse level into a three-stage register
// and reports a rising edge between the two synchronized stages. The
// two-stage delay keeps the detector stable against a pulse that is
// not aligned to the controller clock.
func (c *Comp) sampleSync(level bool) bool {
	bit := uint8(0)
	if level {
		bit = 1
	}

	c.syncShift = (c.syncShift<<1 | bit) & 0x7

	return c.syncShift&0x6 == 0x2
}

func (c *Comp) initTick(out *bus.Output) {
	if c.phase != 0 {
		return
	}

	out.Cmd, out.Addr = c.initSeq.CycleStartCommand()
}

func (c *Comp) accessTick(in bus.Input, out *bus.Output) {
	switch {
	case c.phase == 0:
		c.decide(in, out)
	case c.phase == c.casPhase:
		c.columnAccess(out)
	case c.phase == c.dataPhase:
		c.latchData(in, out)
	}
}

// decide runs the arbiter on the request lines as sampled this tick
// and snapshots the winning request. Later phases work only from the
// snapshot; the client may change its lines afterwards.
func (c *Comp) decide(in bus.Input, out *bus.Output) {
	c.owner = c.arbiter.Decide(in.Port1, in.Port2, in.RefreshReq)

	switch c.owner {
	case bus.OwnerPort1:
		c.activate(in.Port1, out)
	case bus.OwnerPort2:
		c.activate(in.Port2, out)
	case bus.OwnerRefresh:
		out.Cmd = bus.CmdAutoRefresh
		c.refreshCount++
	}
}

func (c *Comp) activate(req bus.Request, out *bus.Output) {
	c.req = req
	c.loc = c.mapper.Map(req.Addr)
	c.mask = c.dataPath.Mask(req.IsWrite, req.Strobe, req.Addr&1)
	c.writeVal = c.dataPath.ReplicateWrite(req.Data)

	out.Cmd = bus.CmdActive
	out.Addr = c.loc.Row
	out.Bank = c.loc.Bank
}

// columnAccess issues READ or WRITE with the column address and the
// auto-precharge bit. The bus is driven only here and only for a
// write.
func (c *Comp) columnAccess(out *bus.Output) {
	if c.owner != bus.OwnerPort1 && c.owner != bus.OwnerPort2 {
		return
	}

	out.Addr = c.loc.Col | bus.AddrBit10
	out.Bank = c.loc.Bank
	out.Mask = c.mask

	if c.req.IsWrite {
		out.Cmd = bus.CmdWrite
		out.Data = bus.Driving(c.writeVal)
	} else {
		out.Cmd = bus.CmdRead
	}
}

// latchData captures the bus value for the owning port. A refresh
// cycle issues its second AUTO_REFRESH pulse here instead.
func (c *Comp) latchData(in bus.Input, out *bus.Output) {
	switch c.owner {
	case bus.OwnerRefresh:
		out.Cmd = bus.CmdAutoRefresh
		c.refreshCount++
	case bus.OwnerPort1:
		if !c.req.IsWrite {
			c.port1Data = c.dataPath.SelectRead(in.Data, c.req.Addr&1)
		}
	case bus.OwnerPort2:
		if !c.req.IsWrite {
			c.port2Data = c.dataPath.SelectRead(in.Data, c.req.Addr&1)
		}

		c.port2Ack = !c.port2Ack
	}
}

func (c *Comp) advance() {
	if !c.running {
		return
	}

	if c.phase < phaseLast {
		c.phase++
		return
	}

	c.running = false
	c.phase = 0
	c.cycleCount++
	c.owner = bus.OwnerIdle

	if !c.initSeq.Ready() {
		c.initSeq.CycleCompleted()
	}
}

func (c *Comp) invokeCmdHook(out bus.Output) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosCmdIssue,
		Item: CommandInfo{
			Cycle: c.cycleCount,
			Phase: c.phase,
			Owner: c.owner,
			Cmd:   out.Cmd,
			Addr:  out.Addr,
			Bank:  out.Bank,
		},
	})
}

func (c *Comp) invokeCycleStartHook() {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosCycleStart,
		Item:   c.cycleCount,
	})
}
