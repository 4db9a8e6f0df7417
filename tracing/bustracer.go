// Package tracing records the command stream of a controller into a
// data recorder.
package tracing

import (
	"sync"

	"github.com/sarchlab/sdram/ctrl"
	"github.com/sarchlab/sdram/datarecording"
	"github.com/sarchlab/sdram/hooking"
)

// commandTableName is the trace table that holds issued commands.
const commandTableName = "bus_commands"

// CommandRecord is one row of the command trace.
type CommandRecord struct {
	Cycle   uint64
	Phase   int
	Owner   string
	Command string
	Addr    uint32
	Bank    uint8
}

// A BusTracer is a hook that writes every issued command to a data
// recorder. Attach it to a controller with WithAdditionalHooks or
// AcceptHook.
type BusTracer struct {
	mu       sync.Mutex
	recorder datarecording.DataRecorder
	recent   []CommandRecord
	keep     int
}

// NewBusTracer creates a tracer backed by the given recorder.
func NewBusTracer(recorder datarecording.DataRecorder) *BusTracer {
	t := &BusTracer{
		recorder: recorder,
		keep:     256,
	}

	recorder.CreateTable(commandTableName, CommandRecord{})

	return t
}

// Func records command-issue hook invocations and ignores the rest.
func (t *BusTracer) Func(hCtx hooking.HookCtx) {
	if hCtx.Pos != ctrl.HookPosCmdIssue {
		return
	}

	info := hCtx.Item.(ctrl.CommandInfo)
	rec := CommandRecord{
		Cycle:   info.Cycle,
		Phase:   info.Phase,
		Owner:   info.Owner.String(),
		Command: info.Cmd.String(),
		Addr:    info.Addr,
		Bank:    info.Bank,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.recorder.InsertData(commandTableName, rec)

	t.recent = append(t.recent, rec)
	if len(t.recent) > t.keep {
		t.recent = t.recent[len(t.recent)-t.keep:]
	}
}

// Recent returns a copy of the most recently recorded commands, oldest
// first.
func (t *BusTracer) Recent() []CommandRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]CommandRecord, len(t.recent))
	copy(out, t.recent)

	return out
}
