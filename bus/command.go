// Package bus defines the protocol-level types shared by the memory
// controller and the device model: commands with their control-line
// encodings, client requests, cycle ownership, and the state of the
// bidirectional data bus.
package bus

import "fmt"

// A Command is one of the operations the controller can present on the
// control lines during a single tick.
type Command int

// All commands the device understands. Burst transfers are disabled in
// the mode register, so BurstTerminate is never issued, but it is part
// of the device's command set and decodes accordingly.
const (
	CmdNOP Command = iota
	CmdActive
	CmdRead
	CmdWrite
	CmdBurstTerminate
	CmdPrecharge
	CmdAutoRefresh
	CmdLoadMode
	numCommands
)

// ControlLines is the raw three-line encoding of a command. The lines
// are active-low on the device; the values here are the literal levels
// driven on the pins (1 = high, 0 = low).
type ControlLines struct {
	RAS uint8
	CAS uint8
	WE  uint8
}

var cmdToLines = [numCommands]ControlLines{
	CmdNOP:            {RAS: 1, CAS: 1, WE: 1},
	CmdActive:         {RAS: 0, CAS: 1, WE: 1},
	CmdRead:           {RAS: 1, CAS: 0, WE: 1},
	CmdWrite:          {RAS: 1, CAS: 0, WE: 0},
	CmdBurstTerminate: {RAS: 1, CAS: 1, WE: 0},
	CmdPrecharge:      {RAS: 0, CAS: 1, WE: 0},
	CmdAutoRefresh:    {RAS: 0, CAS: 0, WE: 1},
	CmdLoadMode:       {RAS: 0, CAS: 0, WE: 0},
}

var cmdNames = [numCommands]string{
	CmdNOP:            "NOP",
	CmdActive:         "ACTIVE",
	CmdRead:           "READ",
	CmdWrite:          "WRITE",
	CmdBurstTerminate: "BURST_TERMINATE",
	CmdPrecharge:      "PRECHARGE",
	CmdAutoRefresh:    "AUTO_REFRESH",
	CmdLoadMode:       "LOAD_MODE",
}

// Encode returns the control-line levels for the command.
func (c Command) Encode() ControlLines {
	if c < 0 || c >= numCommands {
		panic(fmt.Sprintf("unknown command %d", int(c)))
	}

	return cmdToLines[c]
}

func (c Command) String() string {
	if c < 0 || c >= numCommands {
		return fmt.Sprintf("Command(%d)", int(c))
	}

	return cmdNames[c]
}

// Decode maps control-line levels back to a command. The three lines
// cover all eight combinations, so decoding always succeeds for line
// levels that are 0 or 1.
func Decode(lines ControlLines) (Command, error) {
	for cmd, l := range cmdToLines {
		if l == lines {
			return Command(cmd), nil
		}
	}

	return CmdNOP, fmt.Errorf("invalid control line levels %+v", lines)
}
