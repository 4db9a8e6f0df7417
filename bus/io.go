package bus

// AddrBit10 is the overloaded A10 address line. During PRECHARGE it
// selects all banks; during READ/WRITE it requests auto-precharge at
// the end of the column access.
const AddrBit10 uint32 = 1 << 10

// DataBus is the controller's view of the bidirectional data lines for
// one tick. The bus is either driven with a value or released to
// high impedance; modeling the released state explicitly lets the
// device model assert drive exclusivity.
type DataBus struct {
	Driving bool
	Value   uint32
}

// Driving returns a bus state that drives the given value.
func Driving(v uint32) DataBus {
	return DataBus{Driving: true, Value: v}
}

// Released returns the high-impedance bus state.
func Released() DataBus {
	return DataBus{}
}

// Input carries everything the controller samples on one tick.
type Input struct {
	// Sync is the external synchronization pulse. The controller edge
	// detects it through a short shift register and starts a new cycle
	// only on a detected rising edge while idle.
	Sync bool

	// Port1 and Port2 are the client request lines.
	Port1 Request
	Port2 Request

	// RefreshReq is the level signal from the refresh requester.
	RefreshReq bool

	// Data is the value present on the data lines this tick when the
	// controller is not driving them.
	Data uint32
}

// Output carries everything the controller presents on one tick.
type Output struct {
	Cmd  Command
	Addr uint32
	Bank uint8

	// Mask holds the DQM lines, one bit per byte lane of the data bus.
	Mask uint8

	// Data is the controller's side of the bidirectional data lines.
	Data DataBus

	// Ready is false only during the bring-up sequence.
	Ready bool

	// Port1Data and Port2Data are the per-port read-data registers.
	Port1Data uint16
	Port2Data uint16

	// Port2Ack flips exactly once per cycle that Port2 owned. The
	// consumer must detect the transition, not the level.
	Port2Ack bool
}
