package bus

// A Request is the combinational request interface of a client port.
// The controller samples it at the decision phase of a cycle and never
// buffers it; an un-serviced request must be held by the client and is
// retried on a later cycle.
type Request struct {
	// Addr is the client word address. Only the low AddrWidth bits are
	// meaningful.
	Addr uint32

	// Data is the 16-bit write value. Ignored for reads.
	Data uint16

	// Strobe holds the two byte-enable strobes for a write, in DQM
	// polarity (a set bit suppresses the corresponding byte).
	Strobe uint8

	// IsWrite selects between a write and a read access.
	IsWrite bool

	// Valid marks the request as pending.
	Valid bool
}

// Owner identifies the single requester granted the bus for one
// fixed-length cycle.
type Owner int

const (
	OwnerIdle Owner = iota
	OwnerPort1
	OwnerPort2
	OwnerRefresh
)

var ownerNames = map[Owner]string{
	OwnerIdle:    "Idle",
	OwnerPort1:   "Port1",
	OwnerPort2:   "Port2",
	OwnerRefresh: "Refresh",
}

func (o Owner) String() string {
	return ownerNames[o]
}
