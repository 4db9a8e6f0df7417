package device

import (
	"fmt"

	"github.com/sarchlab/sdram/naming"
)

// Builder can build device models. The geometry must match the
// controller the device is wired to.
type Builder struct {
	dataWidth  int
	rowWidth   int
	colWidth   int
	casLatency int
}

// MakeBuilder creates a builder with the default geometry, matching
// the controller's defaults.
func MakeBuilder() Builder {
	return Builder{
		dataWidth:  32,
		rowWidth:   11,
		colWidth:   8,
		casLatency: 2,
	}
}

// WithDataWidth sets the data bus width in bits.
func (b Builder) WithDataWidth(n int) Builder {
	b.dataWidth = n
	return b
}

// WithRowWidth sets the row-address width in bits.
func (b Builder) WithRowWidth(n int) Builder {
	b.rowWidth = n
	return b
}

// WithColWidth sets the column-address width in bits.
func (b Builder) WithColWidth(n int) Builder {
	b.colWidth = n
	return b
}

// WithCASLatency sets the access latency used before a LOAD_MODE
// command overrides it.
func (b Builder) WithCASLatency(n int) Builder {
	b.casLatency = n
	return b
}

// Build builds a device model with all rows closed and empty cells.
func (b Builder) Build(name string) *Comp {
	if b.dataWidth != 16 && b.dataWidth != 32 {
		panic(fmt.Sprintf("data width %d is not supported", b.dataWidth))
	}

	bytesPerLoc := uint64(b.dataWidth / 8)
	capacity := uint64(numBanks) <<
		(uint(b.rowWidth) + uint(b.colWidth)) * bytesPerLoc

	return &Comp{
		NamedBase:   naming.MakeNamedBase(name),
		dataWidth:   b.dataWidth,
		rowWidth:    uint(b.rowWidth),
		colWidth:    uint(b.colWidth),
		bytesPerLoc: bytesPerLoc,
		storage:     NewStorage(capacity),
		casLatency:  b.casLatency,
	}
}
