package ctrl

import (
	"fmt"

	"github.com/sarchlab/sdram/ctrl/internal/addrmap"
	"github.com/sarchlab/sdram/ctrl/internal/arbit"
	"github.com/sarchlab/sdram/ctrl/internal/datapath"
	"github.com/sarchlab/sdram/ctrl/internal/initseq"
	"github.com/sarchlab/sdram/hooking"
	"github.com/sarchlab/sdram/naming"
)

// Builder can build memory controllers. Geometry and timing are fixed
// at build time; a configuration that places the CAS phase or the
// data-latch phase outside the 7-phase cycle window refuses to build.
type Builder struct {
	dataWidth  int
	addrWidth  int
	rowWidth   int
	colWidth   int
	rasToCas   int
	casLatency int

	hooks []hooking.Hook
}

// MakeBuilder creates a builder with the default configuration: a
// 32-bit bus, 11-bit rows, 8-bit columns, 22-bit client word
// addresses, a RAS-to-CAS delay of 2, and a CAS latency of 2.
func MakeBuilder() Builder {
	return Builder{
		dataWidth:  32,
		addrWidth:  22,
		rowWidth:   11,
		colWidth:   8,
		rasToCas:   2,
		casLatency: 2,
	}
}

// WithDataWidth sets the width of the data bus in bits. Only 16 and
// 32 are supported.
func (b Builder) WithDataWidth(n int) Builder {
	b.dataWidth = n
	return b
}

// WithAddrWidth sets the width of the client word address in bits.
func (b Builder) WithAddrWidth(n int) Builder {
	b.addrWidth = n
	return b
}

// WithRowWidth sets the width of the row-address field in bits.
func (b Builder) WithRowWidth(n int) Builder {
	b.rowWidth = n
	return b
}

// WithColWidth sets the width of the column-address field in bits.
func (b Builder) WithColWidth(n int) Builder {
	b.colWidth = n
	return b
}

// WithRASToCASDelay sets the number of phases between the ACTIVE
// command and the column access.
func (b Builder) WithRASToCASDelay(n int) Builder {
	b.rasToCas = n
	return b
}

// WithCASLatency sets the access latency between the column command
// and data availability. The value is also written into the device
// mode register during bring-up.
func (b Builder) WithCASLatency(n int) Builder {
	b.casLatency = n
	return b
}

// WithAdditionalHooks attaches the given hook to the controller.
func (b Builder) WithAdditionalHooks(h hooking.Hook) Builder {
	b.hooks = append(b.hooks, h)
	return b
}

// Build builds a controller in the post-reset state.
func (b Builder) Build(name string) *Comp {
	b.dataWidthMustBeSupported()
	b.geometryMustBeAddressable()
	b.phasesMustFitCycleWindow()

	c := &Comp{
		NamedBase: naming.MakeNamedBase(name),
		mapper:    addrmap.MakeMapper(b.dataWidth, b.rowWidth, b.colWidth),
		arbiter:   arbit.MakeArbiter(),
		dataPath:  datapath.MakeDataPath(b.dataWidth),
		initSeq:   initseq.NewSequencer(b.casLatency),
		casPhase:  b.rasToCas,
		dataPhase: b.rasToCas + b.casLatency + 1,
	}

	for _, h := range b.hooks {
		c.AcceptHook(h)
	}

	return c
}

func (b Builder) dataWidthMustBeSupported() {
	if b.dataWidth != 16 && b.dataWidth != 32 {
		panic(fmt.Sprintf("data width %d is not supported, "+
			"only 16 and 32 are", b.dataWidth))
	}
}

func (b Builder) geometryMustBeAddressable() {
	if b.rowWidth < 1 || b.colWidth < 1 {
		panic("row and column widths must be at least 1")
	}

	shift := 0
	if b.dataWidth == 32 {
		shift = 1
	}

	fieldBits := b.colWidth + b.rowWidth + 2 + shift
	if b.addrWidth > fieldBits {
		panic(fmt.Sprintf(
			"address width %d exceeds the %d bits covered by "+
				"bank, row, and column fields", b.addrWidth, fieldBits))
	}
}

func (b Builder) phasesMustFitCycleWindow() {
	if b.rasToCas < 1 {
		panic("RAS-to-CAS delay must be at least 1")
	}

	if b.casLatency < 1 {
		panic("CAS latency must be at least 1")
	}

	dataPhase := b.rasToCas + b.casLatency + 1
	if dataPhase > phaseLast {
		panic(fmt.Sprintf(
			"data-latch phase %d falls outside the 0..%d cycle window",
			dataPhase, phaseLast))
	}
}
