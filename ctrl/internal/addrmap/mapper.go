// Package addrmap decomposes flat client word addresses into the
// bank, row, and column fields presented on the device address lines.
package addrmap

// A Location is the position of one access unit inside the device.
type Location struct {
	Bank uint8
	Row  uint32
	Col  uint32
}

// Mapper converts client word addresses to locations and back.
type Mapper interface {
	Map(addr uint32) Location
	Unmap(loc Location) uint32
}

// MakeMapper creates a mapper for the given geometry. When the data
// bus is 32 bits wide each device location holds two 16-bit client
// words, so the client address is shifted right by one before field
// extraction; the dropped bit selects the half-word within the
// location.
func MakeMapper(dataWidth, rowWidth, colWidth int) Mapper {
	m := mapperImpl{
		rowWidth: uint(rowWidth),
		colWidth: uint(colWidth),
	}

	if dataWidth == 32 {
		m.shift = 1
	}

	return m
}

type mapperImpl struct {
	shift    uint
	rowWidth uint
	colWidth uint
}

func (m mapperImpl) Map(addr uint32) Location {
	internal := addr >> m.shift

	loc := Location{}
	loc.Col = internal & mask(m.colWidth)
	loc.Row = (internal >> m.colWidth) & mask(m.rowWidth)
	loc.Bank = uint8((internal >> (m.colWidth + m.rowWidth)) & 0x3)

	return loc
}

func (m mapperImpl) Unmap(loc Location) uint32 {
	internal := uint32(loc.Bank)<<(m.colWidth+m.rowWidth) |
		loc.Row<<m.colWidth |
		loc.Col

	return internal << m.shift
}

func mask(width uint) uint32 {
	return (1 << width) - 1
}
