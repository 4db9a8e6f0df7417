// Package datapath computes the data-bus side of an access: write
// replication, DQM byte masks, and read half-word selection.
package datapath

// A DataPath stages write data and selects read data for one bus
// width. All methods are pure; the controller holds the staged values.
type DataPath interface {
	// ReplicateWrite spreads the 16-bit client write value across the
	// full bus width so the mask can select the target half.
	ReplicateWrite(data uint16) uint32

	// Mask returns the DQM lines for an access. Reads enable every
	// byte. Writes place the two client strobes in the half selected
	// by the address LSB and mask the other half off entirely.
	Mask(isWrite bool, strobe uint8, addrLSB uint32) uint8

	// SelectRead picks the half-word addressed by the client out of
	// the value captured from the bus at the data-latch phase.
	SelectRead(busValue uint32, addrLSB uint32) uint16
}

// MakeDataPath creates the data path for a 16- or 32-bit bus.
func MakeDataPath(dataWidth int) DataPath {
	if dataWidth == 32 {
		return widePath{}
	}

	return nativePath{}
}

// nativePath serves a bus as wide as the client word. Masks and data
// pass through unchanged.
type nativePath struct{}

func (nativePath) ReplicateWrite(data uint16) uint32 {
	return uint32(data)
}

func (nativePath) Mask(isWrite bool, strobe uint8, _ uint32) uint8 {
	if !isWrite {
		return 0
	}

	return strobe & 0x3
}

func (nativePath) SelectRead(busValue uint32, _ uint32) uint16 {
	return uint16(busValue)
}

// widePath serves a 32-bit bus holding two client words per location.
// The address LSB selects the half.
type widePath struct{}

func (widePath) ReplicateWrite(data uint16) uint32 {
	return uint32(data)<<16 | uint32(data)
}

func (widePath) Mask(isWrite bool, strobe uint8, addrLSB uint32) uint8 {
	if !isWrite {
		return 0
	}

	if addrLSB == 0 {
		return 0xC | strobe&0x3
	}

	return (strobe&0x3)<<2 | 0x3
}

func (widePath) SelectRead(busValue uint32, addrLSB uint32) uint16 {
	if addrLSB == 0 {
		return uint16(busValue)
	}

	return uint16(busValue >> 16)
}
