package device

import "errors"

// storageUnitSize is the allocation granularity of the backing store.
const storageUnitSize = 4096

// A Storage holds the cell contents of the modeled device. Units are
// allocated lazily, so a mostly-untouched array costs almost nothing.
type Storage struct {
	capacity uint64
	units    map[uint64][]byte
}

// NewStorage creates a storage with the given capacity in bytes.
func NewStorage(capacity uint64) *Storage {
	return &Storage{
		capacity: capacity,
		units:    make(map[uint64][]byte),
	}
}

// Capacity returns the storage capacity in bytes.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) unitFor(addr uint64) ([]byte, uint64, error) {
	if addr >= s.capacity {
		return nil, 0, errors.New("address beyond storage capacity")
	}

	inUnit := addr % storageUnitSize
	base := addr - inUnit

	unit, ok := s.units[base]
	if !ok {
		unit = make([]byte, storageUnitSize)
		s.units[base] = unit
	}

	return unit, inUnit, nil
}

// Read copies n bytes starting at addr. Accesses may span units.
func (s *Storage) Read(addr, n uint64) ([]byte, error) {
	out := make([]byte, n)

	for done := uint64(0); done < n; {
		unit, inUnit, err := s.unitFor(addr + done)
		if err != nil {
			return nil, err
		}

		chunk := copy(out[done:], unit[inUnit:])
		done += uint64(chunk)
	}

	return out, nil
}

// Write stores data starting at addr. Accesses may span units.
func (s *Storage) Write(addr uint64, data []byte) error {
	for done := 0; done < len(data); {
		unit, inUnit, err := s.unitFor(addr + uint64(done))
		if err != nil {
			return err
		}

		chunk := copy(unit[inUnit:], data[done:])
		done += chunk
	}

	return nil
}
