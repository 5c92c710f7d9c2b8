package vm

import "encoding/binary"

// Memory is the flat byte-addressable address space: a single MemSize-byte
// array with no segments or permissions. Every multi-byte access is
// little-endian. Reads or writes that would touch any byte at or beyond
// MemSize fail with ErrMemoryOutOfBounds and leave memory unchanged.
type Memory struct {
	bytes [MemSize]byte
}

// NewMemory returns a zeroed Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Reset zeroes every byte.
func (m *Memory) Reset() {
	for i := range m.bytes {
		m.bytes[i] = 0
	}
}

func (m *Memory) bounds(addr uint32, size uint32) error {
	if uint64(addr)+uint64(size) > uint64(len(m.bytes)) {
		return errOutOfBounds(addr)
	}
	return nil
}

// ReadByte reads one byte at addr.
func (m *Memory) ReadByte(addr uint32) (uint8, error) {
	if err := m.bounds(addr, 1); err != nil {
		return 0, err
	}
	return m.bytes[addr], nil
}

// ReadHalf reads a little-endian 16-bit value at addr.
func (m *Memory) ReadHalf(addr uint32) (uint16, error) {
	if err := m.bounds(addr, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(m.bytes[addr:]), nil
}

// ReadWord reads a little-endian 32-bit value at addr.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	if err := m.bounds(addr, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.bytes[addr:]), nil
}

// ReadDWord reads a little-endian 64-bit value at addr.
func (m *Memory) ReadDWord(addr uint32) (uint64, error) {
	if err := m.bounds(addr, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.bytes[addr:]), nil
}

// WriteByte writes one byte at addr.
func (m *Memory) WriteByte(addr uint32, v uint8) error {
	if err := m.bounds(addr, 1); err != nil {
		return err
	}
	m.bytes[addr] = v
	return nil
}

// WriteHalf writes a little-endian 16-bit value at addr.
func (m *Memory) WriteHalf(addr uint32, v uint16) error {
	if err := m.bounds(addr, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(m.bytes[addr:], v)
	return nil
}

// WriteWord writes a little-endian 32-bit value at addr.
func (m *Memory) WriteWord(addr uint32, v uint32) error {
	if err := m.bounds(addr, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.bytes[addr:], v)
	return nil
}

// WriteDWord writes a little-endian 64-bit value at addr.
func (m *Memory) WriteDWord(addr uint32, v uint64) error {
	if err := m.bounds(addr, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.bytes[addr:], v)
	return nil
}

// Snapshot returns a copy of the entire address space.
func (m *Memory) Snapshot() []byte {
	out := make([]byte, len(m.bytes))
	copy(out, m.bytes[:])
	return out
}

// LoadProgram copies words into memory starting at address 0, little-endian.
// It fails if the program does not fit in MemSize.
func (m *Memory) LoadProgram(words []uint32) error {
	if 4*len(words) > len(m.bytes) {
		return errOutOfBounds(uint32(4 * len(words)))
	}
	for i, w := range words {
		binary.LittleEndian.PutUint32(m.bytes[4*i:], w)
	}
	return nil
}
