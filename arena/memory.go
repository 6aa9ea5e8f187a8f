package arena

import (
	cerrors "github.com/cockroachdb/errors"
	"github.com/wasmutils/linheap"
)

// Memory is a handle to a single allocation within an arena. It carries the
// allocation's offset and length and provides typed access to the allocation's
// bytes. All multi-byte values are read and written little-endian, regardless
// of the host's byte order.
//
// A Memory remains usable until its allocation is freed or reallocated. The
// zero Memory names no bytes: every typed access fails with
// linheap.OutOfBoundsError, LoadBytes returns an empty slice, and StoreBytes
// ignores its input.
type Memory struct {
	alloc  *Allocator
	offset int
	length int
}

// Offset returns the position of the allocation's first byte within the
// backing store.
func (m Memory) Offset() int {
	return m.offset
}

// Length returns the allocation's size in bytes.
func (m Memory) Length() int {
	return m.length
}

func (m Memory) boundsError(offset, width int) error {
	return cerrors.Wrapf(linheap.OutOfBoundsError, "access of %d bytes at offset %d in an allocation %d bytes long", width, offset, m.length)
}

func (m Memory) boundsCheck(offset, width int) error {
	if offset < 0 || width > m.length-offset {
		return m.boundsError(offset, width)
	}

	return nil
}

// Load8 reads the byte at offset within the allocation.
func (m Memory) Load8(offset int) (byte, error) {
	err := m.boundsCheck(offset, 1)
	if err != nil {
		return 0, err
	}

	value, ok := m.alloc.store.ReadByte(m.offset + offset)
	if !ok {
		return 0, m.boundsError(offset, 1)
	}

	return value, nil
}

// Store8 writes a byte at offset within the allocation.
func (m Memory) Store8(offset int, value byte) error {
	err := m.boundsCheck(offset, 1)
	if err != nil {
		return err
	}

	if !m.alloc.store.WriteByte(m.offset+offset, value) {
		return m.boundsError(offset, 1)
	}

	return nil
}

// Load32 reads the four bytes beginning at offset within the allocation as a
// little-endian unsigned integer.
func (m Memory) Load32(offset int) (uint32, error) {
	err := m.boundsCheck(offset, 4)
	if err != nil {
		return 0, err
	}

	value, ok := m.alloc.store.ReadUint32Le(m.offset + offset)
	if !ok {
		return 0, m.boundsError(offset, 4)
	}

	return value, nil
}

// Store32 writes a little-endian unsigned integer into the four bytes
// beginning at offset within the allocation.
func (m Memory) Store32(offset int, value uint32) error {
	err := m.boundsCheck(offset, 4)
	if err != nil {
		return err
	}

	if !m.alloc.store.WriteUint32Le(m.offset+offset, value) {
		return m.boundsError(offset, 4)
	}

	return nil
}

// Load64 reads the eight bytes beginning at offset within the allocation as a
// little-endian unsigned integer.
func (m Memory) Load64(offset int) (uint64, error) {
	err := m.boundsCheck(offset, 8)
	if err != nil {
		return 0, err
	}

	value, ok := m.alloc.store.ReadUint64Le(m.offset + offset)
	if !ok {
		return 0, m.boundsError(offset, 8)
	}

	return value, nil
}

// Store64 writes a little-endian unsigned integer into the eight bytes
// beginning at offset within the allocation.
func (m Memory) Store64(offset int, value uint64) error {
	err := m.boundsCheck(offset, 8)
	if err != nil {
		return err
	}

	if !m.alloc.store.WriteUint64Le(m.offset+offset, value) {
		return m.boundsError(offset, 8)
	}

	return nil
}

// LoadFloat64 reads the eight bytes beginning at offset within the allocation
// as a little-endian IEEE 754 double. The bytes are reinterpreted, not
// converted, so a round trip through Store64 and LoadFloat64 preserves the
// exact bit pattern.
func (m Memory) LoadFloat64(offset int) (float64, error) {
	err := m.boundsCheck(offset, 8)
	if err != nil {
		return 0, err
	}

	value, ok := m.alloc.store.ReadFloat64Le(m.offset + offset)
	if !ok {
		return 0, m.boundsError(offset, 8)
	}

	return value, nil
}

// StoreFloat64 writes a little-endian IEEE 754 double into the eight bytes
// beginning at offset within the allocation.
func (m Memory) StoreFloat64(offset int, value float64) error {
	err := m.boundsCheck(offset, 8)
	if err != nil {
		return err
	}

	if !m.alloc.store.WriteFloat64Le(m.offset+offset, value) {
		return m.boundsError(offset, 8)
	}

	return nil
}

// LoadBytes copies the allocation's entire contents out of the backing store
// and returns them as a fresh slice. Mutating the returned slice has no effect
// on the store.
func (m Memory) LoadBytes() ([]byte, error) {
	if m.length <= 0 {
		return []byte{}, nil
	}

	view, ok := m.alloc.store.Read(m.offset, m.length)
	if !ok {
		return nil, m.boundsError(0, m.length)
	}

	data := make([]byte, m.length)
	copy(data, view)

	return data, nil
}

// StoreBytes copies bytes from src into the allocation, beginning at the
// allocation's first byte. When src is longer than the allocation the copy
// stops at the allocation's end and the excess source bytes are silently
// ignored. When src is shorter, the allocation's remaining bytes are left
// untouched.
func (m Memory) StoreBytes(src []byte) error {
	n := m.length
	if len(src) < n {
		n = len(src)
	}
	if n <= 0 {
		return nil
	}

	if !m.alloc.store.Write(m.offset, src[:n]) {
		return m.boundsError(0, n)
	}

	return nil
}
