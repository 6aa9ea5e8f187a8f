package store

import (
	"encoding/binary"
	"math"

	"github.com/tetratelabs/wazero/api"
)

// A guest memory backed by an ordinary byte slice, standing in for a live
// wazero module instance
type FakeGuestMemory struct {
	api.Memory

	Data     []byte
	MaxPages uint32
}

func NewFakeGuestMemory(pages, maxPages uint32) *FakeGuestMemory {
	return &FakeGuestMemory{
		Data:     make([]byte, pages*PageSize),
		MaxPages: maxPages,
	}
}

func (m *FakeGuestMemory) hasRange(offset, length uint32) bool {
	return uint64(offset)+uint64(length) <= uint64(len(m.Data))
}

func (m *FakeGuestMemory) Size() uint32 {
	return uint32(len(m.Data))
}

func (m *FakeGuestMemory) Grow(deltaPages uint32) (uint32, bool) {
	previousPages := uint32(len(m.Data)) / PageSize
	if previousPages+deltaPages > m.MaxPages {
		return 0, false
	}

	m.Data = append(m.Data, make([]byte, deltaPages*PageSize)...)
	return previousPages, true
}

func (m *FakeGuestMemory) ReadByte(offset uint32) (byte, bool) {
	if !m.hasRange(offset, 1) {
		return 0, false
	}
	return m.Data[offset], true
}

func (m *FakeGuestMemory) ReadUint32Le(offset uint32) (uint32, bool) {
	if !m.hasRange(offset, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(m.Data[offset:]), true
}

func (m *FakeGuestMemory) ReadUint64Le(offset uint32) (uint64, bool) {
	if !m.hasRange(offset, 8) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(m.Data[offset:]), true
}

func (m *FakeGuestMemory) ReadFloat64Le(offset uint32) (float64, bool) {
	value, ok := m.ReadUint64Le(offset)
	return math.Float64frombits(value), ok
}

func (m *FakeGuestMemory) WriteByte(offset uint32, value byte) bool {
	if !m.hasRange(offset, 1) {
		return false
	}
	m.Data[offset] = value
	return true
}

func (m *FakeGuestMemory) WriteUint32Le(offset uint32, value uint32) bool {
	if !m.hasRange(offset, 4) {
		return false
	}
	binary.LittleEndian.PutUint32(m.Data[offset:], value)
	return true
}

func (m *FakeGuestMemory) WriteUint64Le(offset uint32, value uint64) bool {
	if !m.hasRange(offset, 8) {
		return false
	}
	binary.LittleEndian.PutUint64(m.Data[offset:], value)
	return true
}

func (m *FakeGuestMemory) WriteFloat64Le(offset uint32, value float64) bool {
	return m.WriteUint64Le(offset, math.Float64bits(value))
}

func (m *FakeGuestMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	if !m.hasRange(offset, byteCount) {
		return nil, false
	}
	return m.Data[offset : offset+byteCount : offset+byteCount], true
}

func (m *FakeGuestMemory) Write(offset uint32, data []byte) bool {
	if !m.hasRange(offset, uint32(len(data))) {
		return false
	}
	copy(m.Data[offset:], data)
	return true
}
