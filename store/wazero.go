package store

import (
	"github.com/tetratelabs/wazero/api"
)

// WazeroMemory adapts the linear memory of a live wazero module instance to the Store
// interface, letting an arena allocator manage guest memory directly. All methods
// delegate to api.Memory, which bounds-checks against the current memory size; this
// type only rejects positions that cannot be represented as uint32.
type WazeroMemory struct {
	mem api.Memory
}

var _ Store = &WazeroMemory{}

// WrapWazero wraps a wazero api.Memory in a Store
func WrapWazero(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

func (m *WazeroMemory) Size() int {
	return int(m.mem.Size())
}

func (m *WazeroMemory) Grow(deltaPages int) (int, bool) {
	if deltaPages < 0 {
		return 0, false
	}
	previousPages, ok := m.mem.Grow(uint32(deltaPages))
	return int(previousPages), ok
}

func (m *WazeroMemory) ReadByte(position int) (byte, bool) {
	if position < 0 {
		return 0, false
	}
	return m.mem.ReadByte(uint32(position))
}

func (m *WazeroMemory) ReadUint32Le(position int) (uint32, bool) {
	if position < 0 {
		return 0, false
	}
	return m.mem.ReadUint32Le(uint32(position))
}

func (m *WazeroMemory) ReadUint64Le(position int) (uint64, bool) {
	if position < 0 {
		return 0, false
	}
	return m.mem.ReadUint64Le(uint32(position))
}

func (m *WazeroMemory) ReadFloat64Le(position int) (float64, bool) {
	if position < 0 {
		return 0, false
	}
	return m.mem.ReadFloat64Le(uint32(position))
}

func (m *WazeroMemory) WriteByte(position int, value byte) bool {
	if position < 0 {
		return false
	}
	return m.mem.WriteByte(uint32(position), value)
}

func (m *WazeroMemory) WriteUint32Le(position int, value uint32) bool {
	if position < 0 {
		return false
	}
	return m.mem.WriteUint32Le(uint32(position), value)
}

func (m *WazeroMemory) WriteUint64Le(position int, value uint64) bool {
	if position < 0 {
		return false
	}
	return m.mem.WriteUint64Le(uint32(position), value)
}

func (m *WazeroMemory) WriteFloat64Le(position int, value float64) bool {
	if position < 0 {
		return false
	}
	return m.mem.WriteFloat64Le(uint32(position), value)
}

func (m *WazeroMemory) Read(position, length int) ([]byte, bool) {
	if position < 0 || length < 0 {
		return nil, false
	}
	return m.mem.Read(uint32(position), uint32(length))
}

func (m *WazeroMemory) Write(position int, data []byte) bool {
	if position < 0 {
		return false
	}
	return m.mem.Write(uint32(position), data)
}

func (m *WazeroMemory) Copy(dstPosition, srcPosition, length int) bool {
	if dstPosition < 0 || srcPosition < 0 || length < 0 {
		return false
	}
	if length == 0 {
		return true
	}

	// api.Memory.Read returns views of the same underlying buffer, so the builtin
	// copy gives memmove semantics for overlapping spans.
	src, ok := m.mem.Read(uint32(srcPosition), uint32(length))
	if !ok {
		return false
	}
	dst, ok := m.mem.Read(uint32(dstPosition), uint32(length))
	if !ok {
		return false
	}
	copy(dst, src)
	return true
}
