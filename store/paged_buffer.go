package store

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// PagedBuffer is a Store backed by an ordinary byte slice that grows in whole pages up
// to a fixed page cap. It is the backing store to use when the arena is process-local
// rather than owned by a WebAssembly host.
type PagedBuffer struct {
	data     []byte
	maxPages int
}

var _ Store = &PagedBuffer{}

// NewPagedBuffer creates a zero-filled buffer of initialPages pages that can grow to
// maxPages pages. A maxPages of 0 applies DefaultMaxPages.
func NewPagedBuffer(initialPages, maxPages int) (*PagedBuffer, error) {
	if maxPages == 0 {
		maxPages = DefaultMaxPages
	}
	if maxPages < 0 {
		return nil, errors.Errorf("maxPages is %d, but a page cap cannot be negative", maxPages)
	}
	if initialPages < 0 {
		return nil, errors.Errorf("initialPages is %d, but a buffer cannot have a negative number of pages", initialPages)
	}
	if initialPages > maxPages {
		return nil, errors.Errorf("initialPages is %d, which is beyond the page cap %d", initialPages, maxPages)
	}

	return &PagedBuffer{
		data:     make([]byte, initialPages*PageSize),
		maxPages: maxPages,
	}, nil
}

func (b *PagedBuffer) hasRange(position, length int) bool {
	return position >= 0 && length >= 0 && position <= len(b.data)-length
}

func (b *PagedBuffer) Size() int {
	return len(b.data)
}

func (b *PagedBuffer) Grow(deltaPages int) (int, bool) {
	if deltaPages < 0 {
		return 0, false
	}

	currentPages := len(b.data) / PageSize
	if deltaPages > b.maxPages-currentPages {
		return 0, false
	}

	b.data = append(b.data, make([]byte, deltaPages*PageSize)...)
	return currentPages, true
}

func (b *PagedBuffer) ReadByte(position int) (byte, bool) {
	if !b.hasRange(position, 1) {
		return 0, false
	}
	return b.data[position], true
}

func (b *PagedBuffer) ReadUint32Le(position int) (uint32, bool) {
	if !b.hasRange(position, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b.data[position:]), true
}

func (b *PagedBuffer) ReadUint64Le(position int) (uint64, bool) {
	if !b.hasRange(position, 8) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b.data[position:]), true
}

func (b *PagedBuffer) ReadFloat64Le(position int) (float64, bool) {
	bits, ok := b.ReadUint64Le(position)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(bits), true
}

func (b *PagedBuffer) WriteByte(position int, value byte) bool {
	if !b.hasRange(position, 1) {
		return false
	}
	b.data[position] = value
	return true
}

func (b *PagedBuffer) WriteUint32Le(position int, value uint32) bool {
	if !b.hasRange(position, 4) {
		return false
	}
	binary.LittleEndian.PutUint32(b.data[position:], value)
	return true
}

func (b *PagedBuffer) WriteUint64Le(position int, value uint64) bool {
	if !b.hasRange(position, 8) {
		return false
	}
	binary.LittleEndian.PutUint64(b.data[position:], value)
	return true
}

func (b *PagedBuffer) WriteFloat64Le(position int, value float64) bool {
	return b.WriteUint64Le(position, math.Float64bits(value))
}

func (b *PagedBuffer) Read(position, length int) ([]byte, bool) {
	if !b.hasRange(position, length) {
		return nil, false
	}
	return b.data[position : position+length : position+length], true
}

func (b *PagedBuffer) Write(position int, data []byte) bool {
	if !b.hasRange(position, len(data)) {
		return false
	}
	copy(b.data[position:], data)
	return true
}

func (b *PagedBuffer) Copy(dstPosition, srcPosition, length int) bool {
	if !b.hasRange(dstPosition, length) || !b.hasRange(srcPosition, length) {
		return false
	}
	// copy is memmove for slices of one array, so overlapping spans are safe
	copy(b.data[dstPosition:dstPosition+length], b.data[srcPosition:srcPosition+length])
	return true
}
