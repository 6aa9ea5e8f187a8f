package store

const (
	// PageSize is the granularity in bytes at which a Store grows. It matches the
	// WebAssembly linear memory page size.
	PageSize = 65536

	// DefaultMaxPages is the page cap applied to a PagedBuffer when no explicit cap
	// is provided. It places the end of the buffer at 4Gb, the limit of a 32-bit
	// address space.
	DefaultMaxPages = 65536
)

// Store is a single flat byte-addressable range of memory that an arena allocator
// manages: a WebAssembly instance's linear memory, a plain byte buffer, or anything
// else that can satisfy this interface. Positions are absolute byte offsets from the
// start of the range.
//
// The boolean results follow the conventions of wazero's api.Memory: an access that
// falls outside the current range returns false and performs no work, rather than
// returning an error or panicking.
type Store interface {
	// Size returns the current length of the range in bytes
	Size() int
	// Grow extends the range by deltaPages pages of PageSize bytes each, zero-filled.
	// It returns the size of the range in pages as it was before the call. If the
	// range cannot be extended, ok is false and the range is unchanged. Growth is
	// synchronous and atomic; a Store never shrinks.
	Grow(deltaPages int) (previousPages int, ok bool)

	// ReadByte reads a single byte at the provided position
	ReadByte(position int) (byte, bool)
	// ReadUint32Le reads a 32-bit integer in little-endian encoding at the provided position
	ReadUint32Le(position int) (uint32, bool)
	// ReadUint64Le reads a 64-bit integer in little-endian encoding at the provided position
	ReadUint64Le(position int) (uint64, bool)
	// ReadFloat64Le reads an IEEE 754 double at the provided position. The bit pattern
	// is identical to that of ReadUint64Le at the same position.
	ReadFloat64Le(position int) (float64, bool)

	// WriteByte writes a single byte at the provided position
	WriteByte(position int, value byte) bool
	// WriteUint32Le writes a 32-bit integer in little-endian encoding at the provided position
	WriteUint32Le(position int, value uint32) bool
	// WriteUint64Le writes a 64-bit integer in little-endian encoding at the provided position
	WriteUint64Le(position int, value uint64) bool
	// WriteFloat64Le writes an IEEE 754 double at the provided position. The bit pattern
	// is identical to that of WriteUint64Le with the same bits.
	WriteFloat64Le(position int, value float64) bool

	// Read returns a view of length bytes beginning at the provided position. The view
	// aliases the underlying range: writes through it are visible to other readers, and
	// it is only valid until the next call to Grow. Callers that need an owned copy must
	// copy out of the view themselves.
	Read(position, length int) ([]byte, bool)
	// Write copies the provided bytes into the range beginning at the provided position
	Write(position int, data []byte) bool

	// Copy moves length bytes from srcPosition to dstPosition within the range. The two
	// spans may overlap; the result must be as if the source bytes were first read in
	// full and then written.
	Copy(dstPosition, srcPosition, length int) bool
}
