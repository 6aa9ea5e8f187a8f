package arena

// HandleCheck decides whether an offset and length pair presented by a
// consumer still names a live allocation. Allocator.Make consults it before
// re-wrapping a raw pair into a Memory handle.
//
// The allocator walks its own chunk list by default. Consumers that already
// track their buffers elsewhere (see store.BufferRegistry) can substitute
// that bookkeeping via CreateOptions.
type HandleCheck interface {
	// ConfirmLive returns true when a live allocation begins at offset and
	// spans exactly length bytes.
	ConfirmLive(offset, length int) bool
}

type chunkListCheck struct {
	list *chunkList
}

var _ HandleCheck = &chunkListCheck{}

func (c *chunkListCheck) ConfirmLive(offset, length int) bool {
	found := c.list.locate(offset, length)
	return found != nil && !found.IsFree()
}
