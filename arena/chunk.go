package arena

import "sync"

var chunkAllocator = sync.Pool{
	New: func() any {
		return &chunk{}
	},
}

// chunk is a single span of the backing store, either occupied by one
// allocation or free. Chunks live in a chunkList, ordered by offset, and
// every byte of the store belongs to exactly one chunk.
type chunk struct {
	offset int
	length int
	taken  bool

	prev *chunk
	next *chunk
}

func newChunk() *chunk {
	c := chunkAllocator.Get().(*chunk)
	c.offset = 0
	c.length = 0
	c.taken = false
	c.prev = nil
	c.next = nil
	return c
}

func recycleChunk(c *chunk) {
	chunkAllocator.Put(c)
}

func (c *chunk) MarkFree() {
	c.taken = false
}

func (c *chunk) MarkTaken() {
	c.taken = true
}

func (c *chunk) IsFree() bool {
	return !c.taken
}
