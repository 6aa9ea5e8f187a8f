package arena

import (
	cerrors "github.com/cockroachdb/errors"
	"github.com/pkg/errors"
	"github.com/wasmutils/linheap"
	"github.com/wasmutils/linheap/store"
)

// chunkList tracks how the bytes of a backing store are partitioned between
// allocations and free space. Chunks are kept in a doubly-linked list ordered
// by offset, adjacent free chunks are always merged, and the chunk offsets and
// lengths always tile the store exactly, so walking the list visits every byte
// of the store once.
type chunkList struct {
	head *chunk
	tail *chunk

	size       int
	chunkCount int
	allocCount int
	freeCount  int
	freeSize   int
}

// init prepares the list for allocations. A store with any bytes at all
// begins life as a single free chunk spanning all of them.
func (l *chunkList) init(size int) {
	l.size = size

	if size <= 0 {
		return
	}

	c := newChunk()
	c.length = size
	c.MarkFree()

	l.head = c
	l.tail = c
	l.chunkCount = 1
	l.freeCount = 1
	l.freeSize = size
}

func (l *chunkList) markTaken(c *chunk) {
	if !c.IsFree() {
		panic("chunk is already occupied")
	}

	c.MarkTaken()
	l.allocCount++
	l.freeCount--
	l.freeSize -= c.length
}

func (l *chunkList) markFree(c *chunk) {
	if c.IsFree() {
		panic("chunk is already free")
	}

	c.MarkFree()
	l.allocCount--
	l.freeCount++
	l.freeSize += c.length
}

// split carves the last c.length-length bytes of c into a new free chunk
// placed directly after c, and returns the new chunk. When length is not
// smaller than c.length there is nothing to carve and split returns nil.
func (l *chunkList) split(c *chunk, length int) *chunk {
	if length <= 0 {
		panic("cannot split a chunk at a non-positive length")
	}
	if length >= c.length {
		return nil
	}

	tail := newChunk()
	tail.offset = c.offset + length
	tail.length = c.length - length
	tail.MarkFree()

	c.length = length

	tail.prev = c
	tail.next = c.next
	if tail.next != nil {
		tail.next.prev = tail
	} else {
		l.tail = tail
	}
	c.next = tail

	l.chunkCount++
	l.freeCount++
	if !c.IsFree() {
		l.freeSize += tail.length
	}

	return tail
}

// mergeNext absorbs c's successor into c. The successor must be free and
// physically adjacent. c keeps its offset and grows by the successor's
// length, so handles naming c remain valid across the merge.
func (l *chunkList) mergeNext(c *chunk) {
	next := c.next
	if next == nil {
		panic("cannot merge the final chunk with its successor")
	}
	if c.offset+c.length != next.offset {
		panic("cannot merge separate physical regions")
	}
	if !next.IsFree() {
		panic("cannot absorb an occupied chunk")
	}

	c.length += next.length
	c.next = next.next
	if c.next != nil {
		c.next.prev = c
	} else {
		l.tail = c
	}

	l.chunkCount--
	l.freeCount--
	if !c.IsFree() {
		l.freeSize -= next.length
	}

	recycleChunk(next)
}

// grow asks the backing store for enough whole pages to cover minSize
// additional bytes, plus one extra page of headroom. On success the free tail
// chunk is widened to cover the new bytes, or a new free tail chunk is
// appended when the store previously ended in an allocation. On failure the
// list is left untouched.
func (l *chunkList) grow(s store.Store, minSize int) error {
	deltaPages := minSize/store.PageSize + 1
	currentPages := l.size / store.PageSize

	_, ok := s.Grow(deltaPages)
	if !ok {
		return cerrors.Wrapf(linheap.OutOfMemoryError, "linear store grow error: from %d pages to %d pages", currentPages, currentPages+deltaPages)
	}

	grown := deltaPages * store.PageSize

	if l.tail != nil && l.tail.IsFree() {
		l.tail.length += grown
		l.freeSize += grown
	} else {
		c := newChunk()
		c.offset = l.size
		c.length = grown
		c.MarkFree()

		c.prev = l.tail
		if l.tail != nil {
			l.tail.next = c
		} else {
			l.head = c
		}
		l.tail = c

		l.chunkCount++
		l.freeCount++
		l.freeSize += grown
	}

	l.size += grown

	return nil
}

// firstFit returns the lowest-offset free chunk that can hold size bytes, or
// nil when no free chunk is large enough.
func (l *chunkList) firstFit(size int) *chunk {
	for c := l.head; c != nil; c = c.next {
		if c.IsFree() && c.length >= size {
			return c
		}
	}

	return nil
}

// locate returns the chunk spanning exactly [offset, offset+length). The walk
// proceeds in address order and stops as soon as it passes offset. A chunk at
// the right offset with the wrong length means the caller's handle is stale,
// so locate returns nil rather than walking further.
func (l *chunkList) locate(offset, length int) *chunk {
	for c := l.head; c != nil; c = c.next {
		if c.offset > offset {
			return nil
		}

		if c.offset == offset {
			if c.length != length {
				return nil
			}

			return c
		}
	}

	return nil
}

// Validate performs internal consistency checks on the chunk list. These
// checks walk the full list, so they are not cheap. When the implementation
// is functioning correctly, it should not be possible for this method to
// return an error, but this may assist in diagnosing issues with the
// implementation.
func (l *chunkList) Validate() error {
	if l.head == nil {
		if l.tail != nil {
			return errors.New("the chunk list has no head, but a tail is present")
		}
		if l.chunkCount != 0 || l.allocCount != 0 || l.freeCount != 0 || l.freeSize != 0 {
			return errors.New("the chunk list is empty, but its counters are not zero")
		}
		if l.size != 0 {
			return errors.Errorf("the chunk list is empty, but it claims to span %d bytes", l.size)
		}

		return nil
	}

	if l.head.offset != 0 {
		return errors.Errorf("the first chunk should begin at offset 0, but begins at offset %d", l.head.offset)
	}
	if l.head.prev != nil {
		return errors.New("the first chunk has a predecessor")
	}

	var chunkCount, allocCount, freeCount, freeSize, expectedOffset int

	for c := l.head; c != nil; c = c.next {
		if c.length <= 0 {
			return errors.Errorf("the chunk at offset %d spans %d bytes, but every chunk must span at least one byte", c.offset, c.length)
		}
		if c.offset != expectedOffset {
			return errors.Errorf("the chunk at offset %d should begin at offset %d- the chunks no longer tile the store", c.offset, expectedOffset)
		}
		if c.next != nil && c.next.prev != c {
			return errors.Errorf("the chunk at offset %d points to a successor, but the reverse reference is broken", c.offset)
		}
		if c.next == nil && c != l.tail {
			return errors.Errorf("the chunk at offset %d is the last in the chain, but the list tail points elsewhere", c.offset)
		}

		if c.IsFree() {
			freeCount++
			freeSize += c.length

			if c.next != nil && c.next.IsFree() {
				return errors.Errorf("the free chunk at offset %d is adjacent to another free chunk- they should have been merged", c.offset)
			}
		} else {
			allocCount++
		}

		chunkCount++
		expectedOffset = c.offset + c.length
	}

	if expectedOffset != l.size {
		return errors.Errorf("the final chunk ends at offset %d, but the chunk list spans %d bytes", expectedOffset, l.size)
	}
	if chunkCount != l.chunkCount {
		return errors.Errorf("counted %d chunks, but metadata indicates we should have %d", chunkCount, l.chunkCount)
	}
	if allocCount != l.allocCount {
		return errors.Errorf("counted %d allocations, but metadata indicates we should have %d", allocCount, l.allocCount)
	}
	if freeCount != l.freeCount {
		return errors.Errorf("counted %d free chunks, but metadata indicates we should have %d", freeCount, l.freeCount)
	}
	if freeSize != l.freeSize {
		return errors.Errorf("counted %d free bytes, but metadata indicates we should have %d", freeSize, l.freeSize)
	}

	return nil
}

// VisitAllChunks calls the provided callback once for each allocation and
// free span in the list, in address order.
func (l *chunkList) VisitAllChunks(handleChunk func(offset, length int, free bool) error) error {
	for c := l.head; c != nil; c = c.next {
		err := handleChunk(c.offset, c.length, c.IsFree())
		if err != nil {
			return err
		}
	}

	return nil
}

// Clear instantly frees all allocations, leaving a single free chunk that
// spans the entire backing store.
func (l *chunkList) Clear() {
	for c := l.head; c != nil; {
		next := c.next
		recycleChunk(c)
		c = next
	}

	l.head = nil
	l.tail = nil
	l.chunkCount = 0
	l.allocCount = 0
	l.freeCount = 0
	l.freeSize = 0

	l.init(l.size)
}

// AddDetailedStatistics sums this arena's allocation statistics into the
// statistics currently present in the provided linheap.DetailedStatistics
// object.
func (l *chunkList) AddDetailedStatistics(stats *linheap.DetailedStatistics) {
	stats.Statistics.ArenaCount++
	stats.Statistics.ArenaBytes += l.size

	_ = l.VisitAllChunks(
		func(offset, length int, free bool) error {
			if free {
				stats.AddUnusedRange(length)
			} else {
				stats.AddAllocation(length)
			}

			return nil
		})
}

// AddStatistics sums this arena's allocation statistics into the statistics
// currently present in the provided linheap.Statistics object.
func (l *chunkList) AddStatistics(stats *linheap.Statistics) {
	stats.ArenaCount++
	stats.ArenaBytes += l.size
	stats.AllocationCount += l.allocCount
	stats.AllocationBytes += l.size - l.freeSize
}
