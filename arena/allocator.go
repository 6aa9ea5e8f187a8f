package arena

import (
	"context"
	"fmt"

	cerrors "github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/pkg/errors"
	"github.com/wasmutils/linheap"
	"github.com/wasmutils/linheap/internal/utils"
	"github.com/wasmutils/linheap/store"
	"golang.org/x/exp/slog"
)

// Allocator parcels a flat backing store out into non-overlapping allocations.
// It is the managing object for a single arena: every allocation made from it
// lives in the one store.Store it was created with, and the arena grows that
// store when an allocation cannot be placed in the bytes it already has.
type Allocator struct {
	logger *slog.Logger
	store  store.Store

	createFlags CreateFlags
	handleCheck HandleCheck

	mutex  utils.OptionalRWMutex
	chunks chunkList
}

// Allocate reserves size bytes of the backing store and returns a Memory handle
// for the reserved span. The arena places allocations in the lowest-offset free
// chunk that can hold them, and grows the backing store by whole pages when no
// free chunk is large enough. When the store cannot grow far enough, Allocate
// returns linheap.OutOfMemoryError and the arena is left unchanged.
func (a *Allocator) Allocate(size int) (Memory, error) {
	if size <= 0 {
		return Memory{}, cerrors.Wrapf(linheap.InvalidSizeError, "allocation request was for %d bytes", size)
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	mem, err := a.allocateLocked(size)
	if err != nil {
		return Memory{}, err
	}

	a.fillRange(mem.offset, mem.length, linheap.CreatedFillPattern)

	return mem, nil
}

func (a *Allocator) allocateLocked(size int) (Memory, error) {
	c := a.chunks.firstFit(size)
	if c == nil {
		err := a.chunks.grow(a.store, size)
		if err != nil {
			return Memory{}, err
		}

		a.logger.LogAttrs(context.Background(), slog.LevelDebug, "grew the backing store",
			slog.Int("size", a.chunks.size),
		)

		c = a.chunks.firstFit(size)
		if c == nil {
			panic("the backing store grew but no chunk can satisfy the allocation")
		}
	}

	a.chunks.split(c, size)
	a.chunks.markTaken(c)

	linheap.DebugValidate(&a.chunks)

	return Memory{alloc: a, offset: c.offset, length: c.length}, nil
}

// Free returns an allocation's bytes to the arena. Adjacent free chunks are
// merged immediately, so the freed bytes join any free neighbors to form a
// single reusable span. Freeing a handle that does not name a live allocation
// returns linheap.InvalidHandleError, and freeing one whose allocation was
// already freed returns linheap.DoubleFreeError.
func (a *Allocator) Free(mem Memory) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.freeLocked(mem.offset, mem.length)
}

func (a *Allocator) freeLocked(offset, length int) error {
	c := a.chunks.locate(offset, length)
	if c == nil {
		return cerrors.Wrapf(linheap.InvalidHandleError, "no chunk matches offset %d and length %d", offset, length)
	}
	if c.IsFree() {
		return cerrors.Wrapf(linheap.DoubleFreeError, "the chunk at offset %d has already been freed", offset)
	}

	a.fillRange(offset, length, linheap.DestroyedFillPattern)
	a.chunks.markFree(c)

	if c.prev != nil && c.prev.IsFree() {
		c = c.prev
		a.chunks.mergeNext(c)
	}
	if c.next != nil && c.next.IsFree() {
		a.chunks.mergeNext(c)
	}

	linheap.DebugValidate(&a.chunks)

	return nil
}

// Reallocate resizes an allocation to newLength bytes, preserving its leading
// bytes, and returns the handle for the resized allocation. The old handle must
// not be used afterward. The allocation keeps its offset whenever the resized
// span still fits there, and is moved elsewhere in the backing store when it
// does not.
//
// A handle with no bytes behaves as a fresh Allocate, and a newLength of zero
// or fewer bytes behaves as Free. On failure the arena is left unchanged and
// the old handle remains live.
//
// alignment is accepted for consumers that track one, but the arena does not
// place allocations at alignments beyond their natural offsets.
func (a *Allocator) Reallocate(mem Memory, alignment uint, newLength int) (Memory, error) {
	linheap.DebugCheckPow2(alignment, "alignment")

	if mem.length <= 0 {
		return a.Allocate(newLength)
	}
	if newLength <= 0 {
		err := a.Free(mem)
		return Memory{}, err
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	c := a.chunks.locate(mem.offset, mem.length)
	if c == nil || c.IsFree() {
		return Memory{}, cerrors.Wrapf(linheap.InvalidHandleError, "no chunk matches offset %d and length %d", mem.offset, mem.length)
	}

	if newLength == mem.length {
		return Memory{alloc: a, offset: mem.offset, length: mem.length}, nil
	}
	if newLength < mem.length {
		return a.shrinkLocked(c, mem, newLength), nil
	}

	return a.growLocked(c, mem, newLength)
}

func (a *Allocator) shrinkLocked(c *chunk, mem Memory, newLength int) Memory {
	// Absorb a free successor first so the released bytes and the existing free
	// span end up as a single free chunk
	if c.next != nil && c.next.IsFree() {
		a.chunks.mergeNext(c)
	}
	a.chunks.split(c, newLength)

	a.fillRange(mem.offset+newLength, mem.length-newLength, linheap.DestroyedFillPattern)
	linheap.DebugValidate(&a.chunks)

	return Memory{alloc: a, offset: mem.offset, length: newLength}
}

func (a *Allocator) growLocked(c *chunk, mem Memory, newLength int) (Memory, error) {
	// Fold the allocation's chunk together with its free neighbors to find the
	// largest contiguous run that includes the allocation's bytes
	a.chunks.markFree(c)
	if c.prev != nil && c.prev.IsFree() {
		c = c.prev
		a.chunks.mergeNext(c)
	}
	if c.next != nil && c.next.IsFree() {
		a.chunks.mergeNext(c)
	}

	if c.length >= newLength {
		a.chunks.markTaken(c)
		a.chunks.split(c, newLength)

		// The run cannot begin past the allocation it absorbed, so the copy
		// always moves bytes toward the start of the store
		if c.offset != mem.offset && !a.store.Copy(c.offset, mem.offset, mem.length) {
			panic("failed to copy allocation contents within the backing store")
		}

		linheap.DebugValidate(&a.chunks)

		return Memory{alloc: a, offset: c.offset, length: newLength}, nil
	}

	newMem, err := a.allocateLocked(newLength)
	if err != nil {
		a.restoreOccupied(c, mem)
		return Memory{}, err
	}

	if !a.store.Copy(newMem.offset, mem.offset, mem.length) {
		panic("failed to copy allocation contents within the backing store")
	}

	linheap.DebugValidate(&a.chunks)

	return newMem, nil
}

// restoreOccupied carves the original allocation back out of the free run it
// was folded into, leaving the chunk list exactly as it was before the
// reallocation was attempted.
func (a *Allocator) restoreOccupied(run *chunk, mem Memory) {
	c := run
	if mem.offset > run.offset {
		c = a.chunks.split(run, mem.offset-run.offset)
	}
	if c.length > mem.length {
		a.chunks.split(c, mem.length)
	}

	a.chunks.markTaken(c)
	linheap.DebugValidate(&a.chunks)
}

// Make builds a Memory handle from a raw offset and length pair. Consumers that
// serialize handles, or that receive them from code which cannot carry a Memory
// value, use Make to revalidate the pair against the arena's bookkeeping before
// touching the bytes. A pair that does not name a live allocation returns
// linheap.InvalidHandleError.
func (a *Allocator) Make(offset, length int) (Memory, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if !a.handleCheck.ConfirmLive(offset, length) {
		return Memory{}, cerrors.Wrapf(linheap.InvalidHandleError, "no live allocation begins at offset %d and spans %d bytes", offset, length)
	}

	return Memory{alloc: a, offset: offset, length: length}, nil
}

// Destroy verifies that the arena is no longer in use. Live allocations are
// leaks at this point: each one is logged and an error is returned, and the
// arena is not torn down.
func (a *Allocator) Destroy() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.chunks.allocCount > 0 {
		// Log all remaining allocations
		err := a.chunks.VisitAllChunks(func(offset, length int, free bool) error {
			if free {
				return nil
			}

			a.logUnreleasedMemory(offset, length)
			return nil
		})
		if err != nil {
			a.logger.LogAttrs(context.Background(),
				slog.LevelError,
				"[UNRELEASED MEMORY] error while iterating unreleased memory",
				slog.Any("error", err))
		}

		return errors.New("some allocations were not freed before the destruction of this arena!")
	}

	return nil
}

func (a *Allocator) logUnreleasedMemory(offset, length int) {
	a.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed allocation",
		slog.Int("offset", offset),
		slog.Int("length", length),
	)
}

// Clear instantly frees all allocations, leaving the arena with a single free
// chunk spanning the entire backing store.
func (a *Allocator) Clear() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.chunks.Clear()
	linheap.DebugValidate(&a.chunks)
}

// Validate performs internal consistency checks on the arena's chunk list.
// These checks walk the full list, so they are not cheap. When the
// implementation is functioning correctly, it should not be possible for this
// method to return an error, but this may assist in diagnosing issues with the
// implementation.
func (a *Allocator) Validate() error {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.chunks.Validate()
}

// Size returns the number of bytes of the backing store the arena manages
func (a *Allocator) Size() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.chunks.size
}

// AllocationCount returns the number of live allocations in the arena
func (a *Allocator) AllocationCount() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.chunks.allocCount
}

// FreeChunkCount returns the number of unique regions of free memory in the
// arena. Adjacent regions of free memory are always merged, so this also
// serves as a fragmentation measure.
func (a *Allocator) FreeChunkCount() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.chunks.freeCount
}

// SumFreeSize returns the number of free bytes of memory in the arena
func (a *Allocator) SumFreeSize() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.chunks.freeSize
}

// IsEmpty will return true if this arena has no live allocations
func (a *Allocator) IsEmpty() bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.chunks.allocCount == 0
}

// VisitAllChunks calls the provided callback once for each allocation and free
// span in the arena, in address order. Depending on the number of chunks this
// can be slow, and should generally not be done except for diagnostic purposes.
func (a *Allocator) VisitAllChunks(handleChunk func(offset, length int, free bool) error) error {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.chunks.VisitAllChunks(handleChunk)
}

// AddDetailedStatistics sums this arena's allocation statistics into the
// statistics currently present in the provided linheap.DetailedStatistics
// object.
func (a *Allocator) AddDetailedStatistics(stats *linheap.DetailedStatistics) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	a.chunks.AddDetailedStatistics(stats)
}

// AddStatistics sums this arena's allocation statistics into the statistics
// currently present in the provided linheap.Statistics object.
func (a *Allocator) AddStatistics(stats *linheap.Statistics) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	a.chunks.AddStatistics(stats)
}

// BuildStatsString writes a JSON description of the arena's current state and
// returns it as a string. When detailedMap is true, the description includes a
// full listing of every chunk in the arena, which can be quite large.
func (a *Allocator) BuildStatsString(detailedMap bool) string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	writer := jwriter.NewWriter()

	obj := writer.Object()

	general := obj.Name("General").Object()
	general.Name("TotalBytes").Int(a.chunks.size)
	general.Name("UnusedBytes").Int(a.chunks.freeSize)
	general.Name("Allocations").Int(a.chunks.allocCount)
	general.Name("UnusedRanges").Int(a.chunks.freeCount)
	general.End()

	if detailedMap {
		a.printDetailedMap(obj)
	}

	obj.End()

	return string(writer.Bytes())
}

func (a *Allocator) printDetailedMap(json jwriter.ObjectState) {
	arrayState := json.Name("Chunks").Array()
	defer arrayState.End()

	_ = a.chunks.VisitAllChunks(
		func(offset, length int, free bool) error {
			obj := arrayState.Object()
			defer obj.End()

			obj.Name("Offset").Int(offset)
			if free {
				obj.Name("Type").String("FREE")
			} else {
				obj.Name("Type").String("ALLOCATED")
			}
			obj.Name("Size").Int(length)

			return nil
		})
}

func (a *Allocator) fillRange(offset, length int, pattern uint8) {
	if !linheap.DebugFill || length <= 0 {
		return
	}

	data := make([]byte, length)
	for i := 0; i < length; i++ {
		data[i] = pattern
	}

	if !a.store.Write(offset, data) {
		panic(fmt.Sprintf("failed to write %d bytes at offset %d during debug pattern fill", length, offset))
	}
}
