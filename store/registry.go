package store

import (
	"github.com/dolthub/swiss"
	"github.com/pkg/errors"

	"github.com/wasmutils/linheap/internal/utils"
)

type taggedBuffer struct {
	length   int
	refCount int
}

// BufferRegistry tracks externally-owned byte buffers by the absolute position they
// occupy in the backing store. Hosts that hand buffers across a foreign-function
// boundary register each buffer here and reference-count it; the registry's tag check
// then serves as the handle-validation strategy for an arena, in place of a chunk-list
// lookup.
type BufferRegistry struct {
	mutex   utils.OptionalRWMutex
	buffers *swiss.Map[int, *taggedBuffer]
}

// NewBufferRegistry creates an empty registry. When externallySynchronized is true the
// registry performs no internal locking and the host must guarantee exclusion itself.
func NewBufferRegistry(externallySynchronized bool) *BufferRegistry {
	return &BufferRegistry{
		mutex:   utils.OptionalRWMutex{UseMutex: !externallySynchronized},
		buffers: swiss.NewMap[int, *taggedBuffer](42),
	}
}

// Register tags the range beginning at position as a live buffer of the provided length
// with a reference count of one. Registering a position that is already live is a host
// error and fails.
func (r *BufferRegistry) Register(position, length int) error {
	if position < 0 {
		return errors.Errorf("buffer position is %d, but positions cannot be negative", position)
	}
	if length <= 0 {
		return errors.Errorf("buffer length is %d, but buffers must be at least one byte long", length)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.buffers.Get(position)
	if exists {
		return errors.Errorf("a buffer is already registered at position %d", position)
	}

	r.buffers.Put(position, &taggedBuffer{
		length:   length,
		refCount: 1,
	})
	return nil
}

// Retain increments the reference count of the buffer at position. It returns false if
// no live buffer begins there.
func (r *BufferRegistry) Retain(position int) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	buffer, exists := r.buffers.Get(position)
	if !exists {
		return false
	}

	buffer.refCount++
	return true
}

// Release decrements the reference count of the buffer at position, removing the tag
// when the count reaches zero. It returns false if no live buffer begins there.
func (r *BufferRegistry) Release(position int) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	buffer, exists := r.buffers.Get(position)
	if !exists {
		return false
	}

	buffer.refCount--
	if buffer.refCount <= 0 {
		r.buffers.Delete(position)
	}
	return true
}

// ConfirmLive returns true if a live buffer begins at position and is exactly length
// bytes long. This is the host-side tag check used for handle validation.
func (r *BufferRegistry) ConfirmLive(position, length int) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	buffer, exists := r.buffers.Get(position)
	return exists && buffer.length == length
}

// LiveCount returns the number of live buffers in the registry
func (r *BufferRegistry) LiveCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.buffers.Count()
}
