package arena_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wasmutils/linheap"
	"github.com/wasmutils/linheap/arena"
	"github.com/wasmutils/linheap/store"
	mock_store "github.com/wasmutils/linheap/store/mocks"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

func bytePattern(length int) []byte {
	pattern := make([]byte, length)
	for i := range pattern {
		pattern[i] = byte(i)
	}
	return pattern
}

func TestReallocateFresh(t *testing.T) {
	backing, err := store.NewPagedBuffer(1, 4)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, backing, arena.CreateOptions{})
	require.NoError(t, err)

	// A handle with no bytes behaves as a fresh allocation
	mem, err := allocator.Reallocate(arena.Memory{}, 1, 100)
	require.NoError(t, err)
	require.Equal(t, 0, mem.Offset())
	require.Equal(t, 100, mem.Length())
	require.Equal(t, 1, allocator.AllocationCount())

	_, err = allocator.Reallocate(arena.Memory{}, 1, 0)
	require.ErrorIs(t, err, linheap.InvalidSizeError)

	require.NoError(t, allocator.Free(mem))
	require.NoError(t, allocator.Destroy())
}

func TestReallocateRelease(t *testing.T) {
	backing, err := store.NewPagedBuffer(1, 4)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, backing, arena.CreateOptions{})
	require.NoError(t, err)

	mem, err := allocator.Allocate(100)
	require.NoError(t, err)

	released, err := allocator.Reallocate(mem, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 0, released.Length())
	require.True(t, allocator.IsEmpty())

	_, err = allocator.Reallocate(mem, 1, 0)
	require.ErrorIs(t, err, linheap.InvalidHandleError)

	require.NoError(t, allocator.Destroy())
}

func TestReallocateSameLength(t *testing.T) {
	backing, err := store.NewPagedBuffer(1, 4)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, backing, arena.CreateOptions{})
	require.NoError(t, err)

	mem, err := allocator.Allocate(100)
	require.NoError(t, err)

	same, err := allocator.Reallocate(mem, 4, 100)
	require.NoError(t, err)
	require.Equal(t, mem.Offset(), same.Offset())
	require.Equal(t, mem.Length(), same.Length())
	require.Equal(t, 1, allocator.FreeChunkCount())
	require.NoError(t, allocator.Validate())

	require.NoError(t, allocator.Free(same))
	require.NoError(t, allocator.Destroy())
}

func TestReallocateShrink(t *testing.T) {
	backing, err := store.NewPagedBuffer(1, 4)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, backing, arena.CreateOptions{})
	require.NoError(t, err)

	memA, err := allocator.Allocate(300)
	require.NoError(t, err)
	memB, err := allocator.Allocate(100)
	require.NoError(t, err)

	patternA := bytePattern(300)
	require.NoError(t, memA.StoreBytes(patternA))
	patternB := bytePattern(100)
	require.NoError(t, memB.StoreBytes(patternB))

	// The next span is occupied, so the released bytes become a new free chunk
	shrunkA, err := allocator.Reallocate(memA, 1, 200)
	require.NoError(t, err)
	require.Equal(t, 0, shrunkA.Offset())
	require.Equal(t, 200, shrunkA.Length())
	require.Equal(t, 2, allocator.FreeChunkCount())
	require.NoError(t, allocator.Validate())

	data, err := shrunkA.LoadBytes()
	require.NoError(t, err)
	require.Equal(t, patternA[:200], data)

	// The released bytes coalesce with the free span that follows them
	shrunkB, err := allocator.Reallocate(memB, 1, 50)
	require.NoError(t, err)
	require.Equal(t, 300, shrunkB.Offset())
	require.Equal(t, 50, shrunkB.Length())
	require.Equal(t, 2, allocator.FreeChunkCount())
	require.Equal(t, 65286, allocator.SumFreeSize())
	require.NoError(t, allocator.Validate())

	data, err = shrunkB.LoadBytes()
	require.NoError(t, err)
	require.Equal(t, patternB[:50], data)

	require.Equal(t, []chunkSpan{
		{Offset: 0, Length: 200, Free: false},
		{Offset: 200, Length: 100, Free: true},
		{Offset: 300, Length: 50, Free: false},
		{Offset: 350, Length: 65186, Free: true},
	}, collectChunks(t, allocator))

	require.NoError(t, allocator.Free(shrunkA))
	require.NoError(t, allocator.Free(shrunkB))
	require.True(t, allocator.IsEmpty())
	require.NoError(t, allocator.Destroy())
}

func TestReallocateGrowInPlace(t *testing.T) {
	backing, err := store.NewPagedBuffer(1, 4)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, backing, arena.CreateOptions{})
	require.NoError(t, err)

	mem, err := allocator.Allocate(100)
	require.NoError(t, err)

	pattern := bytePattern(100)
	require.NoError(t, mem.StoreBytes(pattern))

	grown, err := allocator.Reallocate(mem, 1, 500)
	require.NoError(t, err)
	require.Equal(t, 0, grown.Offset())
	require.Equal(t, 500, grown.Length())
	require.Equal(t, 1, allocator.FreeChunkCount())
	require.NoError(t, allocator.Validate())

	data, err := grown.LoadBytes()
	require.NoError(t, err)
	require.Equal(t, pattern, data[:100])

	require.NoError(t, allocator.Free(grown))
	require.NoError(t, allocator.Destroy())
}

func TestReallocateGrowIntoPredecessor(t *testing.T) {
	backing, err := store.NewPagedBuffer(1, 4)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, backing, arena.CreateOptions{})
	require.NoError(t, err)

	memA, err := allocator.Allocate(100)
	require.NoError(t, err)
	memB, err := allocator.Allocate(100)
	require.NoError(t, err)
	memC, err := allocator.Allocate(100)
	require.NoError(t, err)
	require.NoError(t, allocator.Free(memA))

	pattern := bytePattern(100)
	require.NoError(t, memB.StoreBytes(pattern))

	// The freed predecessor plus the allocation make a large enough run, so the
	// allocation slides toward the start of the store
	grown, err := allocator.Reallocate(memB, 1, 150)
	require.NoError(t, err)
	require.Equal(t, 0, grown.Offset())
	require.Equal(t, 150, grown.Length())
	require.NoError(t, allocator.Validate())

	require.Equal(t, []chunkSpan{
		{Offset: 0, Length: 150, Free: false},
		{Offset: 150, Length: 50, Free: true},
		{Offset: 200, Length: 100, Free: false},
		{Offset: 300, Length: 65236, Free: true},
	}, collectChunks(t, allocator))

	data, err := grown.LoadBytes()
	require.NoError(t, err)
	require.Equal(t, pattern, data[:100])

	require.NoError(t, allocator.Free(grown))
	require.NoError(t, allocator.Free(memC))
	require.True(t, allocator.IsEmpty())
	require.NoError(t, allocator.Destroy())
}

func TestReallocateMoves(t *testing.T) {
	backing, err := store.NewPagedBuffer(1, 4)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, backing, arena.CreateOptions{})
	require.NoError(t, err)

	memA, err := allocator.Allocate(100)
	require.NoError(t, err)
	memB, err := allocator.Allocate(100)
	require.NoError(t, err)

	pattern := bytePattern(100)
	require.NoError(t, memA.StoreBytes(pattern))

	// Boxed in by an occupied successor, the allocation moves past it
	moved, err := allocator.Reallocate(memA, 1, 300)
	require.NoError(t, err)
	require.Equal(t, 200, moved.Offset())
	require.Equal(t, 300, moved.Length())
	require.Equal(t, 2, allocator.AllocationCount())
	require.NoError(t, allocator.Validate())

	require.Equal(t, []chunkSpan{
		{Offset: 0, Length: 100, Free: true},
		{Offset: 100, Length: 100, Free: false},
		{Offset: 200, Length: 300, Free: false},
		{Offset: 500, Length: 65036, Free: true},
	}, collectChunks(t, allocator))

	data, err := moved.LoadBytes()
	require.NoError(t, err)
	require.Equal(t, pattern, data[:100])

	// The old handle's span was released by the move
	require.ErrorIs(t, allocator.Free(memA), linheap.DoubleFreeError)

	require.NoError(t, allocator.Free(moved))
	require.NoError(t, allocator.Free(memB))
	require.True(t, allocator.IsEmpty())
	require.NoError(t, allocator.Destroy())
}

func TestReallocateGrowOutOfMemoryRestores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock_store.NewMockStore(ctrl)
	mockStore.EXPECT().Size().Return(65536)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, mockStore, arena.CreateOptions{})
	require.NoError(t, err)

	memA, err := allocator.Allocate(1000)
	require.NoError(t, err)
	memB, err := allocator.Allocate(64536)
	require.NoError(t, err)

	mockStore.EXPECT().Grow(1).Return(0, false)

	_, err = allocator.Reallocate(memA, 1, 2000)
	require.ErrorIs(t, err, linheap.OutOfMemoryError)

	// The failed reallocation left the arena exactly as it was
	require.Equal(t, 2, allocator.AllocationCount())
	require.Equal(t, 0, allocator.FreeChunkCount())
	require.Equal(t, 0, allocator.SumFreeSize())
	require.NoError(t, allocator.Validate())

	// The old handle is still live
	require.NoError(t, allocator.Free(memA))
	require.NoError(t, allocator.Free(memB))
	require.NoError(t, allocator.Destroy())
}

func TestReallocateRestoresWithNeighbors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock_store.NewMockStore(ctrl)
	mockStore.EXPECT().Size().Return(65536)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, mockStore, arena.CreateOptions{})
	require.NoError(t, err)

	memA, err := allocator.Allocate(500)
	require.NoError(t, err)
	memB, err := allocator.Allocate(500)
	require.NoError(t, err)
	memC, err := allocator.Allocate(500)
	require.NoError(t, err)
	memD, err := allocator.Allocate(64036)
	require.NoError(t, err)
	require.NoError(t, allocator.Free(memA))
	require.NoError(t, allocator.Free(memC))

	mockStore.EXPECT().Grow(2).Return(0, false)

	// The allocation folds into its free neighbors while hunting for room, and the
	// failure carves all three back out
	_, err = allocator.Reallocate(memB, 1, 70000)
	require.ErrorIs(t, err, linheap.OutOfMemoryError)

	require.Equal(t, []chunkSpan{
		{Offset: 0, Length: 500, Free: true},
		{Offset: 500, Length: 500, Free: false},
		{Offset: 1000, Length: 500, Free: true},
		{Offset: 1500, Length: 64036, Free: false},
	}, collectChunks(t, allocator))
	require.NoError(t, allocator.Validate())

	require.NoError(t, allocator.Free(memB))
	require.NoError(t, allocator.Free(memD))
	require.True(t, allocator.IsEmpty())
	require.NoError(t, allocator.Destroy())
}

func TestReallocateInvalidHandle(t *testing.T) {
	backing, err := store.NewPagedBuffer(1, 4)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, backing, arena.CreateOptions{})
	require.NoError(t, err)

	memA, err := allocator.Allocate(100)
	require.NoError(t, err)
	memB, err := allocator.Allocate(100)
	require.NoError(t, err)
	require.NoError(t, allocator.Free(memA))

	// The span still exists but is free, so the handle is stale
	_, err = allocator.Reallocate(memA, 1, 50)
	require.ErrorIs(t, err, linheap.InvalidHandleError)

	require.NoError(t, allocator.Free(memB))

	// After coalescing there is no matching span at all
	_, err = allocator.Reallocate(memB, 1, 50)
	require.ErrorIs(t, err, linheap.InvalidHandleError)

	require.NoError(t, allocator.Destroy())
}

func TestReallocateShrinkThenGrowPreservesContent(t *testing.T) {
	backing, err := store.NewPagedBuffer(1, 4)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	allocator, err := arena.New(logger, backing, arena.CreateOptions{})
	require.NoError(t, err)

	mem, err := allocator.Allocate(64)
	require.NoError(t, err)

	pattern := bytePattern(64)
	require.NoError(t, mem.StoreBytes(pattern))

	mem, err = allocator.Reallocate(mem, 8, 32)
	require.NoError(t, err)

	data, err := mem.LoadBytes()
	require.NoError(t, err)
	require.Equal(t, pattern[:32], data)

	mem, err = allocator.Reallocate(mem, 8, 128)
	require.NoError(t, err)
	require.Equal(t, 128, mem.Length())

	data, err = mem.LoadBytes()
	require.NoError(t, err)
	require.Equal(t, pattern[:32], data[:32])

	require.NoError(t, mem.Store8(127, 0xAA))
	value, err := mem.Load8(127)
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), value)

	require.NoError(t, allocator.Free(mem))
	require.True(t, allocator.IsEmpty())
	require.NoError(t, allocator.Destroy())
}
