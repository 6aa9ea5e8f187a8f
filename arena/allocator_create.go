package arena

import (
	"github.com/cockroachdb/errors"
	"github.com/wasmutils/linheap/internal/utils"
	"github.com/wasmutils/linheap/store"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific arena behaviors to activate or deactivate
type CreateFlags int32

const (
	// ArenaCreateExternallySynchronized ensures that this arena will not be synchronized
	// internally. The consumer must guarantee it is used from only one goroutine at a time
	// or is synchronized by some other mechanism, but performance may improve because
	// internal mutexes are not used.
	ArenaCreateExternallySynchronized CreateFlags = 1 << iota
)

var arenaCreateFlagsMapping = map[CreateFlags]string{
	ArenaCreateExternallySynchronized: "ArenaCreateExternallySynchronized",
}

func (f CreateFlags) String() string {
	return arenaCreateFlagsMapping[f]
}

// CreateOptions contains optional settings when creating an arena
type CreateOptions struct {
	// Flags indicates specific arena behaviors to activate or deactivate
	Flags CreateFlags

	// HandleCheck is the bookkeeping consulted by Allocator.Make when deciding whether a
	// raw offset and length pair still names a live allocation. When it is left nil, the
	// arena consults its own chunk list.
	HandleCheck HandleCheck
}

// New creates a new Allocator that parcels out spans of the provided backing store
//
// logger - The logger that unreleased-memory and other diagnostics will be written to
//
// backing - The store that allocations will be placed in. The arena takes ownership of
// the store's layout: all of its current bytes begin life as a single free span, and the
// arena will grow it as allocations demand
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, backing store.Store, options CreateOptions) (*Allocator, error) {
	if backing == nil {
		return nil, errors.New("attempted to create an arena with no backing store")
	}

	useMutex := options.Flags&ArenaCreateExternallySynchronized == 0

	allocator := &Allocator{
		logger:      logger,
		store:       backing,
		createFlags: options.Flags,
		mutex:       utils.OptionalRWMutex{UseMutex: useMutex},
	}
	allocator.chunks.init(backing.Size())

	if options.HandleCheck != nil {
		allocator.handleCheck = options.HandleCheck
	} else {
		allocator.handleCheck = &chunkListCheck{list: &allocator.chunks}
	}

	return allocator, nil
}
