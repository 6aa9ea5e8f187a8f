package linheap

import "github.com/pkg/errors"

// InvalidSizeError is the error returned when an allocation or resize is requested with a
// size of zero or fewer bytes
var InvalidSizeError error = errors.New("size must be a positive number of bytes")

// OutOfMemoryError is the error returned when the backing store cannot be grown far enough
// to satisfy a request
var OutOfMemoryError error = errors.New("the backing store could not be grown")

// InvalidHandleError is the error returned when an offset and length pair does not name a
// live allocation
var InvalidHandleError error = errors.New("no live allocation matches the provided handle")

// DoubleFreeError is the error returned when freeing an allocation that has already been freed
var DoubleFreeError error = errors.New("the allocation has already been freed")

// OutOfBoundsError is the error returned when a typed access falls outside the bounds of its
// allocation
var OutOfBoundsError error = errors.New("access is outside the bounds of the allocation")

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being
// tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")
