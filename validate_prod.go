//go:build !debug_linheap

package linheap

const (
	// DebugFill causes ranges returned by Allocate to be filled with CreatedFillPattern
	// and ranges released by Free to be filled with DestroyedFillPattern, making stale
	// reads easy to identify. This constant is true only when the debug_linheap build
	// tag is present.
	DebugFill bool = false
)

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_linheap build tag is present
func DebugValidate(validatable Validatable) {
}

// DebugCheckPow2 will verify that the numerical value passed in is a power of two, and panics if it is not.
// This method no-ops unless the debug_linheap build tag is present.
func DebugCheckPow2[T Number](value T, name string) {
}
