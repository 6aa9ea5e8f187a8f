package linheap

// Validatable is used by the DebugValidate method to allow it to act upon
// all types with a Validate method
type Validatable interface {
	Validate() error
}

const (
	// CreatedFillPattern is the byte written across newly allocated ranges when debug
	// fill is active
	CreatedFillPattern byte = 0xDC
	// DestroyedFillPattern is the byte written across released ranges when debug fill
	// is active
	DestroyedFillPattern byte = 0xEF
)
