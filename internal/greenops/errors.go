package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for equivalency calculations.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrNegativeValue indicates a negative water total.
	// Water use cannot be negative; carbon may be.
	ErrNegativeValue = constError("negative water value")

	// ErrCalculationOverflow indicates a non-finite input or result.
	ErrCalculationOverflow = constError("calculation overflow")
)
