package scenario

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, compared with errors.Is.
var (
	// ErrInvalidUsageCount indicates a usage count below 1 or above the
	// configured maximum.
	ErrInvalidUsageCount = constError("invalid usage count")

	// ErrMissingSelection indicates a stage with no selected option.
	ErrMissingSelection = constError("missing stage selection")
)
