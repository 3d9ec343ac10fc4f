package catalog

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, compared with errors.Is.
var (
	// ErrUnknownOption indicates a selection that is not a member of its
	// stage's option set. Boundary layers only offer valid ids, so this
	// signals a contract violation rather than ordinary user input.
	ErrUnknownOption = constError("unknown stage option")

	// ErrUnknownStage indicates an unrecognized stage identifier.
	ErrUnknownStage = constError("unknown lifecycle stage")

	// ErrInvalidCatalog indicates the catalog failed load-time validation.
	ErrInvalidCatalog = constError("invalid impact catalog")

	// ErrUnsupportedSchema indicates a catalog schema_version outside the
	// supported range.
	ErrUnsupportedSchema = constError("unsupported catalog schema version")

	// ErrInvalidUnit indicates an unrecognized water or carbon unit.
	ErrInvalidUnit = constError("invalid unit")
)
