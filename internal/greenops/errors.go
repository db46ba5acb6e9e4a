package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrNegativeValue indicates a negative production value.
	ErrNegativeValue = constError("negative production value")

	// ErrInvalidIntensity indicates a grid intensity that is not a positive
	// finite number.
	ErrInvalidIntensity = constError("grid intensity must be a positive number")
)
