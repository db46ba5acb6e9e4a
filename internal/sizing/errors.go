package sizing

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for sizing calculations, comparable with errors.Is().
var (
	// ErrInvalidRate indicates a zero or negative electricity rate.
	ErrInvalidRate = constError("rate per kWh must be greater than 0")

	// ErrInvalidBill indicates a negative or non-finite monthly bill.
	ErrInvalidBill = constError("monthly bill must be a finite, non-negative amount")

	// ErrInvalidPerformanceRatio indicates a derate factor outside (0, 1].
	ErrInvalidPerformanceRatio = constError("performance ratio must be in (0, 1]")
)
