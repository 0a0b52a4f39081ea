package kernels

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnknownKernel    = errors.New("unknown kernel")
	ErrUnsupportedDType = errors.New("element dtype not supported by kernel registration")
	ErrInvalidIndexType = errors.New("index tensor dtype must be int32 or int64")
)

// InvalidArgumentError reports a kernel invocation rejected before any
// output was allocated. The message names the observed dtype.
type InvalidArgumentError struct {
	Op       string // Kernel name, e.g. "take_along_axis"
	Argument string // Offending argument, e.g. "index"
	Observed string // What was seen, e.g. "float32"
	err      error  // Sentinel cause
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s argument: %v (got %s)", e.Op, e.Argument, e.err, e.Observed)
}

// Unwrap returns the sentinel cause, so errors.Is works against the
// package sentinels.
func (e *InvalidArgumentError) Unwrap() error {
	return e.err
}
