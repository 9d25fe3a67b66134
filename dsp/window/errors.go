package window

import (
	"errors"
	"fmt"
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func peakOutOfRange(peak, size int) error {
	return fmt.Errorf("window peak %d outside [0,%d)", peak, size)
}

func unknownType(name string) error {
	return fmt.Errorf("unknown window type %q", name)
}
