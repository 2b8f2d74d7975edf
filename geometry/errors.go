package geometry

import "errors"

// ErrNegativePower is returned by Generator.Power for a negative exponent.
var ErrNegativePower = errors.New("geometry: negative generator power")
