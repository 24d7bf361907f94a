package errors

import (
	"math"
)

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64, index int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, index)
	}
	return nil
}

// CheckMatrix checks all values in a matrix for NaN or Inf.
// The returned error reports the first offending row.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		var unstableValues []float64
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstableValues = append(unstableValues, v)
				if len(unstableValues) >= 10 {
					break
				}
			}
		}
		if len(unstableValues) > 0 {
			return NewNumericalInstabilityError(operation, unstableValues, i)
		}
	}
	return nil
}

// ClampNonNegative returns 0 for values in (-tol, 0) which are produced by
// floating-point cancellation in quantities that are non-negative by definition.
// Values below -tol are reported as numerical instability.
func ClampNonNegative(operation string, value, tol float64, index int) (float64, error) {
	if err := CheckScalar(operation, value, index); err != nil {
		return 0, err
	}
	if value >= 0 {
		return value, nil
	}
	if value > -tol {
		return 0, nil
	}
	return 0, NewNumericalInstabilityError(operation, []float64{value}, index)
}
