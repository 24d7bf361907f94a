package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featkit/pkg/errors"
)

// CheckFitInput validates a training matrix and returns its shape.
// X must have at least minRows rows, at least one column and only finite values.
func CheckFitInput(op string, X mat.Matrix, minRows int) (rows, cols int, err error) {
	if X == nil {
		return 0, 0, errors.NewInvalidParameterError(op, "X", "must not be nil", nil)
	}
	rows, cols = X.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, errors.NewInvalidParameterError(op, "X", "must have at least one row and one column",
			fmt.Sprintf("%dx%d", rows, cols))
	}
	if rows < minRows {
		return 0, 0, errors.NewInvalidParameterError(op, "X",
			fmt.Sprintf("must have at least %d rows", minRows), rows)
	}
	if err := errors.CheckMatrix(op, X, rows, cols); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// CheckFeatures validates that X has nFeatures columns and at least one row.
func CheckFeatures(op string, X mat.Matrix, nFeatures int) (rows int, err error) {
	if X == nil {
		return 0, errors.Wrapf(errors.ErrEmptyData, "%s: nil matrix", op)
	}
	rows, cols := X.Dims()
	if rows == 0 {
		return 0, errors.Wrapf(errors.ErrEmptyData, "%s: got %dx%d matrix", op, rows, cols)
	}
	if cols != nFeatures {
		return 0, errors.NewDimensionError(op, nFeatures, cols, 1)
	}
	return rows, nil
}
