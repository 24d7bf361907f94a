// Package metrics provides error measures used to evaluate transformations.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featkit/pkg/errors"
)

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.Wrapf(errors.ErrEmptyData, "MSE: empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// MSEMatrix は行列の全要素についての平均二乗誤差を計算する
//
// PCA の再構成誤差 ||X - X̂||² / (n·d) はこの値になる。
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.Wrapf(errors.ErrEmptyData, "MSEMatrix: empty matrix")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return 0, errors.NewDimensionError("MSEMatrix", cTrue, cPred, 1)
	}

	var diff mat.Dense
	diff.Sub(yTrue, yPred)
	norm := mat.Norm(&diff, 2)

	return norm * norm / float64(rTrue*cTrue), nil
}
