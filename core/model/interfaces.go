// Package model defines the interfaces shared by featkit estimators.
//
// Fit は学習済みパラメータを持つ不変のモデルを返す。推定器そのものは
// ハイパーパラメータだけを保持するので、同じ推定器から何度でも Fit できる。
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator learns parameters from X and returns them as an immutable model.
type Estimator[M any] interface {
	Fit(X mat.Matrix) (M, error)
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Transform はデータを変換する
	Transform(X mat.Matrix) (*mat.Dense, error)
}

// InverseTransformer は変換を元の空間へ戻すインターフェース
type InverseTransformer interface {
	Transformer

	// InverseTransform は Transform の逆変換を行う
	InverseTransform(X mat.Matrix) (*mat.Dense, error)
}

// ParameterGetter is the interface for estimators that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the estimator's hyperparameters.
	GetParams() map[string]interface{}
}

// FitTransform fits est on X and transforms X with the resulting model.
func FitTransform[M Transformer](est Estimator[M], X mat.Matrix) (M, *mat.Dense, error) {
	m, err := est.Fit(X)
	if err != nil {
		var zero M
		return zero, nil, err
	}
	out, err := m.Transform(X)
	if err != nil {
		return m, nil, err
	}
	return m, out, nil
}
