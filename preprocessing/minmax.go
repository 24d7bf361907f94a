package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featkit/core/model"
	"github.com/YuminosukeSato/featkit/core/parallel"
	"github.com/YuminosukeSato/featkit/pkg/errors"
	"github.com/YuminosukeSato/featkit/pkg/log"
)

// MinMaxScaler はデータを指定した範囲（デフォルト[0,1]）にスケーリングする
type MinMaxScaler struct {
	// featureRange はスケーリング後の範囲 [min, max]
	featureRange [2]float64
}

// MinMaxModel は MinMaxScaler.Fit が返す学習済みの最小値・最大値
type MinMaxModel struct {
	dataMin      []float64
	dataMax      []float64
	dataRange    []float64 // 定数列は 1
	featureRange [2]float64
}

var (
	_ model.Estimator[*MinMaxModel] = (*MinMaxScaler)(nil)
	_ model.InverseTransformer      = (*MinMaxModel)(nil)
)

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler([2]float64{0.0, 1.0})
//	m, err := scaler.Fit(X)
//	XScaled, err := m.Transform(X)
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{featureRange: featureRange}
}

// NewMinMaxScalerDefault はデフォルト設定([0,1]範囲)でMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit は訓練データから最小値・最大値を計算する
func (s *MinMaxScaler) Fit(X mat.Matrix) (m *MinMaxModel, err error) {
	const op = "MinMaxScaler.Fit"
	defer errors.Recover(&err, op)

	if !(s.featureRange[0] < s.featureRange[1]) {
		return nil, errors.NewInvalidParameterError(op, "feature_range", "min must be smaller than max", s.featureRange)
	}
	r, c, err := model.CheckFitInput(op, X, 1)
	if err != nil {
		return nil, err
	}

	m = &MinMaxModel{
		dataMin:      make([]float64, c),
		dataMax:      make([]float64, c),
		dataRange:    make([]float64, c),
		featureRange: s.featureRange,
	}
	parallel.ForEach(c, parallel.DefaultThreshold, func(j int) {
		col := mat.Col(nil, j, X)
		m.dataMin[j] = floats.Min(col)
		m.dataMax[j] = floats.Max(col)
		m.dataRange[j] = m.dataMax[j] - m.dataMin[j]
		if m.dataRange[j] == 0 {
			m.dataRange[j] = 1
		}
	})

	log.GetLoggerWithName("preprocessing.minmax").Debug("fit completed",
		log.ModelNameKey, "MinMaxScaler",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)
	return m, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *MinMaxScaler) FitTransform(X mat.Matrix) (*MinMaxModel, *mat.Dense, error) {
	return model.FitTransform[*MinMaxModel](s, X)
}

// GetParams はスケーラーのパラメータを取得する
func (s *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": s.featureRange,
	}
}

// Transform は学習済みの統計情報を使ってデータをスケーリングする
func (m *MinMaxModel) Transform(X mat.Matrix) (*mat.Dense, error) {
	r, err := model.CheckFeatures("MinMaxModel.Transform", X, len(m.dataMin))
	if err != nil {
		return nil, err
	}
	c := len(m.dataMin)

	result := mat.NewDense(r, c, nil)
	width := m.featureRange[1] - m.featureRange[0]
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			// X_scaled = (X - X.min) / (X.max - X.min) * (max - min) + min
			scaled := (X.At(i, j)-m.dataMin[j])/m.dataRange[j]*width + m.featureRange[0]
			result.Set(i, j, scaled)
		}
	}

	return result, nil
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxModel) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	r, err := model.CheckFeatures("MinMaxModel.InverseTransform", X, len(m.dataMin))
	if err != nil {
		return nil, err
	}
	c := len(m.dataMin)

	result := mat.NewDense(r, c, nil)
	width := m.featureRange[1] - m.featureRange[0]
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			original := (X.At(i, j)-m.featureRange[0])/width*m.dataRange[j] + m.dataMin[j]
			result.Set(i, j, original)
		}
	}

	return result, nil
}

// DataMin は学習データの列ごとの最小値
func (m *MinMaxModel) DataMin() []float64 { return append([]float64(nil), m.dataMin...) }

// DataMax は学習データの列ごとの最大値
func (m *MinMaxModel) DataMax() []float64 { return append([]float64(nil), m.dataMax...) }

// String はモデルの文字列表現を返す
func (m *MinMaxModel) String() string {
	return fmt.Sprintf("MinMaxModel(feature_range=[%.1f, %.1f], n_features=%d)",
		m.featureRange[0], m.featureRange[1], len(m.dataMin))
}
