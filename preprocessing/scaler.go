package preprocessing

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/featkit/core/model"
	"github.com/YuminosukeSato/featkit/core/parallel"
	"github.com/YuminosukeSato/featkit/pkg/errors"
	"github.com/YuminosukeSato/featkit/pkg/log"
)

// StandardScaler は標準化スケーラーの設定を保持する
// データを平均0、標準偏差1に変換する
type StandardScaler struct {
	// withMean は平均を引くかどうか (デフォルト: true)
	withMean bool

	// withStd は標準偏差で割るかどうか (デフォルト: true)
	withStd bool
}

// ScalerModel は StandardScaler.Fit が返す学習済みの統計量
//
// 不変なので複数の goroutine から同時に Transform してよい。
type ScalerModel struct {
	mean     []float64
	scale    []float64
	withMean bool
	withStd  bool
}

var (
	_ model.Estimator[*ScalerModel] = (*StandardScaler)(nil)
	_ model.InverseTransformer      = (*ScalerModel)(nil)
	_ model.ParameterGetter         = (*StandardScaler)(nil)
)

// NewStandardScaler は新しいStandardScalerを作成する
//
// パラメータ:
//   - withMean: 平均を引くかどうか
//   - withStd: 標準偏差で割るかどうか
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	m, err := scaler.Fit(X)
//	XScaled, err := m.Transform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		withMean: withMean,
		withStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから統計情報（平均、標準偏差）を計算する
//
// 平均は centering か scaling のどちらかが有効なら計算する（標準偏差は常に真の平均の周りで取る）。
// 標準偏差は母標準偏差（除数 n）。ちょうど 0 の列のスケールは 1 にする。
func (s *StandardScaler) Fit(X mat.Matrix) (m *ScalerModel, err error) {
	const op = "StandardScaler.Fit"
	defer errors.Recover(&err, op)

	start := time.Now()
	r, c, err := model.CheckFitInput(op, X, 1)
	if err != nil {
		return nil, err
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	constant := make([]bool, c)

	parallel.ForEach(c, parallel.DefaultThreshold, func(j int) {
		scale[j] = 1
		if !s.withMean && !s.withStd {
			return
		}
		col := mat.Col(nil, j, X)
		mean[j] = stat.Mean(col, nil)
		if !s.withStd {
			return
		}
		std := populationStd(col, mean[j])
		if std == 0 {
			constant[j] = true
			return
		}
		scale[j] = std
	})

	logger := log.GetLoggerWithName("preprocessing.scaler")
	logger.Debug("fit completed",
		log.ModelNameKey, "StandardScaler",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.ConstantFeaturesKey, countTrue(constant),
		log.ParallelKey, c > parallel.DefaultThreshold,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &ScalerModel{
		mean:     mean,
		scale:    scale,
		withMean: s.withMean,
		withStd:  s.withStd,
	}, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (*ScalerModel, *mat.Dense, error) {
	return model.FitTransform[*ScalerModel](s, X)
}

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.withMean,
		"with_std":  s.withStd,
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.withMean, s.withStd)
}

// Transform は学習済みの統計情報を使ってデータを標準化する
//
// x' = (x - mean) / scale。centering が無効なら平均は引かず、scaling が無効なら割らない。
func (m *ScalerModel) Transform(X mat.Matrix) (*mat.Dense, error) {
	r, err := model.CheckFeatures("ScalerModel.Transform", X, len(m.mean))
	if err != nil {
		return nil, err
	}
	c := len(m.mean)

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			if m.withMean {
				value -= m.mean[j]
			}
			if m.withStd {
				value /= m.scale[j]
			}
			result.Set(i, j, value)
		}
	}

	return result, nil
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (m *ScalerModel) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	r, err := model.CheckFeatures("ScalerModel.InverseTransform", X, len(m.mean))
	if err != nil {
		return nil, err
	}
	c := len(m.mean)

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			if m.withStd {
				value *= m.scale[j]
			}
			if m.withMean {
				value += m.mean[j]
			}
			result.Set(i, j, value)
		}
	}

	return result, nil
}

// Mean は各特徴量の平均値のコピーを返す
func (m *ScalerModel) Mean() []float64 { return append([]float64(nil), m.mean...) }

// Scale は各特徴量のスケールのコピーを返す
func (m *ScalerModel) Scale() []float64 { return append([]float64(nil), m.scale...) }

// WithMean は Fit 時の centering 設定
func (m *ScalerModel) WithMean() bool { return m.withMean }

// WithStd は Fit 時の scaling 設定
func (m *ScalerModel) WithStd() bool { return m.withStd }

// NFeatures は特徴量の数
func (m *ScalerModel) NFeatures() int { return len(m.mean) }

// String はモデルの文字列表現を返す
func (m *ScalerModel) String() string {
	return fmt.Sprintf("ScalerModel(with_mean=%t, with_std=%t, n_features=%d)",
		m.withMean, m.withStd, len(m.mean))
}

func populationStd(col []float64, mean float64) float64 {
	var sumSquares float64
	for _, v := range col {
		diff := v - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(col)))
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
