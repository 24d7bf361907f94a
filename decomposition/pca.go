package decomposition

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/featkit/core/model"
	"github.com/YuminosukeSato/featkit/metrics"
	"github.com/YuminosukeSato/featkit/pkg/errors"
	"github.com/YuminosukeSato/featkit/pkg/log"
)

// PCA は主成分分析の設定を保持する
type PCA struct {
	selector ComponentSelector
	solver   Solver
}

// Option configures a PCA.
type Option func(*PCA)

// WithSolver replaces the default SVDSolver.
func WithSolver(s Solver) Option {
	return func(p *PCA) {
		if s != nil {
			p.solver = s
		}
	}
}

// PCAModel は PCA.Fit が返す学習済みモデル
type PCAModel struct {
	mean              []float64
	components        *mat.Dense // k × n_features, 行が正規直交
	singularValues    []float64
	explainedVariance []float64
	explainedRatio    []float64
	nSamples          int
	solver            string
}

var (
	_ model.Estimator[*PCAModel] = (*PCA)(nil)
	_ model.InverseTransformer   = (*PCAModel)(nil)
	_ model.ParameterGetter      = (*PCA)(nil)
)

// NewPCA は新しいPCAを作成する
//
// 使用例:
//
//	pca := decomposition.NewPCA(decomposition.FixedComponents(2),
//	    decomposition.WithSolver(decomposition.EigenSolver{}))
func NewPCA(selector ComponentSelector, opts ...Option) *PCA {
	p := &PCA{
		selector: selector,
		solver:   SVDSolver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fit は中心化したデータを分解して主成分を求める
//
// X は 2 行以上必要（説明分散は n-1 で割る）。
func (p *PCA) Fit(X mat.Matrix) (m *PCAModel, err error) {
	const op = "PCA.Fit"
	defer errors.Recover(&err, op)

	start := time.Now()
	r, c, err := model.CheckFitInput(op, X, 2)
	if err != nil {
		return nil, err
	}
	available := min(r-1, c)
	if err := p.selector.validate(op, available); err != nil {
		return nil, err
	}

	mean := make([]float64, c)
	for j := 0; j < c; j++ {
		mean[j] = stat.Mean(mat.Col(nil, j, X), nil)
	}
	Xc := center(X, mean)

	values, vt, err := p.solver.Decompose(Xc)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: %s solver", op, p.solver.Name())
	}

	var total float64
	for _, s := range values {
		total += s * s
	}
	ratios := make([]float64, available)
	if total > 0 {
		for i := range ratios {
			ratios[i] = values[i] * values[i] / total
		}
	}

	k, err := p.selector.resolve(op, ratios)
	if err != nil {
		return nil, err
	}

	components := mat.DenseCopyOf(vt.Slice(0, k, 0, c))
	fixSigns(components)

	m = &PCAModel{
		mean:              mean,
		components:        components,
		singularValues:    append([]float64(nil), values[:k]...),
		explainedVariance: make([]float64, k),
		explainedRatio:    append([]float64(nil), ratios[:k]...),
		nSamples:          r,
		solver:            p.solver.Name(),
	}
	for i := 0; i < k; i++ {
		m.explainedVariance[i] = values[i] * values[i] / float64(r-1)
	}

	logger := log.GetLoggerWithName("decomposition.pca")
	logger.Debug("fit completed",
		log.ModelNameKey, "PCA",
		log.OperationKey, log.OperationFit,
		log.SolverKey, p.solver.Name(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.ComponentsKey, k,
		log.ExplainedVarianceKey, m.TotalExplainedVarianceRatio(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return m, nil
}

// FitTransform は学習と射影を同時に行う
func (p *PCA) FitTransform(X mat.Matrix) (*PCAModel, *mat.Dense, error) {
	return model.FitTransform[*PCAModel](p, X)
}

// GetParams はPCAのパラメータを取得する
func (p *PCA) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_components": p.selector.String(),
		"solver":       p.solver.Name(),
	}
}

// String はPCAの文字列表現を返す
func (p *PCA) String() string {
	return fmt.Sprintf("PCA(n_components=%s, solver=%s)", p.selector, p.solver.Name())
}

// Transform は (X - mean)·Cᵀ を返す
func (m *PCAModel) Transform(X mat.Matrix) (*mat.Dense, error) {
	if _, err := model.CheckFeatures("PCAModel.Transform", X, len(m.mean)); err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Mul(center(X, m.mean), m.components.T())
	return &out, nil
}

// InverseTransform は Z·C + mean を返す
//
// k が rank より小さいときは情報が失われるので近似になる。
func (m *PCAModel) InverseTransform(Z mat.Matrix) (*mat.Dense, error) {
	r, err := model.CheckFeatures("PCAModel.InverseTransform", Z, m.NComponents())
	if err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Mul(Z, m.components)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		for j := range row {
			row[j] += m.mean[j]
		}
	}
	return &out, nil
}

// ReconstructionError は X と InverseTransform(Transform(X)) の平均二乗誤差
//
// 保持する主成分を増やすと単調に減少し、データの rank に達すると 0 になる。
func (m *PCAModel) ReconstructionError(X mat.Matrix) (float64, error) {
	Z, err := m.Transform(X)
	if err != nil {
		return 0, err
	}
	back, err := m.InverseTransform(Z)
	if err != nil {
		return 0, err
	}
	return metrics.MSEMatrix(X, back)
}

// Mean は各特徴量の平均値のコピーを返す
func (m *PCAModel) Mean() []float64 { return append([]float64(nil), m.mean...) }

// Components は主成分 (k × n_features) のコピーを返す
func (m *PCAModel) Components() *mat.Dense { return mat.DenseCopyOf(m.components) }

// ExplainedVariance は各主成分の分散 s²/(n-1)
func (m *PCAModel) ExplainedVariance() []float64 {
	return append([]float64(nil), m.explainedVariance...)
}

// ExplainedVarianceRatio は各主成分が説明する分散の割合
func (m *PCAModel) ExplainedVarianceRatio() []float64 {
	return append([]float64(nil), m.explainedRatio...)
}

// SingularValues returns the singular values of the retained components.
func (m *PCAModel) SingularValues() []float64 {
	return append([]float64(nil), m.singularValues...)
}

// NComponents は保持した主成分の数
func (m *PCAModel) NComponents() int {
	r, _ := m.components.Dims()
	return r
}

// NFeatures is the number of input features.
func (m *PCAModel) NFeatures() int { return len(m.mean) }

// TotalExplainedVarianceRatio は保持した主成分の割合の合計
func (m *PCAModel) TotalExplainedVarianceRatio() float64 {
	var total float64
	for _, r := range m.explainedRatio {
		total += r
	}
	return total
}

// String はモデルの文字列表現を返す
func (m *PCAModel) String() string {
	return fmt.Sprintf("PCAModel(n_components=%d, n_features=%d, solver=%s, explained=%.4f)",
		m.NComponents(), len(m.mean), m.solver, m.TotalExplainedVarianceRatio())
}

func center(X mat.Matrix, mean []float64) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)-mean[j])
		}
	}
	return out
}

// fixSigns は各主成分で絶対値最大の要素が正になるよう符号をそろえる
// 同じ絶対値が複数あれば先頭の要素を使う。
func fixSigns(components *mat.Dense) {
	k, _ := components.Dims()
	for i := 0; i < k; i++ {
		row := components.RawRowView(i)
		pivot := 0
		for j, v := range row {
			if math.Abs(v) > math.Abs(row[pivot]) {
				pivot = j
			}
		}
		if row[pivot] < 0 {
			for j := range row {
				row[j] = -row[j]
			}
		}
	}
}
