package feature_selection

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featkit/core/model"
	"github.com/YuminosukeSato/featkit/core/parallel"
	"github.com/YuminosukeSato/featkit/pkg/errors"
	"github.com/YuminosukeSato/featkit/pkg/log"
)

// InfoGain は情報利得による特徴量スコアリングの設定を保持する
type InfoGain struct {
	maxFeaturesPerClass int
	parallelThreshold   int
}

// Option configures an InfoGain.
type Option func(*InfoGain)

// WithMaxFeaturesPerClass はクラスごとに残す特徴量の上限を設定する
//
// スコア順に特徴量を見ていき、その特徴量が現れるクラス（ラベル昇順）のうち
// 採用数が n 未満のものがあれば採用する。n <= 0 ならすべて残す。
func WithMaxFeaturesPerClass(n int) Option {
	return func(ig *InfoGain) {
		ig.maxFeaturesPerClass = n
	}
}

// WithParallelThreshold sets the column count from which scoring runs in parallel.
// A threshold <= 0 keeps scoring sequential.
func WithParallelThreshold(threshold int) Option {
	return func(ig *InfoGain) {
		ig.parallelThreshold = threshold
	}
}

// FeatureScore は 1 つの特徴量の情報利得
type FeatureScore struct {
	Feature string
	Index   int // 入力行列の列番号
	Score   float64
}

// InfoGainResult は Score の結果
//
// 不変で、アクセサはコピーを返す。
type InfoGainResult struct {
	scores    []FeatureScore
	selected  []FeatureScore
	byName    map[string]int
	nFeatures int
	entropy   float64
}

var _ model.ParameterGetter = (*InfoGain)(nil)

// NewInfoGain は新しいInfoGainを作成する
//
// 使用例:
//
//	ig := feature_selection.NewInfoGain(feature_selection.WithMaxFeaturesPerClass(100))
//	res, err := ig.Score(X, labels, vocab.Terms())
func NewInfoGain(opts ...Option) *InfoGain {
	ig := &InfoGain{
		parallelThreshold: parallel.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(ig)
	}
	return ig
}

// Score は X の各列を「値 > 0 なら出現」とみなして情報利得を計算する
//
// featureNames が nil なら列番号を名前に使う。ラベルが 1 種類しかない場合は
// すべてのスコアが 0 になる。0/1 以外の値を含む場合は DataConversionWarning を出す。
func (ig *InfoGain) Score(X mat.Matrix, labels []int, featureNames []string) (res *InfoGainResult, err error) {
	const op = "InfoGain.Score"
	defer errors.Recover(&err, op)

	start := time.Now()
	r, c, err := model.CheckFitInput(op, X, 1)
	if err != nil {
		return nil, err
	}
	if len(labels) != r {
		return nil, errors.NewInvalidParameterError(op, "labels",
			fmt.Sprintf("must have one label per row (%d rows)", r), len(labels))
	}
	if featureNames != nil && len(featureNames) != c {
		return nil, errors.NewInvalidParameterError(op, "featureNames",
			fmt.Sprintf("must have one name per column (%d columns)", c), len(featureNames))
	}
	idx, err := indexLabels(op, labels)
	if err != nil {
		return nil, err
	}

	if !isBinary(X, r, c) {
		errors.Warn(errors.NewDataConversionWarning("count", "binary presence",
			"values other than 0 and 1 are treated as present when > 0"))
	}

	presentCounts := make([][]int, c)
	gains := make([]float64, c)
	err = parallel.ForEachErr(c, ig.parallelThreshold, func(j int) error {
		present := make([]int, len(idx.classes))
		var nPresent int
		for i := 0; i < r; i++ {
			if X.At(i, j) > 0 {
				present[idx.coded[i]]++
				nPresent++
			}
		}
		g, err := gainOfCounts(op, present, idx.counts, nPresent, r, j)
		if err != nil {
			return err
		}
		presentCounts[j] = present
		gains[j] = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	res = &InfoGainResult{
		scores:    make([]FeatureScore, c),
		byName:    make(map[string]int, c),
		nFeatures: c,
		entropy:   entropyOfCounts(idx.counts, r),
	}
	for j := 0; j < c; j++ {
		name := strconv.Itoa(j)
		if featureNames != nil {
			name = featureNames[j]
		}
		res.scores[j] = FeatureScore{Feature: name, Index: j, Score: gains[j]}
	}
	sort.SliceStable(res.scores, func(a, b int) bool {
		if res.scores[a].Score != res.scores[b].Score {
			return res.scores[a].Score > res.scores[b].Score
		}
		return res.scores[a].Index < res.scores[b].Index
	})
	for i, fs := range res.scores {
		if _, dup := res.byName[fs.Feature]; !dup {
			res.byName[fs.Feature] = i
		}
	}
	res.selected = ig.selectPerClass(res.scores, presentCounts)

	logger := log.GetLoggerWithName("feature_selection.infogain")
	logger.Debug("score completed",
		log.ModelNameKey, "InfoGain",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.ClassesKey, len(idx.classes),
		log.EntropyKey, res.entropy,
		log.SelectedKey, len(res.selected),
		log.ParallelKey, ig.parallelThreshold > 0 && c >= ig.parallelThreshold,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (ig *InfoGain) selectPerClass(scores []FeatureScore, presentCounts [][]int) []FeatureScore {
	if ig.maxFeaturesPerClass <= 0 {
		return append([]FeatureScore(nil), scores...)
	}

	var nClasses int
	if len(presentCounts) > 0 {
		nClasses = len(presentCounts[0])
	}
	kept := make([]int, nClasses)
	var selected []FeatureScore
	for _, fs := range scores {
		for class, n := range presentCounts[fs.Index] {
			if n > 0 && kept[class] < ig.maxFeaturesPerClass {
				kept[class]++
				selected = append(selected, fs)
				break
			}
		}
	}
	return selected
}

func isBinary(X mat.Matrix, r, c int) bool {
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := X.At(i, j); v != 0 && v != 1 {
				return false
			}
		}
	}
	return true
}

// GetParams はInfoGainのパラメータを取得する
func (ig *InfoGain) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"max_features_per_class": ig.maxFeaturesPerClass,
		"parallel_threshold":     ig.parallelThreshold,
	}
}

// String はInfoGainの文字列表現を返す
func (ig *InfoGain) String() string {
	return fmt.Sprintf("InfoGain(max_features_per_class=%d)", ig.maxFeaturesPerClass)
}

// Scores はすべての特徴量のスコアを降順（同点は列番号の昇順）で返す
func (res *InfoGainResult) Scores() []FeatureScore {
	return append([]FeatureScore(nil), res.scores...)
}

// Score returns the gain of the named feature.
func (res *InfoGainResult) Score(name string) (float64, bool) {
	i, ok := res.byName[name]
	if !ok {
		return 0, false
	}
	return res.scores[i].Score, true
}

// Features は Scores と同じ順の特徴量名
func (res *InfoGainResult) Features() []string {
	names := make([]string, len(res.scores))
	for i, fs := range res.scores {
		names[i] = fs.Feature
	}
	return names
}

// Len is the number of scored features.
func (res *InfoGainResult) Len() int { return len(res.scores) }

// Entropy はラベルのエントロピー（ビット）。どの特徴量の利得もこれを超えない。
func (res *InfoGainResult) Entropy() float64 { return res.entropy }

// Selected はクラスごとの上限を適用した後の特徴量をスコア順で返す
func (res *InfoGainResult) Selected() []FeatureScore {
	return append([]FeatureScore(nil), res.selected...)
}

// Transform は X の列を選択済み特徴量に写し、出現していればスコア、なければ 0 を入れる
//
// X は Score に渡した行列と同じ列構成でなければならない。
// normalize が true なら各行を L2 ノルムで割る（ノルム 0 の行はそのまま）。
func (res *InfoGainResult) Transform(X mat.Matrix, normalize bool) (*mat.Dense, error) {
	const op = "InfoGainResult.Transform"
	r, err := model.CheckFeatures(op, X, res.nFeatures)
	if err != nil {
		return nil, err
	}
	if len(res.selected) == 0 {
		return nil, errors.NewInvalidParameterError(op, "selected", "no features were selected", 0)
	}

	out := mat.NewDense(r, len(res.selected), nil)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		for k, fs := range res.selected {
			if X.At(i, fs.Index) > 0 {
				row[k] = fs.Score
			}
		}
		if normalize {
			if norm := floats.Norm(row, 2); norm > 0 {
				floats.Scale(1/norm, row)
			}
		}
	}
	return out, nil
}

// String は結果の文字列表現を返す
func (res *InfoGainResult) String() string {
	return fmt.Sprintf("InfoGainResult(n_features=%d, n_selected=%d, entropy=%.4f)",
		len(res.scores), len(res.selected), res.entropy)
}
