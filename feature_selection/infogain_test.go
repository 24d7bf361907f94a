package feature_selection_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featkit/feature_extraction"
	"github.com/YuminosukeSato/featkit/feature_selection"
	"github.com/YuminosukeSato/featkit/pkg/errors"
	"github.com/YuminosukeSato/featkit/pkg/log"
	"github.com/YuminosukeSato/featkit/preprocessing"
)

// 編程・数据・运维 の 3 カテゴリの分かち書き済み文書
var corpusDocs = [][]string{
	{"python", "java", "编程", "代码"},
	{"代码", "开发", "python", "程序", "测试"},
	{"编程", "开发", "测试"},
	{"数据", "分析", "python", "统计"},
	{"机器学习", "数据", "分析", "模型"},
	{"网络", "服务器", "安全"},
	{"服务器", "网络", "运维", "监控"},
}

var corpusLabels = []string{"编程", "编程", "编程", "数据", "数据", "运维", "运维"}

func corpus(t testing.TB) (*mat.Dense, []int, []string) {
	t.Helper()
	vocab, X, err := feature_extraction.NewCountVectorizer().FitTransform(corpusDocs)
	require.NoError(t, err)

	// 数据 < 编程 < 运维 なので 编程=1, 数据=0, 运维=2
	enc, err := preprocessing.NewLabelEncoder().Fit(corpusLabels)
	require.NoError(t, err)
	labels, err := enc.Transform(corpusLabels)
	require.NoError(t, err)
	return X, labels, vocab.Terms()
}

func TestInfoGainGolden(t *testing.T) {
	X, labels, terms := corpus(t)

	res, err := feature_selection.NewInfoGain().Score(X, labels, terms)
	require.NoError(t, err)
	require.Equal(t, 17, res.Len())

	expected := map[string]float64{
		"分析": 0.8631, "数据": 0.8631, "服务器": 0.8631, "网络": 0.8631,
		"代码": 0.4696, "开发": 0.4696, "测试": 0.4696, "编程": 0.4696,
		"机器学习": 0.3060, "模型": 0.3060, "统计": 0.3060, "python": 0.3060,
		"安全": 0.3060, "监控": 0.3060, "运维": 0.3060,
		"java": 0.1981, "程序": 0.1981,
	}
	for name, want := range expected {
		got, ok := res.Score(name)
		require.True(t, ok, name)
		assert.InDelta(t, want, got, 1e-4, name)
	}

	assert.InDelta(t, 1.5566567, res.Entropy(), 1e-6)
	assert.ElementsMatch(t, []string{"分析", "数据", "服务器", "网络"}, res.Features()[:4])
	assert.Equal(t, []string{"代码", "开发", "测试", "编程"}, res.Features()[4:8])
	assert.Equal(t, []string{"java", "程序"}, res.Features()[15:])
}

func TestInfoGainOrdering(t *testing.T) {
	X, labels, terms := corpus(t)
	res, err := feature_selection.NewInfoGain().Score(X, labels, terms)
	require.NoError(t, err)

	scores := res.Scores()
	for i := 1; i < len(scores); i++ {
		prev, cur := scores[i-1], scores[i]
		assert.GreaterOrEqual(t, prev.Score, cur.Score)
		if prev.Score == cur.Score {
			assert.Less(t, prev.Index, cur.Index)
		}
		assert.LessOrEqual(t, cur.Score, res.Entropy()+1e-12)
	}
	for _, fs := range scores {
		assert.Equal(t, terms[fs.Index], fs.Feature)
	}
}

func TestInfoGainMaxFeaturesPerClass(t *testing.T) {
	X, labels, terms := corpus(t)

	res, err := feature_selection.NewInfoGain(feature_selection.WithMaxFeaturesPerClass(2)).Score(X, labels, terms)
	require.NoError(t, err)

	var names []string
	for _, fs := range res.Selected() {
		names = append(names, fs.Feature)
	}
	assert.ElementsMatch(t, []string{"代码", "分析", "开发", "数据", "服务器", "网络"}, names)
	assert.Equal(t, 17, res.Len())

	all, err := feature_selection.NewInfoGain(feature_selection.WithMaxFeaturesPerClass(0)).Score(X, labels, terms)
	require.NoError(t, err)
	assert.Equal(t, all.Scores(), all.Selected())
}

func TestInfoGainParallelMatchesSequential(t *testing.T) {
	X, labels, terms := corpus(t)

	seq, err := feature_selection.NewInfoGain(feature_selection.WithParallelThreshold(0)).Score(X, labels, terms)
	require.NoError(t, err)
	par, err := feature_selection.NewInfoGain(feature_selection.WithParallelThreshold(1)).Score(X, labels, terms)
	require.NoError(t, err)

	assert.Equal(t, seq.Scores(), par.Scores())
}

func TestInfoGainSingleClass(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	res, err := feature_selection.NewInfoGain().Score(X, []int{2, 2, 2}, nil)
	require.NoError(t, err)

	for _, fs := range res.Scores() {
		assert.Equal(t, 0.0, fs.Score)
	}
	assert.Equal(t, []string{"0", "1"}, res.Features())
}

func TestInfoGainPerfectPredictor(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		1, 0,
		0, 1,
		0, 0,
	})
	labels := []int{0, 0, 1, 1}
	res, err := feature_selection.NewInfoGain().Score(X, labels, []string{"perfect", "noise"})
	require.NoError(t, err)

	perfect, ok := res.Score("perfect")
	require.True(t, ok)
	assert.InDelta(t, res.Entropy(), perfect, 1e-12)

	noise, _ := res.Score("noise")
	assert.InDelta(t, 0, noise, 1e-12)

	_, ok = res.Score("missing")
	assert.False(t, ok)
}

func TestInfoGainErrors(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	ig := feature_selection.NewInfoGain()

	tests := []struct {
		name   string
		X      mat.Matrix
		labels []int
		names  []string
	}{
		{"nil matrix", nil, []int{0, 1}, nil},
		{"label length", X, []int{0}, nil},
		{"name length", X, []int{0, 1}, []string{"a"}},
		{"negative label", X, []int{0, -1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ig.Score(tt.X, tt.labels, tt.names)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidParameter))
		})
	}

	t.Run("NaN", func(t *testing.T) {
		bad := mat.NewDense(2, 1, []float64{math.NaN(), 1})
		_, err := ig.Score(bad, []int{0, 1}, nil)
		var numErr *errors.NumericalInstabilityError
		assert.True(t, errors.As(err, &numErr))
	})
}

func TestInfoGainCountsWarn(t *testing.T) {
	provider, buffer := log.NewTestLoggerProvider(log.LevelDebug)
	prev := log.SetProvider(provider)
	defer log.SetProvider(prev)

	X, labels, terms := corpus(t)
	_, err := feature_selection.NewInfoGain().Score(X, labels, terms)
	require.NoError(t, err)
	assert.NotContains(t, buffer.String(), "DataConversionWarning")

	counts := mat.DenseCopyOf(X)
	counts.Set(0, 0, 3)
	_, err = feature_selection.NewInfoGain().Score(counts, labels, terms)
	require.NoError(t, err)
	assert.Contains(t, buffer.String(), "DataConversionWarning")

	// 回数ではなく有無で数えるので結果は変わらない
	binary, _ := feature_selection.NewInfoGain().Score(X, labels, terms)
	counted, _ := feature_selection.NewInfoGain().Score(counts, labels, terms)
	assert.Equal(t, binary.Scores(), counted.Scores())
}

func TestInfoGainLogsSummary(t *testing.T) {
	provider, buffer := log.NewTestLoggerProvider(log.LevelDebug)
	prev := log.SetProvider(provider)
	defer log.SetProvider(prev)

	X, labels, terms := corpus(t)
	_, err := feature_selection.NewInfoGain(feature_selection.WithMaxFeaturesPerClass(2)).Score(X, labels, terms)
	require.NoError(t, err)

	out := buffer.String()
	assert.Contains(t, out, "score completed")
	assert.Contains(t, out, `"ml.component":"feature_selection.infogain"`)
	assert.Contains(t, out, `"data.classes":3`)
	assert.Contains(t, out, `"result.selected":6`)
}

func TestInfoGainResultTransform(t *testing.T) {
	X, labels, terms := corpus(t)
	res, err := feature_selection.NewInfoGain(feature_selection.WithMaxFeaturesPerClass(2)).Score(X, labels, terms)
	require.NoError(t, err)
	selected := res.Selected()

	raw, err := res.Transform(X, false)
	require.NoError(t, err)
	r, c := raw.Dims()
	assert.Equal(t, 7, r)
	assert.Equal(t, len(selected), c)
	for i := 0; i < r; i++ {
		for k, fs := range selected {
			want := 0.0
			if X.At(i, fs.Index) > 0 {
				want = fs.Score
			}
			assert.Equal(t, want, raw.At(i, k))
		}
	}

	norm, err := res.Transform(X, true)
	require.NoError(t, err)
	for i := 0; i < r; i++ {
		row := norm.RawRowView(i)
		n := floats.Norm(row, 2)
		if floats.Norm(raw.RawRowView(i), 2) == 0 {
			assert.Equal(t, 0.0, n)
			continue
		}
		assert.InDelta(t, 1.0, n, 1e-12)
	}

	_, err = res.Transform(mat.NewDense(1, 3, nil), false)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestInfoGainResultCopies(t *testing.T) {
	X, labels, terms := corpus(t)
	res, err := feature_selection.NewInfoGain().Score(X, labels, terms)
	require.NoError(t, err)

	scores := res.Scores()
	scores[0].Score = -1
	features := res.Features()
	features[0] = "mutated"

	assert.NotEqual(t, -1.0, res.Scores()[0].Score)
	assert.NotEqual(t, "mutated", res.Features()[0])
}

func TestInfoGainGetParams(t *testing.T) {
	ig := feature_selection.NewInfoGain(
		feature_selection.WithMaxFeaturesPerClass(5),
		feature_selection.WithParallelThreshold(8),
	)
	params := ig.GetParams()
	assert.Equal(t, 5, params["max_features_per_class"])
	assert.Equal(t, 8, params["parallel_threshold"])
	assert.True(t, strings.HasPrefix(ig.String(), "InfoGain("))
}

func BenchmarkInfoGainScore(b *testing.B) {
	const rows, cols = 500, 2000
	data := make([]float64, rows*cols)
	labels := make([]int, rows)
	for i := 0; i < rows; i++ {
		labels[i] = i % 5
		for j := 0; j < cols; j++ {
			if (i*31+j*17)%7 == 0 {
				data[i*cols+j] = 1
			}
		}
	}
	X := mat.NewDense(rows, cols, data)
	ig := feature_selection.NewInfoGain()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ig.Score(X, labels, nil); err != nil {
			b.Fatal(err)
		}
	}
}
