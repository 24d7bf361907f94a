package feature_selection

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/featkit/pkg/errors"
)

// gainTolerance 以内の負の情報利得は浮動小数点の打ち消しとして 0 に丸める
const gainTolerance = 1e-12

// labelIndex はラベルを昇順の密なインデックスに写す
type labelIndex struct {
	classes []int       // 昇順のラベル値
	pos     map[int]int // ラベル値 -> classes 内の位置
	counts  []int       // クラスごとの件数
	coded   []int       // 各サンプルの密なインデックス
}

func indexLabels(op string, labels []int) (*labelIndex, error) {
	if len(labels) == 0 {
		return nil, errors.NewInvalidParameterError(op, "labels", "must not be empty", 0)
	}
	seen := make(map[int]int)
	for i, l := range labels {
		if l < 0 {
			return nil, errors.NewInvalidParameterError(op, "labels",
				"must be non-negative codes", map[string]int{"index": i, "label": l})
		}
		seen[l]++
	}

	idx := &labelIndex{
		classes: make([]int, 0, len(seen)),
		pos:     make(map[int]int, len(seen)),
		counts:  make([]int, len(seen)),
		coded:   make([]int, len(labels)),
	}
	for l := range seen {
		idx.classes = append(idx.classes, l)
	}
	sort.Ints(idx.classes)
	for i, l := range idx.classes {
		idx.pos[l] = i
		idx.counts[i] = seen[l]
	}
	for i, l := range labels {
		idx.coded[i] = idx.pos[l]
	}
	return idx, nil
}

// entropyOfCounts は -Σ p log2 p をクラス順に足し合わせる。total が 0 なら 0。
func entropyOfCounts(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	n := float64(total)
	var h float64
	for _, c := range counts {
		if c == 0 || c == total {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// conditionalOfCounts は有無で分割した各部分のエントロピーをサンプル数で重み付けする
func conditionalOfCounts(present, all []int, nPresent, n int) float64 {
	absent := make([]int, len(all))
	for i := range all {
		absent[i] = all[i] - present[i]
	}
	wp := float64(nPresent) / float64(n)
	wa := float64(n-nPresent) / float64(n)
	return wp*entropyOfCounts(present, nPresent) + wa*entropyOfCounts(absent, n-nPresent)
}

// Entropy はラベル分布のシャノンエントロピー（ビット）を返す
//
// 確率は実際に現れたラベルの頻度から求める。1 クラスのみなら厳密に 0。
func Entropy(labels []int) (float64, error) {
	idx, err := indexLabels("Entropy", labels)
	if err != nil {
		return 0, err
	}
	return entropyOfCounts(idx.counts, len(labels)), nil
}

// ConditionalEntropy は特徴量の有無で分割したときのラベルの条件付きエントロピー
//
// 空の部分集合の寄与は 0。
func ConditionalEntropy(presence []bool, labels []int) (float64, error) {
	const op = "ConditionalEntropy"
	idx, err := indexLabels(op, labels)
	if err != nil {
		return 0, err
	}
	if len(presence) != len(labels) {
		return 0, errors.NewInvalidParameterError(op, "presence",
			"must have the same length as labels", len(presence))
	}
	present, nPresent := countPresent(presence, idx)
	return conditionalOfCounts(present, idx.counts, nPresent, len(labels)), nil
}

// InformationGain は H(labels) - H(labels | presence) を返す
//
// (-1e-12, 0) の値は 0 に丸め、それより小さい値は NumericalInstabilityError。
func InformationGain(presence []bool, labels []int) (float64, error) {
	const op = "InformationGain"
	idx, err := indexLabels(op, labels)
	if err != nil {
		return 0, err
	}
	if len(presence) != len(labels) {
		return 0, errors.NewInvalidParameterError(op, "presence",
			"must have the same length as labels", len(presence))
	}
	present, nPresent := countPresent(presence, idx)
	return gainOfCounts(op, present, idx.counts, nPresent, len(labels), 0)
}

func countPresent(presence []bool, idx *labelIndex) ([]int, int) {
	present := make([]int, len(idx.classes))
	var n int
	for i, ok := range presence {
		if ok {
			present[idx.coded[i]]++
			n++
		}
	}
	return present, n
}

func gainOfCounts(op string, present, all []int, nPresent, n, feature int) (float64, error) {
	if len(all) < 2 {
		return 0, nil
	}
	g := entropyOfCounts(all, n) - conditionalOfCounts(present, all, nPresent, n)
	return errors.ClampNonNegative(op, g, gainTolerance, feature)
}
