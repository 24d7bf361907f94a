package preprocessing

import (
	"sort"

	"github.com/YuminosukeSato/featkit/pkg/errors"
)

// LabelEncoder は文字列ラベルを 0..n_classes-1 の整数コードに変換する
//
// コードはクラス名の辞書順で振られるので、同じラベル集合からは常に同じコードになる。
type LabelEncoder struct{}

// LabelModel は LabelEncoder.Fit が返すクラス表
type LabelModel struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder creates a LabelEncoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// Fit collects the distinct labels and sorts them.
func (e *LabelEncoder) Fit(labels []string) (*LabelModel, error) {
	if len(labels) == 0 {
		return nil, errors.NewInvalidParameterError("LabelEncoder.Fit", "labels", "must not be empty", 0)
	}

	index := make(map[string]int)
	for _, label := range labels {
		index[label] = 0
	}
	classes := make([]string, 0, len(index))
	for label := range index {
		classes = append(classes, label)
	}
	sort.Strings(classes)
	for i, class := range classes {
		index[class] = i
	}

	return &LabelModel{classes: classes, index: index}, nil
}

// FitTransform fits the encoder and encodes labels.
func (e *LabelEncoder) FitTransform(labels []string) (*LabelModel, []int, error) {
	m, err := e.Fit(labels)
	if err != nil {
		return nil, nil, err
	}
	codes, err := m.Transform(labels)
	if err != nil {
		return nil, nil, err
	}
	return m, codes, nil
}

// Transform は未知のラベルがあれば InvalidParameterError を返す
func (m *LabelModel) Transform(labels []string) ([]int, error) {
	codes := make([]int, len(labels))
	for i, label := range labels {
		code, ok := m.index[label]
		if !ok {
			return nil, errors.NewInvalidParameterError("LabelModel.Transform", "labels", "unknown label", label)
		}
		codes[i] = code
	}
	return codes, nil
}

// InverseTransform maps codes back to class names.
func (m *LabelModel) InverseTransform(codes []int) ([]string, error) {
	labels := make([]string, len(codes))
	for i, code := range codes {
		if code < 0 || code >= len(m.classes) {
			return nil, errors.NewInvalidParameterError("LabelModel.InverseTransform", "codes", "out of range", code)
		}
		labels[i] = m.classes[code]
	}
	return labels, nil
}

// Classes returns a copy of the sorted class names.
func (m *LabelModel) Classes() []string { return append([]string(nil), m.classes...) }

// NClasses はクラス数を返す
func (m *LabelModel) NClasses() int { return len(m.classes) }
