// Package feature_extraction は分かち書き済みの文書を文書×語の出現回数行列に変換する。
//
// 分かち書き自体は呼び出し側の責務で、ここでは語のリストだけを扱う。
package feature_extraction

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featkit/pkg/errors"
	"github.com/YuminosukeSato/featkit/pkg/log"
)

// CountVectorizer は語彙を学習する
type CountVectorizer struct{}

// Vocabulary は CountVectorizer.Fit が返す語彙
//
// 語はバイト順に並び、列番号はその順序に対応する。
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewCountVectorizer は新しいCountVectorizerを作成する
func NewCountVectorizer() *CountVectorizer {
	return &CountVectorizer{}
}

// Fit は文書に現れる語をすべて集めて語彙を作る
func (cv *CountVectorizer) Fit(docs [][]string) (*Vocabulary, error) {
	const op = "CountVectorizer.Fit"
	if len(docs) == 0 {
		return nil, errors.NewInvalidParameterError(op, "docs", "must not be empty", 0)
	}

	seen := make(map[string]struct{})
	for _, doc := range docs {
		for _, term := range doc {
			seen[term] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, errors.NewInvalidParameterError(op, "docs", "contain no terms", len(docs))
	}

	v := &Vocabulary{
		terms: make([]string, 0, len(seen)),
		index: make(map[string]int, len(seen)),
	}
	for term := range seen {
		v.terms = append(v.terms, term)
	}
	sort.Strings(v.terms)
	for i, term := range v.terms {
		v.index[term] = i
	}

	log.GetLoggerWithName("feature_extraction.count").Debug("fit completed",
		log.ModelNameKey, "CountVectorizer",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(docs),
		log.FeaturesKey, len(v.terms),
	)
	return v, nil
}

// FitTransform は語彙を作って同じ文書を変換する
func (cv *CountVectorizer) FitTransform(docs [][]string) (*Vocabulary, *mat.Dense, error) {
	v, err := cv.Fit(docs)
	if err != nil {
		return nil, nil, err
	}
	X, err := v.Transform(docs)
	if err != nil {
		return nil, nil, err
	}
	return v, X, nil
}

// Transform は文書×語の出現回数行列を返す。語彙にない語は無視する。
func (v *Vocabulary) Transform(docs [][]string) (*mat.Dense, error) {
	if len(docs) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Vocabulary.Transform: no documents")
	}
	X := mat.NewDense(len(docs), len(v.terms), nil)
	for i, doc := range docs {
		row := X.RawRowView(i)
		for _, term := range doc {
			if j, ok := v.index[term]; ok {
				row[j]++
			}
		}
	}
	return X, nil
}

// Terms は列順の語のコピーを返す
func (v *Vocabulary) Terms() []string { return append([]string(nil), v.terms...) }

// Index returns the column of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	j, ok := v.index[term]
	return j, ok
}

// Len is the vocabulary size.
func (v *Vocabulary) Len() int { return len(v.terms) }

func (v *Vocabulary) String() string {
	return fmt.Sprintf("Vocabulary(n_terms=%d)", len(v.terms))
}
