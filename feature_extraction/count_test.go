package feature_extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/featkit/pkg/errors"
)

func TestCountVectorizer(t *testing.T) {
	docs := [][]string{
		{"b", "a", "b"},
		{"c"},
		{},
	}

	v, X, err := NewCountVectorizer().FitTransform(docs)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, v.Terms())
	assert.Equal(t, 3, v.Len())

	r, c := X.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{1, 2, 0}, X.RawRowView(0))
	assert.Equal(t, []float64{0, 0, 1}, X.RawRowView(1))
	assert.Equal(t, []float64{0, 0, 0}, X.RawRowView(2))

	j, ok := v.Index("c")
	assert.True(t, ok)
	assert.Equal(t, 2, j)
	_, ok = v.Index("z")
	assert.False(t, ok)
}

func TestVocabularyIgnoresUnknownTerms(t *testing.T) {
	v, err := NewCountVectorizer().Fit([][]string{{"x", "y"}})
	require.NoError(t, err)

	X, err := v.Transform([][]string{{"y", "unknown", "y"}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, X.RawRowView(0))
}

func TestCountVectorizerErrors(t *testing.T) {
	_, err := NewCountVectorizer().Fit(nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))

	_, err = NewCountVectorizer().Fit([][]string{{}, {}})
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))

	v, err := NewCountVectorizer().Fit([][]string{{"a"}})
	require.NoError(t, err)
	_, err = v.Transform(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestTermsIsCopy(t *testing.T) {
	v, err := NewCountVectorizer().Fit([][]string{{"a", "b"}})
	require.NoError(t, err)

	terms := v.Terms()
	terms[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, v.Terms())
}
