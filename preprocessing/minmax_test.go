package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featkit/pkg/errors"
)

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 3, []float64{
		1, 10, 5,
		2, 20, 5,
		3, 40, 5,
	})

	tests := []struct {
		name  string
		rng   [2]float64
		wantR [][]float64
	}{
		{
			name: "default range",
			rng:  [2]float64{0, 1},
			wantR: [][]float64{
				{0, 0, 0},
				{0.5, 1.0 / 3.0, 0},
				{1, 1, 0},
			},
		},
		{
			name: "symmetric range",
			rng:  [2]float64{-1, 1},
			wantR: [][]float64{
				{-1, -1, -1},
				{0, -1.0 / 3.0, -1},
				{1, 1, -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, got, err := NewMinMaxScaler(tt.rng).FitTransform(X)
			require.NoError(t, err)

			for i, row := range tt.wantR {
				assert.InDeltaSlice(t, row, got.RawRowView(i), 1e-12, "row %d", i)
			}

			back, err := m.InverseTransform(got)
			require.NoError(t, err)
			assert.True(t, mat.EqualApprox(X, back, 1e-12))

			assert.Equal(t, []float64{1, 10, 5}, m.DataMin())
			assert.Equal(t, []float64{3, 40, 5}, m.DataMax())
		})
	}
}

func TestMinMaxScalerErrors(t *testing.T) {
	_, err := NewMinMaxScaler([2]float64{1, 1}).Fit(mat.NewDense(1, 1, []float64{0}))
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))

	m, err := NewMinMaxScalerDefault().Fit(mat.NewDense(2, 2, []float64{0, 1, 2, 3}))
	require.NoError(t, err)

	_, err = m.Transform(mat.NewDense(2, 3, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
	assert.Equal(t, "MinMaxModel(feature_range=[0.0, 1.0], n_features=2)", m.String())
	assert.Equal(t, [2]float64{0, 1}, NewMinMaxScalerDefault().GetParams()["feature_range"])
}
