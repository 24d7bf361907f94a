package decomposition_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featkit/decomposition"
)

func ExamplePCA() {
	X := mat.NewDense(3, 7, []float64{
		6, 5, 4, 3, 8, 2, 9,
		5, 1, 10, 2, 3, 8, 7,
		5, 14, 2, 3, 6, 3, 2,
	})

	m, Z, err := decomposition.NewPCA(decomposition.FixedComponents(2)).FitTransform(X)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("components: %d\n", m.NComponents())
	fmt.Printf("ratio: %.4f\n", m.ExplainedVarianceRatio())
	fmt.Printf("first row: %.4f\n", Z.RawRowView(0))
	// Output:
	// components: 2
	// ratio: [0.7980 0.2020]
	// first row: [-0.5477 4.9699]
}

func ExampleVarianceThreshold() {
	X := mat.NewDense(3, 7, []float64{
		6, 5, 4, 3, 8, 2, 9,
		5, 1, 10, 2, 3, 8, 7,
		5, 14, 2, 3, 6, 3, 2,
	})

	m, err := decomposition.NewPCA(decomposition.VarianceThreshold(0.75)).Fit(X)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.NComponents())
	// Output: 1
}
