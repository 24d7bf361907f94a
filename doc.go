// Package featkit provides numerical preprocessing and feature scoring
// primitives for Go, built on gonum matrices.
//
// featkit offers a scikit-learn-like API: an estimator holds the
// hyperparameters, Fit returns an immutable fitted model, and the model
// transforms new data. Fitted models never change after Fit, so they can be
// shared between goroutines without locking.
//
// # Features
//
//   - Principal component analysis with swappable SVD / eigen / Jacobi solvers
//   - Standard and min-max scaling with inverse transforms
//   - Information gain scoring of binary presence features with per-class selection
//   - Structured errors (cockroachdb/errors) and logging (zerolog, slog)
//
// # Installation
//
//	go get github.com/YuminosukeSato/featkit
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/featkit/decomposition"
//	    "github.com/YuminosukeSato/featkit/preprocessing"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 3, []float64{
//	        2.5, 2.4, 1.0,
//	        0.5, 0.7, 2.1,
//	        2.2, 2.9, 0.9,
//	        1.9, 2.2, 1.4,
//	    })
//
//	    // Standardize, then keep the components explaining 95% of the variance
//	    _, XScaled, err := preprocessing.NewStandardScalerDefault().FitTransform(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    pca, Z, err := decomposition.NewPCA(decomposition.VarianceThreshold(0.95)).FitTransform(XScaled)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("components:", pca.NComponents(), "projected:", Z.RawRowView(0))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - decomposition: PCA, component selectors, solvers and scree plots
//   - preprocessing: StandardScaler, MinMaxScaler and LabelEncoder
//   - feature_selection: entropy, information gain and InfoGain scoring
//   - feature_extraction: document-term count matrices from tokenized text
//   - metrics: mean squared error
//   - core/model: estimator interfaces and input validation
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log: error types and structured logging
//
// # Performance
//
// Per-column statistics and per-feature gains run in parallel once the column
// count reaches parallel.DefaultThreshold. Each column is still summed left to
// right, so results do not depend on scheduling.
package featkit
