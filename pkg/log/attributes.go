// Package log defines standard attribute keys for preprocessing operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.name", "data.samples")
// so that logs from the reducer, the scaler and the scorer can be filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the component type.
	// Examples: "PCA", "StandardScaler", "InfoGain"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "inverse_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "decomposition.pca", "preprocessing.scaler"
	ComponentKey = "ml.component"

	// SolverKey names the decomposition routine used by PCA.
	SolverKey = "ml.solver"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the input.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the input.
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of distinct labels seen by a scorer.
	ClassesKey = "data.classes"

	// ConstantFeaturesKey counts zero-variance columns.
	ConstantFeaturesKey = "data.constant_features"
)

// Results
const (
	// ComponentsKey records the number of retained principal components.
	ComponentsKey = "result.components"

	// ExplainedVarianceKey records the cumulative explained variance ratio of retained components.
	ExplainedVarianceKey = "result.explained_variance_ratio"

	// EntropyKey records label entropy in bits.
	EntropyKey = "result.entropy_bits"

	// SelectedKey records the number of features kept after selection.
	SelectedKey = "result.selected"
)

// Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// ParallelKey reports whether per-column work was fanned out to goroutines.
	ParallelKey = "perf.parallel"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error or warning encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides a hint for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit              = "fit"
	OperationTransform        = "transform"
	OperationInverseTransform = "inverse_transform"
	OperationFitTransform     = "fit_transform"
	OperationScore            = "score"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidParameter  = "INVALID_PARAMETER"
	ErrorInsufficientVar   = "INSUFFICIENT_VARIANCE"
	ErrorNumerical         = "NUMERICAL_INSTABILITY"
)
