package decomposition

import (
	"fmt"

	"github.com/YuminosukeSato/featkit/pkg/errors"
)

// ratioTolerance absorbs rounding in cumulative explained variance ratios.
const ratioTolerance = 1e-10

type selectorKind int

const (
	selectAll selectorKind = iota
	selectFixed
	selectThreshold
)

// ComponentSelector は保持する主成分の数の決め方
type ComponentSelector struct {
	kind      selectorKind
	k         int
	threshold float64
}

// AllComponents keeps every available component.
func AllComponents() ComponentSelector {
	return ComponentSelector{kind: selectAll}
}

// FixedComponents keeps exactly k components.
func FixedComponents(k int) ComponentSelector {
	return ComponentSelector{kind: selectFixed, k: k}
}

// VarianceThreshold keeps the smallest number of components whose cumulative
// explained variance ratio is at least p, with p in (0, 1].
func VarianceThreshold(p float64) ComponentSelector {
	return ComponentSelector{kind: selectThreshold, threshold: p}
}

// String returns the selector in the form used by GetParams.
func (s ComponentSelector) String() string {
	switch s.kind {
	case selectFixed:
		return fmt.Sprintf("fixed(%d)", s.k)
	case selectThreshold:
		return fmt.Sprintf("variance(%g)", s.threshold)
	default:
		return "all"
	}
}

// validate checks the selector against the number of available components
// before any decomposition work is done.
func (s ComponentSelector) validate(op string, available int) error {
	switch s.kind {
	case selectFixed:
		if s.k < 1 || s.k > available {
			return errors.NewInvalidParameterError(op, "n_components",
				fmt.Sprintf("must be in [1, %d]", available), s.k)
		}
	case selectThreshold:
		if !(s.threshold > 0 && s.threshold <= 1) {
			return errors.NewInvalidParameterError(op, "variance_threshold",
				"must be in (0, 1]", s.threshold)
		}
	}
	return nil
}

// resolve returns the number of components to keep given the explained
// variance ratios of the available components (descending).
func (s ComponentSelector) resolve(op string, ratios []float64) (int, error) {
	available := len(ratios)
	switch s.kind {
	case selectFixed:
		return s.k, nil
	case selectThreshold:
		var cum float64
		for i, r := range ratios {
			cum += r
			if cum >= s.threshold-ratioTolerance {
				return i + 1, nil
			}
		}
		// 分散ゼロのデータでは比率が全て 0 なので、どの閾値にも届かない
		return 0, errors.NewInsufficientVarianceError(op, s.threshold, cum, available)
	default:
		return available, nil
	}
}
