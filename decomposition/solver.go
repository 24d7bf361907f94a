package decomposition

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featkit/pkg/errors"
)

// Solver factorizes a centered data matrix.
//
// Decompose returns the min(n_samples, n_features) singular values of Xc in
// descending order together with the matching right singular vectors as the
// rows of vt. Signs of the vectors are left to the solver.
type Solver interface {
	Name() string
	Decompose(Xc *mat.Dense) (values []float64, vt *mat.Dense, err error)
}

// SVDSolver は中心化データの thin SVD を使う (デフォルト)
type SVDSolver struct{}

// Name implements Solver.
func (SVDSolver) Name() string { return "svd" }

// Decompose implements Solver.
func (SVDSolver) Decompose(Xc *mat.Dense) ([]float64, *mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(Xc, mat.SVDThin); !ok {
		return nil, nil, errors.NewModelError("SVDSolver.Decompose", "svd factorization failed", errors.ErrNotConverged)
	}

	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	// gonum は V を返すので、主成分を行に持つ Vᵀ にする
	vt := mat.DenseCopyOf(v.T())
	return values, vt, nil
}

// EigenSolver は XcᵀXc の対称固有値分解を使う
//
// 特異値は固有値の平方根になる。特徴量が少なくサンプルが多いデータで速い。
type EigenSolver struct{}

// Name implements Solver.
func (EigenSolver) Name() string { return "eigen" }

// Decompose implements Solver.
func (EigenSolver) Decompose(Xc *mat.Dense) ([]float64, *mat.Dense, error) {
	gram := gramMatrix(Xc)

	var es mat.EigenSym
	if ok := es.Factorize(gram, true); !ok {
		return nil, nil, errors.NewModelError("EigenSolver.Decompose", "eigen decomposition failed", errors.ErrNotConverged)
	}

	var vecs mat.Dense
	es.VectorsTo(&vecs)
	values, vt := fromEigen(es.Values(nil), &vecs, keepCount(Xc))
	return values, vt, nil
}

// JacobiSolver は XcᵀXc を巡回 Jacobi 回転で対角化する
//
// 外部の LAPACK 実装に依存しない参照用の solver。
type JacobiSolver struct {
	// Tol is the convergence threshold on the largest off-diagonal entry
	// relative to the Frobenius norm of XcᵀXc. Zero means 1e-12.
	Tol float64

	// MaxRotations caps the number of rotations. Zero means 100·n².
	MaxRotations int
}

// Name implements Solver.
func (JacobiSolver) Name() string { return "jacobi" }

// Decompose implements Solver. ErrNotConverged is returned when the
// off-diagonal mass does not fall below Tol within MaxRotations.
func (s JacobiSolver) Decompose(Xc *mat.Dense) ([]float64, *mat.Dense, error) {
	gram := gramMatrix(Xc)
	n := gram.SymmetricDim()

	tol := s.Tol
	if tol <= 0 {
		tol = 1e-12
	}
	maxRot := s.MaxRotations
	if maxRot <= 0 {
		maxRot = 100 * n * n
	}

	a := mat.NewDense(n, n, nil)
	a.Copy(gram)
	v := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		v.Set(i, i, 1)
	}

	scale := mat.Norm(a, 2)
	converged := false
	for iter := 0; iter <= maxRot; iter++ {
		p, q, off := maxOffDiagonal(a)
		if off <= tol*scale {
			converged = true
			break
		}
		if iter == maxRot {
			break
		}
		rotate(a, v, p, q)
	}
	if !converged {
		errors.Warn(errors.NewConvergenceWarning("Jacobi", maxRot, "off-diagonal entries above tolerance"))
		return nil, nil, errors.NewModelError("JacobiSolver.Decompose", "jacobi rotations did not converge", errors.ErrNotConverged)
	}

	eigvals := make([]float64, n)
	for i := 0; i < n; i++ {
		eigvals[i] = a.At(i, i)
	}
	values, vt := fromEigen(eigvals, v, keepCount(Xc))
	return values, vt, nil
}

func gramMatrix(Xc *mat.Dense) *mat.SymDense {
	_, c := Xc.Dims()
	gram := mat.NewSymDense(c, nil)
	gram.SymOuterK(1, Xc.T())
	return gram
}

func keepCount(Xc *mat.Dense) int {
	r, c := Xc.Dims()
	if r < c {
		return r
	}
	return c
}

// fromEigen sorts eigenpairs by descending eigenvalue (stable on index) and
// converts the first keep of them to singular values and rows of vt.
func fromEigen(eigvals []float64, vecs *mat.Dense, keep int) ([]float64, *mat.Dense) {
	n := len(eigvals)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return eigvals[order[a]] > eigvals[order[b]]
	})

	values := make([]float64, keep)
	vt := mat.NewDense(keep, n, nil)
	for i := 0; i < keep; i++ {
		idx := order[i]
		// 丸め誤差で負になった固有値は 0 とみなす
		values[i] = math.Sqrt(math.Max(eigvals[idx], 0))
		for j := 0; j < n; j++ {
			vt.Set(i, j, vecs.At(j, idx))
		}
	}
	return values, vt
}

func maxOffDiagonal(a *mat.Dense) (p, q int, off float64) {
	n, _ := a.Dims()
	p, q = 0, 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if v := math.Abs(a.At(i, j)); v > off {
				off = v
				p, q = i, j
			}
		}
	}
	return p, q, off
}

// rotate zeroes a[p][q] with a Jacobi rotation and accumulates it into v.
func rotate(a, v *mat.Dense, p, q int) {
	n, _ := a.Dims()
	app, aqq, apq := a.At(p, p), a.At(q, q), a.At(p, q)
	theta := 0.5 * math.Atan2(2*apq, aqq-app)
	c, s := math.Cos(theta), math.Sin(theta)

	a.Set(p, p, c*c*app-2*s*c*apq+s*s*aqq)
	a.Set(q, q, s*s*app+2*s*c*apq+c*c*aqq)
	a.Set(p, q, 0)
	a.Set(q, p, 0)
	for i := 0; i < n; i++ {
		if i == p || i == q {
			continue
		}
		aip, aiq := a.At(i, p), a.At(i, q)
		a.Set(i, p, c*aip-s*aiq)
		a.Set(p, i, c*aip-s*aiq)
		a.Set(i, q, s*aip+c*aiq)
		a.Set(q, i, s*aip+c*aiq)
	}
	for i := 0; i < n; i++ {
		vip, viq := v.At(i, p), v.At(i, q)
		v.Set(i, p, c*vip-s*viq)
		v.Set(i, q, s*vip+c*viq)
	}
}
