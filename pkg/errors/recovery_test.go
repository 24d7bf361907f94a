package errors

import (
	"fmt"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// mulShapes は gonum の Mul を呼び、形が合わなければ panic させる
func mulShapes(a, b *mat.Dense) (out *mat.Dense, err error) {
	defer Recover(&err, "mulShapes")
	out = &mat.Dense{}
	out.Mul(a, b)
	return out, nil
}

func TestRecoverGonumShapePanic(t *testing.T) {
	_, err := mulShapes(mat.NewDense(2, 3, nil), mat.NewDense(2, 3, nil))
	if err == nil {
		t.Fatal("expected error from mismatched Mul")
	}

	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("expected PanicError, got %T", err)
	}
	if panicErr.Operation != "mulShapes" {
		t.Errorf("Operation = %q", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("expected a stack trace")
	}
	if !Is(err, mat.ErrShape) {
		t.Errorf("expected errors.Is(err, mat.ErrShape), got %v", err)
	}
}

func TestRecoverNoPanic(t *testing.T) {
	out, err := mulShapes(mat.NewDense(2, 3, nil), mat.NewDense(3, 1, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r, c := out.Dims(); r != 2 || c != 1 {
		t.Errorf("Dims() = %d x %d", r, c)
	}
}

func TestRecoverKeepsExistingError(t *testing.T) {
	original := NewInvalidParameterError("PCA.Fit", "n_components", "out of range", 5)

	fn := func() (err error) {
		defer Recover(&err, "PCA.Fit")
		err = original
		panic("solver exploded")
	}
	err := fn()

	msg := err.Error()
	if !strings.Contains(msg, "panic in PCA.Fit: solver exploded") {
		t.Errorf("message should describe the panic: %s", msg)
	}
	if !strings.Contains(msg, "invalid parameter 'n_components'") {
		t.Errorf("message should keep the original error: %s", msg)
	}
	if !Is(err, ErrInvalidParameter) {
		t.Error("original sentinel should stay reachable")
	}
}

func TestSafeExecute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		if err := SafeExecute("svd", func() error { return nil }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("returned error passes through", func(t *testing.T) {
		want := fmt.Errorf("factorization failed")
		if err := SafeExecute("svd", func() error { return want }); err != want {
			t.Fatalf("got %v, want %v", err, want)
		}
	})

	t.Run("panic", func(t *testing.T) {
		err := SafeExecute("svd", func() error { panic("boom") })
		var panicErr *PanicError
		if !As(err, &panicErr) {
			t.Fatalf("expected PanicError, got %T", err)
		}
		if panicErr.PanicValue != "boom" {
			t.Errorf("PanicValue = %v", panicErr.PanicValue)
		}
	})
}

func TestPanicErrorFormatting(t *testing.T) {
	panicErr := NewPanicError("Jacobi", 42)

	if got := panicErr.Error(); got != "panic in Jacobi: 42" {
		t.Errorf("Error() = %q", got)
	}
	if !strings.Contains(panicErr.String(), "Stack trace:") {
		t.Error("String() should include the stack trace")
	}
	if panicErr.Unwrap() != nil {
		t.Error("Unwrap() should be nil for a non-error panic value")
	}
}

func TestRecoverPanicValueTypes(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"string", "singular matrix", "singular matrix"},
		{"int", 7, "7"},
		{"error", fmt.Errorf("mat: zero length"), "mat: zero length"},
		{"nil", nil, "panic called with nil argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SafeExecute("types", func() error { panic(tt.value) })
			var panicErr *PanicError
			if !As(err, &panicErr) {
				t.Fatalf("expected PanicError, got %T", err)
			}
			if got := fmt.Sprint(panicErr.PanicValue); !strings.HasPrefix(got, tt.want) {
				t.Errorf("PanicValue = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func BenchmarkRecoverNoPanic(b *testing.B) {
	a := mat.NewDense(4, 4, nil)
	for i := 0; i < b.N; i++ {
		_, _ = mulShapes(a, a)
	}
}
