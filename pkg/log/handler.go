package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	fkerrors "github.com/YuminosukeSato/featkit/pkg/errors"
)

// ErrFmtHandler は ErrAttrKey の error からスタックトレースと featkit のエラーコードを付ける slog ハンドラ
//
// 付与する属性:
//   - stacktrace: cockroachdb/errors が記録したスタック
//   - error.code: INVALID_PARAMETER などのコード（featkit のエラー型のときのみ）
//   - error.type: エラー型の名前
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler with ErrFmtHandler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{handler: handler}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		err, _ = attr.Value.Any().(error)
		return false
	})
	if err == nil {
		return eh.handler.Handle(ctx, r)
	}

	if stacktrace := extractStacktrace(err); stacktrace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
	}
	if code, typ := classify(err); code != "" {
		r.AddAttrs(slog.String(ErrorCodeKey, code), slog.String(ErrorTypeKey, typ))
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// classify はエラーチェーンから featkit のエラーコードと型名を求める
func classify(err error) (code, typ string) {
	var (
		paramErr *fkerrors.InvalidParameterError
		varErr   *fkerrors.InsufficientVarianceError
		dimErr   *fkerrors.DimensionError
		numErr   *fkerrors.NumericalInstabilityError
	)
	switch {
	case errors.As(err, &varErr):
		return ErrorInsufficientVar, "InsufficientVarianceError"
	case errors.As(err, &paramErr):
		return ErrorInvalidParameter, "InvalidParameterError"
	case errors.As(err, &dimErr):
		return ErrorDimensionMismatch, "DimensionError"
	case errors.As(err, &numErr):
		return ErrorNumerical, "NumericalInstabilityError"
	case errors.Is(err, fkerrors.ErrEmptyData):
		return ErrorEmptyData, "EmptyData"
	}
	return "", ""
}
