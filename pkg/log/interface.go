// Package log provides a structured logging interface for featkit components.
//
// The Logger interface is slog-compatible. The default implementation is backed by
// zerolog (see zerolog.go); a log/slog adapter is available through NewSlogLogger.
// Components obtain named loggers with GetLoggerWithName and emit key/value pairs
// using the attribute keys in attributes.go.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("decomposition.pca").With(
//	    log.ModelNameKey, "PCA",
//	)
//	logger.Debug("fit completed",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 5,
//	)
package log

import (
	"context"
)

// Logger は featkit の各コンポーネントが使う構造化ロガー
//
// fields は key, value の交互の並び。Error だけは先頭に error を置ける:
//
//	logger.Error("PCA fit failed", err, log.OperationKey, log.OperationFit)
//
// 実装は zerolog (ZerologLogger)、log/slog (NewSlogLogger)、
// テスト用の TestLogger の 3 つ。
type Logger interface {
	// Debug は Fit の要約など、通常は出さない詳細を記録する
	Debug(msg string, fields ...any)

	Info(msg string, fields ...any)

	// Warn は処理を続けられる問題を記録する。errors.Warn の警告もここに来る。
	Warn(msg string, fields ...any)

	// Error は先頭の fields が error ならスタックトレースごと記録する
	Error(msg string, fields ...any)

	// With returns a child logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled は level のレコードが出力されるかを返す。
	// 高価な値（説明分散の配列など）を組み立てる前の確認に使う。
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level with the same values as slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the slog name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider はロガーを生成する。SetProvider で差し替えられる。
type LoggerProvider interface {
	GetLogger() Logger

	// GetLoggerWithName は ComponentKey に name を付けたロガーを返す
	GetLoggerWithName(name string) Logger

	// SetLevel changes the minimum level of every logger the provider hands out.
	SetLevel(level Level)
}
