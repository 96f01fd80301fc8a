// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the append-only file logger used by the news
// poller. The log sink is best effort by contract: a logger is always
// returned, degrading to a no-op when the file cannot be opened.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFileLogger returns a logger appending timestamped lines to path.
// An empty path or any setup failure yields a no-op logger; the pipeline
// must never fail because its log file is unavailable.
func NewFileLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(f),
		zap.InfoLevel,
	)
	return zap.New(core)
}
