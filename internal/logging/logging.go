// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package logging holds the logger shared by scalerfx and its sub-packages.
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically so that Set can be
// called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// Set replaces the logger. Passing nil restores the silent default.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// L returns the current logger.
func L() *zap.Logger {
	return loggerPtr.Load()
}
