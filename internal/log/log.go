/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level defines a log level for a module.
type Level = zapcore.Level

// Log levels.
const (
	DEBUG = zapcore.DebugLevel
	INFO  = zapcore.InfoLevel
	WARN  = zapcore.WarnLevel
	ERROR = zapcore.ErrorLevel
)

const defaultModule = ""

type levelRegistry struct {
	mutex  sync.RWMutex
	levels map[string]zap.AtomicLevel
}

// nolint:gochecknoglobals
var registry = &levelRegistry{levels: map[string]zap.AtomicLevel{
	defaultModule: zap.NewAtomicLevelAt(INFO),
}}

func (r *levelRegistry) get(module string) zap.AtomicLevel {
	r.mutex.RLock()
	level, ok := r.levels[module]
	r.mutex.RUnlock()

	if ok {
		return level
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	level, ok = r.levels[module]
	if !ok {
		level = zap.NewAtomicLevelAt(r.levels[defaultModule].Level())
		r.levels[module] = level
	}

	return level
}

// SetLevel sets the log level for the given module.
func SetLevel(module string, level Level) {
	registry.get(module).SetLevel(level)
}

// GetLevel returns the log level for the given module.
func GetLevel(module string) Level {
	return registry.get(module).Level()
}

// SetDefaultLevel sets the log level for modules that have no explicit level set.
func SetDefaultLevel(level Level) {
	registry.get(defaultModule).SetLevel(level)
}

// Log is a module-scoped logger.
type Log struct {
	*zap.Logger
	module string
}

// New returns a logger for the given module. The module's log level may be
// changed at any time with SetLevel.
func New(module string) *Log {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		registry.get(module),
	)

	return &Log{
		Logger: zap.New(core).With(zap.String(FieldModule, module)),
		module: module,
	}
}

// IsEnabled returns true if the given level is enabled for this logger's module.
func (l *Log) IsEnabled(level Level) bool {
	return registry.get(l.module).Enabled(level)
}
