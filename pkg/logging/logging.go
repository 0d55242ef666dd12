// Copyright 2025 The AVCF Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides the leveled logger used across the engine.
package logging

// LogLevel controls the minimum severity a logger emits.
type LogLevel int

const (
	// LevelDebug emits everything, including per-step engine tracing.
	LevelDebug LogLevel = iota
	// LevelInfo emits normal operational messages.
	LevelInfo
	// LevelWarn emits only warnings and errors.
	LevelWarn
	// LevelError emits only errors.
	LevelError
)

// String returns the level name used in log output.
func (l LogLevel) String() string {
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

// Logger is the logging interface engine components accept.
type Logger interface {
	// Debug logs a message at debug level with printf-style formatting.
	Debug(format string, args ...interface{})
	// Info logs a message at info level with printf-style formatting.
	Info(format string, args ...interface{})
	// Warn logs a message at warn level with printf-style formatting.
	Warn(format string, args ...interface{})
	// Error logs a message at error level with printf-style formatting.
	Error(format string, args ...interface{})

	// GetLevel returns the current minimum log level.
	GetLevel() LogLevel
}

// EnsureLogger returns the given logger, or a quiet default when nil, so
// components never have to nil-check their logger.
func EnsureLogger(l Logger) Logger {
	if l == nil {
		return NewLogger(false)
	}
	return l
}
