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

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	if got := NewLogger(false).GetLevel(); got != LevelInfo {
		t.Errorf("NewLogger(false) level = %v, want %v", got, LevelInfo)
	}
	if got := NewLogger(true).GetLevel(); got != LevelDebug {
		t.Errorf("NewLogger(true) level = %v, want %v", got, LevelDebug)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOptions(LoggerOptions{Level: LevelWarn, Output: &buf})

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("below-threshold lines emitted: %q", out)
	}
	if !strings.Contains(out, "WARN warn 3") || !strings.Contains(out, "ERROR error 4") {
		t.Errorf("threshold lines missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOptions(LoggerOptions{Format: FormatJSON, Output: &buf})

	logger.Info("signed %s", "out.mp4")

	var line map[string]string
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not a JSON line: %v (%q)", err, buf.String())
	}
	if line["level"] != "INFO" {
		t.Errorf("level = %q, want INFO", line["level"])
	}
	if line["message"] != "signed out.mp4" {
		t.Errorf("message = %q, want formatted message", line["message"])
	}
	if line["time"] == "" {
		t.Error("time field missing")
	}
}

func TestEnsureLogger(t *testing.T) {
	if EnsureLogger(nil) == nil {
		t.Fatal("EnsureLogger(nil) = nil, want a usable logger")
	}
	logger := NewLogger(true)
	if got := EnsureLogger(logger); got != Logger(logger) {
		t.Error("EnsureLogger must pass an existing logger through")
	}
}
