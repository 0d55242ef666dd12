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

// Package ffmpeg wraps the external multimedia tool contract: stream-copy a
// container while setting one metadata tag, probe a container's tag maps,
// and run arbitrary processing passes. The actual work is delegated to the
// ffmpeg and ffprobe executables.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/peterkelly70/acvf/pkg/logging"
)

// Runner executes an external command and returns its stdout. Failures
// include the command's stderr in the error. Tests substitute a fake runner.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, detail)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// ProbeStream is one stream entry of a probe result.
type ProbeStream struct {
	Index     int               `json:"index"`
	CodecType string            `json:"codec_type"`
	Tags      map[string]string `json:"tags"`
}

// ProbeFormat is the container-level entry of a probe result.
type ProbeFormat struct {
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// ProbeResult is the subset of ffprobe JSON output the engine reads.
type ProbeResult struct {
	Streams []ProbeStream `json:"streams"`
	Format  ProbeFormat   `json:"format"`
}

// Tool invokes ffmpeg and ffprobe.
type Tool struct {
	runner      Runner
	ffmpegPath  string
	ffprobePath string
	logger      logging.Logger
}

// New returns a Tool using the ffmpeg and ffprobe binaries from PATH.
func New(logger logging.Logger) *Tool {
	return NewWithRunner(execRunner{}, logger)
}

// NewWithRunner returns a Tool using a custom command runner.
func NewWithRunner(r Runner, logger logging.Logger) *Tool {
	return &Tool{
		runner:      r,
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		logger:      logging.EnsureLogger(logger),
	}
}

// CopyWithTag copies all streams of inputPath unchanged to outputPath while
// setting one container-scoped metadata tag. extraArgs are inserted before
// the tag, letting format adapters add container-specific flags. A partial
// output file is removed when the tool fails.
func (t *Tool) CopyWithTag(ctx context.Context, inputPath, outputPath, key, value string, extraArgs ...string) error {
	args := []string{"-y", "-i", inputPath, "-map", "0", "-c", "copy"}
	args = append(args, extraArgs...)
	args = append(args, "-metadata", key+"="+value, outputPath)

	t.logger.Debug("ffmpeg copy %s -> %s (tag %s)", inputPath, outputPath, key)
	if _, err := t.runner.Run(ctx, t.ffmpegPath, args...); err != nil {
		// Never leave a corrupt partial file behind.
		_ = os.Remove(outputPath)
		return err
	}
	return nil
}

// Probe enumerates the format-level and stream-level tag maps of the
// container at path.
func (t *Tool) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	args := []string{"-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", path}

	t.logger.Debug("ffprobe %s", path)
	out, err := t.runner.Run(ctx, t.ffprobePath, args...)
	if err != nil {
		return nil, err
	}
	var result ProbeResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("parsing ffprobe output: %w", err)
	}
	return &result, nil
}

// Process runs an ffmpeg pass from inputPath to outputPath with the given
// output arguments. With no arguments the streams are copied unchanged.
// A partial output file is removed when the tool fails.
func (t *Tool) Process(ctx context.Context, inputPath, outputPath string, outputArgs []string) error {
	args := []string{"-y", "-i", inputPath}
	if len(outputArgs) == 0 {
		args = append(args, "-map", "0", "-c", "copy")
	} else {
		args = append(args, outputArgs...)
	}
	args = append(args, outputPath)

	t.logger.Debug("ffmpeg process %s -> %s (args %v)", inputPath, outputPath, outputArgs)
	if _, err := t.runner.Run(ctx, t.ffmpegPath, args...); err != nil {
		_ = os.Remove(outputPath)
		return err
	}
	return nil
}
