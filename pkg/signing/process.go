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

package signing

import (
	"context"
	"os"
	"path/filepath"

	"github.com/peterkelly70/acvf/pkg/avcf"
)

// ProcessOptions configures a process-and-sign operation: an ffmpeg
// processing pass followed by signing the processed result.
type ProcessOptions struct {
	// Sign holds the signing options. Sign.InputPath is the original
	// video; Sign.OutputPath receives the processed, signed result.
	Sign Options
	// FFmpegArgs are the ffmpeg output arguments of the processing pass,
	// e.g. a re-encode or scaling filter. Empty means stream copy.
	FFmpegArgs []string
}

// ProcessAndSign processes the input video with ffmpeg into a temporary
// file and signs that into the final output. The temporary file is removed
// on all exit paths.
func (s *Service) ProcessAndSign(ctx context.Context, opts ProcessOptions) (string, error) {
	tmp, err := os.CreateTemp("", "avcf-process-*"+filepath.Ext(opts.Sign.OutputPath))
	if err != nil {
		return "", avcf.NewContainerError("process", "cannot create temporary file", err)
	}
	tmpPath := tmp.Name()
	// ffmpeg writes the file itself; we only need the reserved name.
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", avcf.NewContainerError("process", "cannot create temporary file", err)
	}
	defer os.Remove(tmpPath)

	if err := s.tool.Process(ctx, opts.Sign.InputPath, tmpPath, opts.FFmpegArgs); err != nil {
		return "", avcf.NewContainerError("process", "ffmpeg processing failed", err)
	}

	signOpts := opts.Sign
	signOpts.InputPath = tmpPath
	return s.SignVideo(ctx, signOpts)
}
