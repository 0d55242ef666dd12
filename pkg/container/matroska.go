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

package container

import (
	"context"

	"github.com/peterkelly70/acvf/pkg/avcf"
	"github.com/peterkelly70/acvf/pkg/ffmpeg"
)

// MatroskaTagKey is the metadata tag key of the Matroska/WebM variant.
// Matroska tag names are conventionally upper case.
const MatroskaTagKey = "AVCF_AUTH"

var (
	_ Adapter = (*MatroskaAdapter)(nil)
	_ Adapter = (*WebMAdapter)(nil)
)

// MatroskaAdapter stores the signed block as a Matroska container tag.
type MatroskaAdapter struct {
	tool *ffmpeg.Tool
}

// NewMatroskaAdapter creates the Matroska adapter.
func NewMatroskaAdapter(tool *ffmpeg.Tool) *MatroskaAdapter {
	return &MatroskaAdapter{tool: tool}
}

// Embed attaches the block under the AVCF_AUTH tag.
func (a *MatroskaAdapter) Embed(ctx context.Context, inputPath, outputPath string, block avcf.SignedBlock) error {
	return embedTag(ctx, a.tool, inputPath, outputPath, MatroskaTagKey, block)
}

// Extract reads the AVCF_AUTH tag, stream scope first, then format scope.
func (a *MatroskaAdapter) Extract(ctx context.Context, path string) (*avcf.SignedBlock, error) {
	return extractTag(ctx, a.tool, path, MatroskaTagKey)
}

// WebMAdapter handles WebM containers. WebM is a Matroska profile, so this
// is a format alias that delegates to the Matroska adapter: same tag key,
// same logic.
type WebMAdapter struct {
	matroska *MatroskaAdapter
}

// NewWebMAdapter creates the WebM adapter over a Matroska adapter.
func NewWebMAdapter(tool *ffmpeg.Tool) *WebMAdapter {
	return &WebMAdapter{matroska: NewMatroskaAdapter(tool)}
}

// Embed delegates to the Matroska adapter.
func (a *WebMAdapter) Embed(ctx context.Context, inputPath, outputPath string, block avcf.SignedBlock) error {
	return a.matroska.Embed(ctx, inputPath, outputPath, block)
}

// Extract delegates to the Matroska adapter.
func (a *WebMAdapter) Extract(ctx context.Context, path string) (*avcf.SignedBlock, error) {
	return a.matroska.Extract(ctx, path)
}
