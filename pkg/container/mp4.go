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

// MP4TagKey is the metadata tag key of the MP4 variant.
const MP4TagKey = "avcf_auth"

var _ Adapter = (*MP4Adapter)(nil)

// MP4Adapter stores the signed block as an MP4 container tag.
type MP4Adapter struct {
	tool *ffmpeg.Tool
}

// NewMP4Adapter creates the MP4 adapter.
func NewMP4Adapter(tool *ffmpeg.Tool) *MP4Adapter {
	return &MP4Adapter{tool: tool}
}

// Embed attaches the block under the avcf_auth tag. MP4 needs
// use_metadata_tags so the muxer keeps arbitrary tag keys.
func (a *MP4Adapter) Embed(ctx context.Context, inputPath, outputPath string, block avcf.SignedBlock) error {
	return embedTag(ctx, a.tool, inputPath, outputPath, MP4TagKey, block,
		"-movflags", "use_metadata_tags")
}

// Extract reads the avcf_auth tag, stream scope first, then format scope.
func (a *MP4Adapter) Extract(ctx context.Context, path string) (*avcf.SignedBlock, error) {
	return extractTag(ctx, a.tool, path, MP4TagKey)
}
