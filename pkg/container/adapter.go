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

// Package container embeds and extracts the signed AVCF block as a single
// tagged string, per container format family.
package container

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/peterkelly70/acvf/pkg/avcf"
	"github.com/peterkelly70/acvf/pkg/ffmpeg"
)

// Adapter is the per-format capability set of the scheme: embed a signed
// block into a container, extract it back out.
type Adapter interface {
	// Embed copies inputPath to outputPath with the serialized block
	// attached as this format's metadata tag.
	Embed(ctx context.Context, inputPath, outputPath string, block avcf.SignedBlock) error

	// Extract reads the block from the container at path. It returns
	// (nil, nil) when no AVCF tag is present anywhere.
	Extract(ctx context.Context, path string) (*avcf.SignedBlock, error)
}

// ForPath selects the adapter for a file by its extension: .mp4 is MP4,
// .mkv and .webm are the Matroska family. Anything else is unsupported.
func ForPath(tool *ffmpeg.Tool, path string) (Adapter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return NewMP4Adapter(tool), nil
	case ".mkv":
		return NewMatroskaAdapter(tool), nil
	case ".webm":
		return NewWebMAdapter(tool), nil
	default:
		return nil, avcf.NewContainerError("dispatch",
			"unsupported container format: "+filepath.Ext(path), nil)
	}
}

// embedTag serializes the block and asks the tool to stream-copy with the
// tag attached.
func embedTag(ctx context.Context, tool *ffmpeg.Tool, inputPath, outputPath, key string, block avcf.SignedBlock, extraArgs ...string) error {
	payload, err := json.Marshal(block)
	if err != nil {
		return avcf.NewContainerError("embed", "cannot serialize signed block", err)
	}
	if err := tool.CopyWithTag(ctx, inputPath, outputPath, key, string(payload), extraArgs...); err != nil {
		return avcf.NewContainerError("embed", "multimedia tool failed", err)
	}
	return nil
}

// extractTag probes the container and searches stream tags first, then
// format tags, for the adapter's key.
func extractTag(ctx context.Context, tool *ffmpeg.Tool, path, key string) (*avcf.SignedBlock, error) {
	probe, err := tool.Probe(ctx, path)
	if err != nil {
		return nil, avcf.NewContainerError("extract", "probe failed", err)
	}

	for _, stream := range probe.Streams {
		if payload, ok := stream.Tags[key]; ok {
			return parseBlock(payload)
		}
	}
	if payload, ok := probe.Format.Tags[key]; ok {
		return parseBlock(payload)
	}
	return nil, nil
}

func parseBlock(payload string) (*avcf.SignedBlock, error) {
	var block avcf.SignedBlock
	if err := json.Unmarshal([]byte(payload), &block); err != nil {
		return nil, avcf.NewContainerError("extract", "malformed tag payload", err)
	}
	if err := block.Validate(); err != nil {
		return nil, avcf.NewContainerError("extract", "invalid tag payload", err)
	}
	return &block, nil
}
