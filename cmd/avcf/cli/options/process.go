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

package options

import "github.com/spf13/cobra"

// ProcessOptions are the flags of the process command: the sign flags plus
// the ffmpeg pass-through arguments.
type ProcessOptions struct {
	SignOptions
	FFmpegArgs []string // --ffmpeg-arg (repeatable)
}

// AddFlags registers the process flags.
func (o *ProcessOptions) AddFlags(cmd *cobra.Command) {
	o.SignOptions.AddFlags(cmd)
	cmd.Flags().StringArrayVar(&o.FFmpegArgs, "ffmpeg-arg", nil,
		"Raw ffmpeg output argument for the processing pass, repeatable (e.g. --ffmpeg-arg=-vf --ffmpeg-arg=scale=1280:720).")
}
