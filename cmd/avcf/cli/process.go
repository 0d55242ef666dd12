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

package cli

import (
	"github.com/spf13/cobra"

	"github.com/peterkelly70/acvf/cmd/avcf/cli/options"
	"github.com/peterkelly70/acvf/pkg/signing"
	"github.com/peterkelly70/acvf/pkg/utils"
)

// Process builds the process command: run an ffmpeg pass over the input,
// then sign the processed result.
func Process() *cobra.Command {
	o := &options.ProcessOptions{}

	cmd := &cobra.Command{
		Use:   "process VIDEO_FILE",
		Short: "Process a video with ffmpeg and sign the result.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, o, args[0])
		},
	}
	o.AddFlags(cmd)
	return cmd
}

func runProcess(cmd *cobra.Command, o *options.ProcessOptions, inputPath string) error {
	if err := utils.ValidateFileExists("input video", inputPath); err != nil {
		return err
	}
	passphrase, err := resolvePassphrase(o.PassphraseFile)
	if err != nil {
		return err
	}

	svc, err := signing.NewService(o.KeyringHome, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	outputPath, err := svc.ProcessAndSign(cmd.Context(), signing.ProcessOptions{
		Sign:       o.ToSigningOptions(inputPath, passphrase),
		FFmpegArgs: o.FFmpegArgs,
	})
	if err != nil {
		return err
	}
	return printSignResult(cmd, &o.SignOptions, outputPath)
}
