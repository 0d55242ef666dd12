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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkelly70/acvf/cmd/avcf/cli/options"
	"github.com/peterkelly70/acvf/pkg/signing"
	"github.com/peterkelly70/acvf/pkg/utils"
)

// Sign builds the sign command.
func Sign() *cobra.Command {
	o := &options.SignOptions{}

	cmd := &cobra.Command{
		Use:   "sign VIDEO_FILE",
		Short: "Sign a video file with AVCF provenance metadata.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd, o, args[0])
		},
	}
	o.AddFlags(cmd)
	return cmd
}

func runSign(cmd *cobra.Command, o *options.SignOptions, inputPath string) error {
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

	outputPath, err := svc.SignVideo(cmd.Context(), o.ToSigningOptions(inputPath, passphrase))
	if err != nil {
		return err
	}
	return printSignResult(cmd, o, outputPath)
}

func printSignResult(cmd *cobra.Command, o *options.SignOptions, outputPath string) error {
	if o.JSONOutput {
		out, err := json.MarshalIndent(map[string]string{
			"output": outputPath,
			"key_id": o.KeyID,
			"author": o.AuthorName,
		}, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}
	cmd.Printf("Signed video written to %s\n", outputPath)
	cmd.Printf("  Key:    %s\n", o.KeyID)
	cmd.Printf("  Author: %s\n", o.AuthorName)
	return nil
}

// resolvePassphrase reads the passphrase file when one was given.
func resolvePassphrase(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	passphrase, err := utils.ReadPassphraseFile(path)
	if err != nil {
		return "", fmt.Errorf("resolving passphrase: %w", err)
	}
	return passphrase, nil
}
