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
	"strings"

	"github.com/spf13/cobra"

	"github.com/peterkelly70/acvf/cmd/avcf/cli/options"
	"github.com/peterkelly70/acvf/pkg/avcf"
	"github.com/peterkelly70/acvf/pkg/utils"
	"github.com/peterkelly70/acvf/pkg/verify"
)

// Verify builds the verify command.
func Verify() *cobra.Command {
	o := &options.VerifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify VIDEO_FILE",
		Short: "Verify the AVCF signature in a video file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, o, args[0])
		},
	}
	o.AddFlags(cmd)
	return cmd
}

func runVerify(cmd *cobra.Command, o *options.VerifyOptions, videoPath string) error {
	if err := utils.ValidateFileExists("video file", videoPath); err != nil {
		return err
	}

	svc, err := verify.NewService(o.KeyringHome, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.VerifyVideo(cmd.Context(), videoPath, !o.NoFetchKeys)
	if err != nil {
		return err
	}
	if err := printVerifyResult(cmd, o, result); err != nil {
		return err
	}
	// The structured result is printed even for non-VALID verdicts; only
	// the exit code distinguishes them.
	if !result.OK() {
		return &verdictError{status: result.Status}
	}
	return nil
}

func printVerifyResult(cmd *cobra.Command, o *options.VerifyOptions, result avcf.VerificationResult) error {
	if o.JSONOutput {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Verification status: %s\n", strings.ToUpper(string(result.Status)))
	if result.ErrorMessage != "" {
		cmd.Printf("Error: %s\n", result.ErrorMessage)
	}
	if md := result.Metadata; md != nil {
		cmd.Println("\nMetadata:")
		cmd.Printf("  Author: %s\n", md.AuthorName)
		if md.AuthorEmail != "" {
			cmd.Printf("  Email: %s\n", md.AuthorEmail)
		}
		if md.AuthorOrganization != "" {
			cmd.Printf("  Organization: %s\n", md.AuthorOrganization)
		}
		cmd.Printf("  Timestamp: %s\n", md.Timestamp.UTC().Format(avcf.TimeLayout))
		cmd.Printf("  Public key fingerprint: %s\n", md.PubkeyFingerprint)
		if md.PubkeyURL != "" {
			cmd.Printf("  Public key URL: %s\n", md.PubkeyURL)
		}
		if md.EmbeddedPubkey != "" {
			cmd.Println("  Public key: embedded in metadata")
		}
		if len(md.Tags) > 0 {
			cmd.Printf("  Tags: %s\n", strings.Join(md.Tags, ", "))
		}
		if md.Notes != "" {
			cmd.Printf("  Notes: %s\n", md.Notes)
		}
	}
	return nil
}
