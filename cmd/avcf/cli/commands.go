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

// Package cli wires the avcf command tree. It only parses arguments,
// formats output, and maps failures to exit codes; all real work happens in
// the engine packages.
package cli

import (
	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/peterkelly70/acvf/cmd/avcf/cli/options"
	"github.com/peterkelly70/acvf/pkg/logging"
)

var (
	ro     = &options.RootOptions{}
	logger logging.Logger
)

// New builds the avcf root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avcf",
		Short: "Sign and verify video container provenance.",
		Long: `avcf embeds a cryptographically signed provenance record into a video
container and verifies authorship and integrity later. The record is bound
to the container's exact bytes via a SHA-256 content hash and signed with an
OpenPGP key.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger = logging.NewLogger(ro.Verbose)
		},
	}
	ro.AddFlags(cmd)

	cmd.AddCommand(Sign())
	cmd.AddCommand(Verify())
	cmd.AddCommand(Process())
	cmd.AddCommand(version.Version())
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}
