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

// VerifyOptions are the flags of the verify command.
type VerifyOptions struct {
	KeyringHome string // --keyring-home
	NoFetchKeys bool   // --no-fetch-keys
	JSONOutput  bool   // --json-output
}

// AddFlags registers the verify flags.
func (o *VerifyOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.KeyringHome, "keyring-home", "",
		"Keyring directory. An ephemeral keyring is used when unset.")
	cmd.Flags().BoolVar(&o.NoFetchKeys, "no-fetch-keys", false,
		"Do not fetch missing public keys from URLs.")
	cmd.Flags().BoolVar(&o.JSONOutput, "json-output", false, "Print the result as JSON.")
}
