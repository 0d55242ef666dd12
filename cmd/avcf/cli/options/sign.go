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

import (
	"github.com/spf13/cobra"

	"github.com/peterkelly70/acvf/pkg/signing"
)

// SignOptions are the flags of the sign (and process) commands.
type SignOptions struct {
	OutputPath         string   // --output OUTPUT (required)
	KeyID              string   // --key-id KEY (required)
	AuthorName         string   // --author-name NAME (required)
	AuthorEmail        string   // --author-email
	AuthorOrganization string   // --author-organization
	PubkeyURL          string   // --pubkey-url
	EmbedPubkey        bool     // --embed-pubkey
	PassphraseFile     string   // --passphrase-file
	KeyringHome        string   // --keyring-home
	Tags               []string // --tag (repeatable)
	Notes              string   // --notes
	JSONOutput         bool     // --json-output
}

// AddFlags registers the sign flags.
func (o *SignOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.OutputPath, "output", "o", "",
		"Path of the signed output video. Its extension selects the container format. [required]")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().StringVarP(&o.KeyID, "key-id", "k", "",
		"Signing key: key ID, fingerprint, or fingerprint suffix. [required]")
	_ = cmd.MarkFlagRequired("key-id")
	cmd.Flags().StringVar(&o.AuthorName, "author-name", "",
		"Name of the author or organization. [required]")
	_ = cmd.MarkFlagRequired("author-name")
	cmd.Flags().StringVar(&o.AuthorEmail, "author-email", "", "Email of the author.")
	cmd.Flags().StringVar(&o.AuthorOrganization, "author-organization", "", "Organization of the author.")
	cmd.Flags().StringVar(&o.PubkeyURL, "pubkey-url", "",
		"URL verifiers can fetch the author's public key from.")
	cmd.Flags().BoolVar(&o.EmbedPubkey, "embed-pubkey", false,
		"Embed the armored public key into the metadata.")
	cmd.Flags().StringVar(&o.PassphraseFile, "passphrase-file", "",
		"File whose first line is the signing key passphrase.")
	cmd.Flags().StringVar(&o.KeyringHome, "keyring-home", "",
		"Keyring directory. An ephemeral keyring is used when unset.")
	cmd.Flags().StringArrayVar(&o.Tags, "tag", nil, "Free-form tag, repeatable.")
	cmd.Flags().StringVar(&o.Notes, "notes", "", "Free-form notes about the content.")
	cmd.Flags().BoolVar(&o.JSONOutput, "json-output", false, "Print the result as JSON.")
}

// ToSigningOptions converts CLI flags into engine signing options.
func (o *SignOptions) ToSigningOptions(inputPath, passphrase string) signing.Options {
	return signing.Options{
		InputPath:          inputPath,
		OutputPath:         o.OutputPath,
		KeyID:              o.KeyID,
		AuthorName:         o.AuthorName,
		AuthorEmail:        o.AuthorEmail,
		AuthorOrganization: o.AuthorOrganization,
		PubkeyURL:          o.PubkeyURL,
		EmbedPubkey:        o.EmbedPubkey,
		Passphrase:         passphrase,
		Tags:               o.Tags,
		Notes:              o.Notes,
	}
}
