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

// Package signing orchestrates the sign pipeline: key resolution, optional
// public key export, metadata construction, detached signing, and container
// embedding.
package signing

import (
	"context"

	"github.com/peterkelly70/acvf/pkg/avcf"
	"github.com/peterkelly70/acvf/pkg/container"
	"github.com/peterkelly70/acvf/pkg/crypto"
	"github.com/peterkelly70/acvf/pkg/ffmpeg"
	"github.com/peterkelly70/acvf/pkg/keyring"
	"github.com/peterkelly70/acvf/pkg/logging"
)

// Options configures one sign operation. Only InputPath, OutputPath, KeyID
// and AuthorName are required.
type Options struct {
	// InputPath is the video to sign.
	InputPath string
	// OutputPath is where the signed copy is written. Its extension
	// selects the container adapter.
	OutputPath string
	// KeyID identifies the signing key: exact key ID, fingerprint, or
	// fingerprint suffix.
	KeyID string

	AuthorName         string
	AuthorEmail        string
	AuthorOrganization string

	// PubkeyURL is recorded in the metadata for verifiers to fetch the
	// public key from.
	PubkeyURL string
	// EmbedPubkey embeds the armored public key into the metadata.
	EmbedPubkey bool
	// Passphrase unlocks the signing key if it is protected.
	Passphrase string

	Tags  []string
	Notes string
}

// Service signs videos. Close must be called to release the keyring; when
// the service opened an ephemeral keyring, Close deletes it.
type Service struct {
	engine *crypto.Engine
	kr     keyring.Keyring
	tool   *ffmpeg.Tool
	logger logging.Logger
}

// NewService opens the keyring at home (ephemeral when empty) and assembles
// a signing service around it.
func NewService(home string, logger logging.Logger) (*Service, error) {
	logger = logging.EnsureLogger(logger)
	kr, err := keyring.Open(home)
	if err != nil {
		return nil, avcf.NewKeyError("open keyring", "cannot open keyring", err)
	}
	return NewServiceWith(kr, ffmpeg.New(logger), logger), nil
}

// NewServiceWith assembles a signing service from existing collaborators.
func NewServiceWith(kr keyring.Keyring, tool *ffmpeg.Tool, logger logging.Logger) *Service {
	logger = logging.EnsureLogger(logger)
	return &Service{
		engine: crypto.NewEngine(kr, logger),
		kr:     kr,
		tool:   tool,
		logger: logger,
	}
}

// Engine exposes the underlying crypto engine.
func (s *Service) Engine() *crypto.Engine {
	return s.engine
}

// Close releases the keyring.
func (s *Service) Close() error {
	return s.kr.Close()
}

// SignVideo runs the sign pipeline and returns the output path. Any stage
// failure aborts the whole operation; no partial output survives.
func (s *Service) SignVideo(ctx context.Context, opts Options) (string, error) {
	fingerprint, err := s.resolveKey(opts.KeyID)
	if err != nil {
		return "", err
	}
	s.logger.Debug("resolved key %q to fingerprint %s", opts.KeyID, fingerprint)

	embeddedPubkey := ""
	if opts.EmbedPubkey {
		exported, err := s.kr.ExportPublicKey(fingerprint)
		if err != nil || exported == "" {
			return "", avcf.NewKeyError("export", "failed to export public key "+fingerprint, err)
		}
		embeddedPubkey = exported
	}

	md, err := s.engine.BuildMetadata(opts.InputPath, fingerprint, crypto.MetadataOptions{
		AuthorName:         opts.AuthorName,
		AuthorEmail:        opts.AuthorEmail,
		AuthorOrganization: opts.AuthorOrganization,
		PubkeyURL:          opts.PubkeyURL,
		EmbeddedPubkey:     embeddedPubkey,
		Tags:               opts.Tags,
		Notes:              opts.Notes,
	})
	if err != nil {
		return "", err
	}

	block, err := s.engine.Sign(md, opts.KeyID, opts.Passphrase)
	if err != nil {
		return "", err
	}

	adapter, err := container.ForPath(s.tool, opts.OutputPath)
	if err != nil {
		return "", err
	}
	if err := adapter.Embed(ctx, opts.InputPath, opts.OutputPath, block); err != nil {
		return "", err
	}

	s.logger.Info("signed %s as %s (author %s)", opts.InputPath, opts.OutputPath, opts.AuthorName)
	return opts.OutputPath, nil
}

// resolveKey maps a caller-supplied key identifier to the fingerprint of a
// locally held private key.
func (s *Service) resolveKey(keyID string) (string, error) {
	keys, err := s.kr.ListKeys()
	if err != nil {
		return "", avcf.NewKeyError("resolve", "cannot list keyring", err)
	}
	for _, k := range keys {
		if keyring.MatchesIdentifier(k, keyID) {
			return k.Fingerprint, nil
		}
	}
	return "", avcf.NewKeyError("resolve", "private key not found: "+keyID, nil)
}
