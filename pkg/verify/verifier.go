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

// Package verify orchestrates AVCF verification: extract the signed block,
// resolve the signer key (local keyring, remote fetch, embedded fallback),
// check the signature, then check the content hash.
package verify

import (
	"context"
	"fmt"

	"github.com/peterkelly70/acvf/pkg/avcf"
	"github.com/peterkelly70/acvf/pkg/container"
	"github.com/peterkelly70/acvf/pkg/crypto"
	"github.com/peterkelly70/acvf/pkg/ffmpeg"
	"github.com/peterkelly70/acvf/pkg/keyring"
	"github.com/peterkelly70/acvf/pkg/logging"
)

// Service verifies videos. Close must be called to release the keyring;
// when the service opened an ephemeral keyring, Close deletes it.
type Service struct {
	engine  *crypto.Engine
	kr      keyring.Keyring
	tool    *ffmpeg.Tool
	fetcher KeyFetcher
	logger  logging.Logger
}

// NewService opens the keyring at home (ephemeral when empty) and assembles
// a verification service around it.
func NewService(home string, logger logging.Logger) (*Service, error) {
	logger = logging.EnsureLogger(logger)
	kr, err := keyring.Open(home)
	if err != nil {
		return nil, avcf.NewKeyError("open keyring", "cannot open keyring", err)
	}
	return NewServiceWith(kr, ffmpeg.New(logger), NewHTTPKeyFetcher(), logger), nil
}

// NewServiceWith assembles a verification service from existing
// collaborators.
func NewServiceWith(kr keyring.Keyring, tool *ffmpeg.Tool, fetcher KeyFetcher, logger logging.Logger) *Service {
	logger = logging.EnsureLogger(logger)
	return &Service{
		engine:  crypto.NewEngine(kr, logger),
		kr:      kr,
		tool:    tool,
		fetcher: fetcher,
		logger:  logger,
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

// VerifyVideo runs the verification decision procedure on the video at
// path. fetchKeys enables the one bounded network call of the scheme: a GET
// of the metadata's key URL when the local keyring lacks the signer key.
//
// Verification never mutates the file under test, and each external call is
// attempted at most once. A missing AVCF tag is the MISSING verdict, not an
// error; errors are reserved for malfunctioning collaborators.
func (s *Service) VerifyVideo(ctx context.Context, path string, fetchKeys bool) (avcf.VerificationResult, error) {
	adapter, err := container.ForPath(s.tool, path)
	if err != nil {
		return avcf.VerificationResult{}, err
	}

	block, err := adapter.Extract(ctx, path)
	if err != nil {
		return avcf.VerificationResult{}, err
	}
	if block == nil {
		return avcf.NewResult(avcf.StatusMissing, nil, "no AVCF metadata found in the video file"), nil
	}
	md := block.Metadata

	if fetchKeys && md.PubkeyURL != "" {
		if verdict, ok, err := s.resolveRemoteKey(ctx, md); err != nil {
			return avcf.VerificationResult{}, err
		} else if !ok {
			return verdict, nil
		}
	}

	result := s.engine.VerifySignature(*block)
	if result.Status != avcf.StatusValid {
		return result, nil
	}

	// A valid signature over metadata whose claimed hash no longer matches
	// the file is a detected tamper, not a valid result.
	match, err := s.engine.VerifyHash(path, md)
	if err != nil {
		return avcf.VerificationResult{}, err
	}
	if !match {
		return avcf.NewResult(avcf.StatusInvalid, &md,
			"video hash does not match the hash in the metadata"), nil
	}
	return result, nil
}

// resolveRemoteKey fetches and imports the signer key from the metadata's
// URL when the keyring does not already hold it. On fetch or import failure
// it falls back to the embedded key if one exists. The bool is true when
// verification should proceed; otherwise the returned verdict is terminal.
func (s *Service) resolveRemoteKey(ctx context.Context, md avcf.Metadata) (avcf.VerificationResult, bool, error) {
	has, err := s.engine.HasKey(md.PubkeyFingerprint)
	if err != nil {
		return avcf.VerificationResult{}, false, err
	}
	if has {
		return avcf.VerificationResult{}, true, nil
	}

	s.logger.Debug("fetching public key from %s", md.PubkeyURL)
	fetchErr := s.fetchAndImport(ctx, md.PubkeyURL)
	if fetchErr == nil {
		return avcf.VerificationResult{}, true, nil
	}

	if md.EmbeddedPubkey == "" {
		return avcf.NewResult(avcf.StatusKeyNotFound, &md,
			fmt.Sprintf("failed to fetch key from URL and no embedded key available: %v", fetchErr)), false, nil
	}
	s.logger.Debug("key fetch failed (%v), trying embedded key", fetchErr)
	if _, importErr := s.engine.ImportKey(md.EmbeddedPubkey); importErr != nil {
		return avcf.NewResult(avcf.StatusKeyNotFound, &md,
			fmt.Sprintf("failed to fetch key from URL and failed to import embedded key: %v; %v",
				fetchErr, importErr)), false, nil
	}
	return avcf.VerificationResult{}, true, nil
}

func (s *Service) fetchAndImport(ctx context.Context, url string) error {
	keyText, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	_, err = s.engine.ImportKey(keyText)
	return err
}
