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

// Package crypto implements the AVCF crypto engine: content hashing,
// metadata construction, detached signing, and signature verification with
// local-then-embedded key resolution.
package crypto

import (
	"errors"
	"fmt"

	pgperrors "github.com/ProtonMail/go-crypto/openpgp/errors"

	"github.com/peterkelly70/acvf/pkg/avcf"
	"github.com/peterkelly70/acvf/pkg/hashing"
	"github.com/peterkelly70/acvf/pkg/keyring"
	"github.com/peterkelly70/acvf/pkg/logging"
)

// MetadataOptions carries the optional author and key-distribution fields of
// a metadata record. All members are optional except AuthorName.
type MetadataOptions struct {
	AuthorName         string
	AuthorEmail        string
	AuthorOrganization string
	PubkeyURL          string
	EmbeddedPubkey     string
	Tags               []string
	Notes              string
}

// Engine performs the cryptographic operations of the scheme against a
// keyring backend. It holds no per-operation state and performs no internal
// parallelism.
type Engine struct {
	keyring keyring.Keyring
	hasher  *hashing.FileHasher
	logger  logging.Logger
}

// NewEngine creates an engine over the given keyring.
func NewEngine(kr keyring.Keyring, logger logging.Logger) *Engine {
	return &Engine{
		keyring: kr,
		hasher:  hashing.NewFileHasher(),
		logger:  logging.EnsureLogger(logger),
	}
}

// Keyring exposes the backend, for callers that manage keys directly.
func (e *Engine) Keyring() keyring.Keyring {
	return e.keyring
}

// HashFile returns the SHA-256 hex digest of the full file content.
func (e *Engine) HashFile(path string) (string, error) {
	digest, err := e.hasher.HashFile(path)
	if err != nil {
		return "", avcf.NewCryptoError("hash", "cannot hash video content", err)
	}
	return digest.Hex(), nil
}

// BuildMetadata hashes the video at path and assembles a metadata record for
// the given signer fingerprint, stamped with the current UTC time and the
// fixed tool identity.
func (e *Engine) BuildMetadata(path, fingerprint string, opts MetadataOptions) (avcf.Metadata, error) {
	hash, err := e.HashFile(path)
	if err != nil {
		return avcf.Metadata{}, err
	}
	md := avcf.Metadata{
		VideoHash:          hash,
		AuthorName:         opts.AuthorName,
		AuthorEmail:        opts.AuthorEmail,
		AuthorOrganization: opts.AuthorOrganization,
		PubkeyFingerprint:  keyring.NormalizeFingerprint(fingerprint),
		PubkeyURL:          opts.PubkeyURL,
		EmbeddedPubkey:     opts.EmbeddedPubkey,
		Timestamp:          avcf.Now(),
		ToolName:           avcf.ToolName,
		ToolVersion:        avcf.ToolVersion(),
		Tags:               opts.Tags,
		Notes:              opts.Notes,
	}
	if err := md.Validate(); err != nil {
		return avcf.Metadata{}, err
	}
	return md, nil
}

// Sign canonicalizes the metadata and requests a detached signature from the
// keyring backend for keyID.
func (e *Engine) Sign(md avcf.Metadata, keyID, passphrase string) (avcf.SignedBlock, error) {
	payload, err := md.CanonicalBytes()
	if err != nil {
		return avcf.SignedBlock{}, err
	}
	e.logger.Debug("signing %d canonical bytes with key %s", len(payload), keyID)

	signature, err := e.keyring.SignDetached(payload, keyID, passphrase)
	if err != nil {
		return avcf.SignedBlock{}, avcf.NewCryptoError("sign", "keyring returned no signature", err)
	}
	return avcf.SignedBlock{Metadata: md, Signature: signature}, nil
}

// ImportKey imports armored key material into the keyring and returns the
// resulting fingerprints.
func (e *Engine) ImportKey(armoredKey string) ([]string, error) {
	fingerprints, err := e.keyring.Import(armoredKey)
	if err != nil {
		return nil, avcf.NewCryptoError("import", "cannot import key", err)
	}
	if len(fingerprints) == 0 {
		return nil, avcf.NewCryptoError("import", "no fingerprints resulted from import", nil)
	}
	return fingerprints, nil
}

// HasKey reports whether the keyring holds a key whose fingerprint exactly
// matches the argument.
func (e *Engine) HasKey(fingerprint string) (bool, error) {
	keys, err := e.keyring.ListKeys()
	if err != nil {
		return false, avcf.NewCryptoError("list keys", "cannot list keyring", err)
	}
	for _, k := range keys {
		if keyring.SameFingerprint(k.Fingerprint, fingerprint) {
			return true, nil
		}
	}
	return false, nil
}

// VerifySignature resolves the signer's public key and checks the detached
// signature over the canonical metadata bytes.
//
// Key resolution is local keyring first, then the embedded key if present.
// When neither yields a key the verdict is KEY_NOT_FOUND; a bad signature is
// INVALID; unexpected backend failures are ERROR.
func (e *Engine) VerifySignature(block avcf.SignedBlock) avcf.VerificationResult {
	md := block.Metadata

	found, err := e.HasKey(md.PubkeyFingerprint)
	if err != nil {
		return avcf.NewResult(avcf.StatusError, &md, err.Error())
	}
	if !found {
		if md.EmbeddedPubkey == "" {
			return avcf.NewResult(avcf.StatusKeyNotFound, &md,
				"public key not found in keyring and not embedded in metadata")
		}
		e.logger.Debug("key %s not in keyring, importing embedded public key", md.PubkeyFingerprint)
		if _, err := e.ImportKey(md.EmbeddedPubkey); err != nil {
			return avcf.NewResult(avcf.StatusKeyNotFound, &md,
				fmt.Sprintf("failed to import embedded public key: %v", err))
		}
	}

	payload, err := md.CanonicalBytes()
	if err != nil {
		return avcf.NewResult(avcf.StatusError, &md, err.Error())
	}

	signerFingerprint, err := e.keyring.VerifyDetached(payload, block.Signature)
	if err != nil {
		if isSignatureFailure(err) {
			return avcf.NewResult(avcf.StatusInvalid, &md, fmt.Sprintf("invalid signature: %v", err))
		}
		return avcf.NewResult(avcf.StatusError, &md, fmt.Sprintf("error verifying signature: %v", err))
	}
	if !keyring.SameFingerprint(signerFingerprint, md.PubkeyFingerprint) {
		return avcf.NewResult(avcf.StatusInvalid, &md,
			fmt.Sprintf("signature made by %s, metadata claims %s", signerFingerprint, md.PubkeyFingerprint))
	}
	return avcf.NewResult(avcf.StatusValid, &md, "")
}

// VerifyHash recomputes the content hash of the file at path and compares it
// to the hash recorded in the metadata.
func (e *Engine) VerifyHash(path string, md avcf.Metadata) (bool, error) {
	hash, err := e.HashFile(path)
	if err != nil {
		return false, err
	}
	return hash == md.VideoHash, nil
}

// isSignatureFailure distinguishes "the signature does not check out" from
// mechanical verification failures.
func isSignatureFailure(err error) bool {
	if errors.Is(err, pgperrors.ErrUnknownIssuer) {
		return true
	}
	var sigErr pgperrors.SignatureError
	return errors.As(err, &sigErr)
}
