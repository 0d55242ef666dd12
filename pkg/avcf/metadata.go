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

// Package avcf defines the core data model of the Authenticated Video
// Container Format: the metadata record embedded in a video container, the
// signed block wrapping it, and the verification verdict returned to callers.
package avcf

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Status is the outcome of a signature verification.
type Status string

const (
	// StatusValid means the signature verified and the content hash matches.
	StatusValid Status = "valid"
	// StatusInvalid means the signature did not verify, or the content hash
	// no longer matches the hash recorded in the metadata.
	StatusInvalid Status = "invalid"
	// StatusMissing means the container carries no AVCF block.
	StatusMissing Status = "missing"
	// StatusKeyNotFound means no usable public key could be resolved for the
	// signer fingerprint.
	StatusKeyNotFound Status = "key_not_found"
	// StatusError means verification failed for a mechanical reason
	// unrelated to the signature itself.
	StatusError Status = "error"
)

// TimeLayout is the fixed wire representation of timestamps: UTC RFC 3339
// with seconds precision. Sub-second precision is intentionally dropped so
// that a parsed metadata record re-encodes to byte-identical canonical form.
const TimeLayout = "2006-01-02T15:04:05Z"

// Time wraps time.Time with the fixed AVCF wire encoding.
type Time struct {
	time.Time
}

// Now returns the current UTC time truncated to the wire precision.
func Now() Time {
	return Time{time.Now().UTC().Truncate(time.Second)}
}

// MarshalJSON encodes the time using TimeLayout.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(TimeLayout) + `"`), nil
}

// UnmarshalJSON decodes a TimeLayout timestamp. Plain RFC 3339 values with
// offsets are accepted on input and normalized to UTC.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
	}
	t.Time = parsed.UTC().Truncate(time.Second)
	return nil
}

// Metadata is the provenance record embedded in a signed video container.
//
// The field order below is load-bearing: it defines canonical encoding v1
// (see CanonicalBytes). Do not reorder fields or change their JSON names
// without bumping CanonicalVersion.
type Metadata struct {
	// VideoHash is the SHA-256 hex digest of the raw container bytes at
	// signing time. The whole file is hashed, not isolated AV streams, so
	// any byte-level change to the container invalidates it.
	VideoHash string `json:"video_hash"`

	AuthorName         string `json:"author_name"`
	AuthorEmail        string `json:"author_email,omitempty"`
	AuthorOrganization string `json:"author_organization,omitempty"`

	// PubkeyFingerprint is the signer key fingerprint in canonical OpenPGP
	// form (uppercase hex, no separators).
	PubkeyFingerprint string `json:"pubkey_fingerprint"`
	// PubkeyURL optionally points at an armored copy of the signer's
	// public key for verifiers that do not hold it locally.
	PubkeyURL string `json:"pubkey_url,omitempty"`
	// EmbeddedPubkey optionally carries the armored public key inline.
	EmbeddedPubkey string `json:"embedded_pubkey,omitempty"`

	Timestamp   Time   `json:"timestamp"`
	ToolName    string `json:"tool_name"`
	ToolVersion string `json:"tool_version"`

	Tags  []string `json:"tags,omitempty"`
	Notes string   `json:"notes,omitempty"`
}

// Validate checks the structural invariants of the record.
func (m *Metadata) Validate() error {
	if m.VideoHash == "" {
		return NewValidationError("metadata", "video_hash is required", nil)
	}
	if len(m.VideoHash) != 64 || !isHex(m.VideoHash) {
		return NewValidationError("metadata",
			fmt.Sprintf("video_hash %q is not a SHA-256 hex digest", m.VideoHash), nil)
	}
	if m.AuthorName == "" {
		return NewValidationError("metadata", "author_name is required", nil)
	}
	if m.PubkeyFingerprint == "" {
		return NewValidationError("metadata", "pubkey_fingerprint is required", nil)
	}
	if m.PubkeyURL != "" {
		u, err := url.Parse(m.PubkeyURL)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
			return NewValidationError("metadata",
				fmt.Sprintf("pubkey_url %q is not a valid HTTP(S) URL", m.PubkeyURL), err)
		}
	}
	return nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// SignedBlock is the unit embedded in the container tag: the metadata plus a
// detached armored signature over its canonical bytes.
type SignedBlock struct {
	Metadata  Metadata `json:"metadata"`
	Signature string   `json:"signature"`
}

// Validate checks the block and its inner metadata.
func (b *SignedBlock) Validate() error {
	if err := b.Metadata.Validate(); err != nil {
		return err
	}
	if b.Signature == "" {
		return NewValidationError("signed block", "signature is required", nil)
	}
	return nil
}

// VerificationResult is the immutable verdict of a verification run.
// Metadata is populated whenever a block was found, even on failure.
type VerificationResult struct {
	Status           Status    `json:"status"`
	Metadata         *Metadata `json:"metadata,omitempty"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	VerificationTime Time      `json:"verification_time"`
}

// NewResult constructs a verdict stamped with the current time.
func NewResult(status Status, md *Metadata, errorMessage string) VerificationResult {
	return VerificationResult{
		Status:           status,
		Metadata:         md,
		ErrorMessage:     errorMessage,
		VerificationTime: Now(),
	}
}

// OK reports whether the verdict is VALID.
func (r VerificationResult) OK() bool {
	return r.Status == StatusValid
}
