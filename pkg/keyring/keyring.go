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

// Package keyring defines the OpenPGP keyring backend contract used by the
// AVCF engine, and provides a file-backed implementation.
package keyring

import "strings"

// KeyInfo identifies one key held by a keyring.
type KeyInfo struct {
	// KeyID is the short OpenPGP key ID (upper-case hex).
	KeyID string
	// Fingerprint is the full canonical fingerprint (upper-case hex,
	// no separators).
	Fingerprint string
}

// Keyring is the backend contract the engine depends on: key enumeration,
// armored export/import, detached signing and signature verification.
//
// Implementations are not required to be safe for concurrent use across
// processes sharing one storage location; callers serialize such access.
type Keyring interface {
	// ListKeys returns the keys currently held.
	ListKeys() ([]KeyInfo, error)

	// ExportPublicKey returns the armored public key for an exact
	// fingerprint match.
	ExportPublicKey(fingerprint string) (string, error)

	// SignDetached produces an armored detached signature over data with
	// the private key resolved from keyID. The passphrase unlocks the key
	// if it is encrypted; pass "" for unprotected keys.
	SignDetached(data []byte, keyID, passphrase string) (string, error)

	// VerifyDetached checks an armored detached signature against data
	// using any key in the ring, returning the signer's fingerprint.
	VerifyDetached(data []byte, armoredSignature string) (string, error)

	// Import adds armored key material (public or private) to the ring and
	// returns the fingerprints of the imported keys.
	Import(armoredKey string) ([]string, error)

	// Close releases the keyring. Ephemeral keyrings delete their storage.
	Close() error
}

// NormalizeFingerprint strips whitespace separators and upper-cases a
// fingerprint so that differently formatted copies compare equal.
func NormalizeFingerprint(fp string) string {
	return strings.ToUpper(strings.ReplaceAll(fp, " ", ""))
}

// SameFingerprint reports whether two fingerprints are the same key, by
// exact equality of the normalized forms. Substring containment is
// deliberately not accepted: a short or partial string must never match an
// unrelated key.
func SameFingerprint(a, b string) bool {
	na, nb := NormalizeFingerprint(a), NormalizeFingerprint(b)
	return na != "" && na == nb
}

// MatchesIdentifier reports whether a caller-supplied key identifier
// resolves to the given key. Accepted forms are the exact key ID, the exact
// fingerprint, or an exact fingerprint suffix of at least eight hex digits
// (the OpenPGP short-ID convention).
func MatchesIdentifier(info KeyInfo, id string) bool {
	n := NormalizeFingerprint(id)
	if n == "" {
		return false
	}
	if n == info.KeyID || n == info.Fingerprint {
		return true
	}
	return len(n) >= 8 && strings.HasSuffix(info.Fingerprint, n)
}
