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

package avcf

import "encoding/json"

// CanonicalVersion identifies the canonical metadata encoding. The detached
// signature is computed over these exact bytes, so every implementation of
// the scheme must produce them byte for byte.
//
// Version 1 is UTF-8 JSON with:
//   - fields in the fixed order: video_hash, author_name, author_email,
//     author_organization, pubkey_fingerprint, pubkey_url, embedded_pubkey,
//     timestamp, tool_name, tool_version, tags, notes
//   - absent optional fields omitted entirely
//   - no insignificant whitespace
//   - timestamp in UTC RFC 3339 with seconds precision ("...Z")
const CanonicalVersion = 1

// CanonicalBytes returns the canonical v1 serialization of the metadata.
// A record parsed from the wire re-encodes to the same bytes, which is the
// property signature verification depends on.
func (m *Metadata) CanonicalBytes() ([]byte, error) {
	// encoding/json emits struct fields in declaration order with no
	// insignificant whitespace, and Time marshals at fixed precision, so
	// marshaling the struct is the canonical encoding.
	data, err := json.Marshal(m)
	if err != nil {
		return nil, NewCryptoError("canonicalize", "cannot serialize metadata", err)
	}
	return data, nil
}
