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

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func validMetadata() Metadata {
	return Metadata{
		VideoHash:         strings.Repeat("ab", 32),
		AuthorName:        "Jane Doe",
		PubkeyFingerprint: "D4C9D8F2E1A1D8BB2F09768A5FBE8F7B07B4328D",
		Timestamp:         Time{time.Date(2025, 6, 16, 3, 12, 59, 0, time.UTC)},
		ToolName:          ToolName,
		ToolVersion:       "0.1.0",
	}
}

func TestMetadataValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Metadata)
		wantErr string
	}{
		{
			name:   "valid record",
			mutate: func(*Metadata) {},
		},
		{
			name:    "missing hash",
			mutate:  func(m *Metadata) { m.VideoHash = "" },
			wantErr: "video_hash is required",
		},
		{
			name:    "short hash",
			mutate:  func(m *Metadata) { m.VideoHash = "abcd" },
			wantErr: "not a SHA-256 hex digest",
		},
		{
			name:    "non-hex hash",
			mutate:  func(m *Metadata) { m.VideoHash = strings.Repeat("zz", 32) },
			wantErr: "not a SHA-256 hex digest",
		},
		{
			name:    "missing author",
			mutate:  func(m *Metadata) { m.AuthorName = "" },
			wantErr: "author_name is required",
		},
		{
			name:    "missing fingerprint",
			mutate:  func(m *Metadata) { m.PubkeyFingerprint = "" },
			wantErr: "pubkey_fingerprint is required",
		},
		{
			name:    "bad key URL scheme",
			mutate:  func(m *Metadata) { m.PubkeyURL = "ftp://example.com/key.asc" },
			wantErr: "not a valid HTTP(S) URL",
		},
		{
			name:   "https key URL",
			mutate: func(m *Metadata) { m.PubkeyURL = "https://example.com/keys/jane.asc" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := validMetadata()
			tt.mutate(&md)
			err := md.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
			if !IsKind(err, KindValidation) {
				t.Errorf("Validate() error kind = %v, want ValidationError", err)
			}
		})
	}
}

func TestSignedBlockValidate(t *testing.T) {
	block := SignedBlock{Metadata: validMetadata()}
	if err := block.Validate(); err == nil {
		t.Error("Validate() accepted a block without a signature")
	}
	block.Signature = "-----BEGIN PGP SIGNATURE-----\n...\n-----END PGP SIGNATURE-----"
	if err := block.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestTimeWireFormat(t *testing.T) {
	ts := Time{time.Date(2025, 6, 16, 3, 12, 59, 450_000_000, time.UTC)}
	out, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}
	// Sub-second precision must be dropped on the wire.
	if string(out) != `"2025-06-16T03:12:59Z"` {
		t.Errorf("Marshal() = %s, want %q", out, "2025-06-16T03:12:59Z")
	}

	var parsed Time
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("Unmarshal() = %v", err)
	}
	if !parsed.Equal(ts.Truncate(time.Second)) {
		t.Errorf("round trip = %v, want %v", parsed, ts.Truncate(time.Second))
	}
}

func TestTimeUnmarshalWithOffset(t *testing.T) {
	var parsed Time
	if err := json.Unmarshal([]byte(`"2025-06-16T05:12:59+02:00"`), &parsed); err != nil {
		t.Fatalf("Unmarshal() = %v", err)
	}
	want := time.Date(2025, 6, 16, 3, 12, 59, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("Unmarshal() = %v, want %v", parsed.Time, want)
	}
}

func TestNewResult(t *testing.T) {
	md := validMetadata()
	result := NewResult(StatusInvalid, &md, "hash mismatch")
	if result.Status != StatusInvalid {
		t.Errorf("Status = %v, want %v", result.Status, StatusInvalid)
	}
	if result.Metadata == nil || result.Metadata.AuthorName != "Jane Doe" {
		t.Error("Metadata not carried into result")
	}
	if result.VerificationTime.IsZero() {
		t.Error("VerificationTime not stamped")
	}
	if result.OK() {
		t.Error("OK() = true for INVALID result")
	}
	if !NewResult(StatusValid, &md, "").OK() {
		t.Error("OK() = false for VALID result")
	}
}
