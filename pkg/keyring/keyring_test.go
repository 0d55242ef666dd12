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

package keyring

import "testing"

func TestNormalizeFingerprint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"d4c9d8f2e1a1d8bb2f09768a5fbe8f7b07b4328d", "D4C9D8F2E1A1D8BB2F09768A5FBE8F7B07B4328D"},
		{"D4C9 D8F2 E1A1 D8BB 2F09 768A 5FBE 8F7B 07B4 328D", "D4C9D8F2E1A1D8BB2F09768A5FBE8F7B07B4328D"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeFingerprint(tt.in); got != tt.want {
			t.Errorf("NormalizeFingerprint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameFingerprint(t *testing.T) {
	full := "D4C9D8F2E1A1D8BB2F09768A5FBE8F7B07B4328D"
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", full, full, true},
		{"case and spacing differences", "d4c9 d8f2 e1a1 d8bb 2f09 768a 5fbe 8f7b 07b4 328d", full, true},
		{"different keys", full, "AAAAD8F2E1A1D8BB2F09768A5FBE8F7B07B4328D", false},
		// Substring containment must not match; a short string could
		// falsely match an unrelated key.
		{"substring is not a match", "5FBE8F7B", full, false},
		{"empty never matches", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameFingerprint(tt.a, tt.b); got != tt.want {
				t.Errorf("SameFingerprint(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMatchesIdentifier(t *testing.T) {
	info := KeyInfo{
		KeyID:       "5FBE8F7B07B4328D",
		Fingerprint: "D4C9D8F2E1A1D8BB2F09768A5FBE8F7B07B4328D",
	}
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"exact key ID", "5FBE8F7B07B4328D", true},
		{"exact fingerprint", "D4C9D8F2E1A1D8BB2F09768A5FBE8F7B07B4328D", true},
		{"spaced fingerprint", "D4C9 D8F2 E1A1 D8BB 2F09 768A 5FBE 8F7B 07B4 328D", true},
		{"short suffix", "07B4328D", true},
		{"lower-case suffix", "07b4328d", true},
		{"suffix shorter than eight digits", "4328D", false},
		{"non-suffix substring", "E1A1D8BB", false},
		{"other key", "0000000000000000", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesIdentifier(info, tt.id); got != tt.want {
				t.Errorf("MatchesIdentifier(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
