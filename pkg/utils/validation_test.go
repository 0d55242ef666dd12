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

package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateFileExists(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(filePath, []byte("content"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "existing file", path: filePath},
		{name: "empty path", path: "", wantErr: "is required"},
		{name: "missing file", path: filepath.Join(dir, "absent.mp4"), wantErr: "does not exist"},
		{name: "directory", path: dir, wantErr: "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileExists("input video", tt.path)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateFileExists() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateFileExists() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNonEmpty(t *testing.T) {
	if err := ValidateNonEmpty("author name", "Jane Doe"); err != nil {
		t.Errorf("ValidateNonEmpty() = %v, want nil", err)
	}
	for _, value := range []string{"", "   ", "\t"} {
		if err := ValidateNonEmpty("author name", value); err == nil {
			t.Errorf("ValidateNonEmpty(%q) = nil, want error", value)
		}
	}
}

func TestMaskToken(t *testing.T) {
	if got := MaskToken(""); got != "(none)" {
		t.Errorf("MaskToken(\"\") = %q, want (none)", got)
	}
	got := MaskToken("hunter2")
	if strings.Contains(got, "hunter2") {
		t.Errorf("MaskToken leaked the secret: %q", got)
	}
}

func TestReadPassphraseFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "plain", content: "s3cret", want: "s3cret"},
		{name: "trailing newline", content: "s3cret\n", want: "s3cret"},
		{name: "windows line ending", content: "s3cret\r\n", want: "s3cret"},
		{name: "only first line", content: "s3cret\nsecond line\n", want: "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pass.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
			got, err := ReadPassphraseFile(path)
			if err != nil {
				t.Fatalf("ReadPassphraseFile() = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadPassphraseFile() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := ReadPassphraseFile(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("ReadPassphraseFile() = nil for missing file, want error")
	}
}
