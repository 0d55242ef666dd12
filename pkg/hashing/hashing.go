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

// Package hashing computes the content digest that binds an AVCF record to
// the exact bytes of a video container.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Algorithm is the canonical name of the digest algorithm used by AVCF.
const Algorithm = "sha256"

// DefaultChunkSize is the read granularity for streaming file hashing.
// The digest is independent of the chunk size; this only bounds memory.
const DefaultChunkSize = 64 * 1024

// Digest is a computed content digest.
type Digest struct {
	// Algorithm names the hash algorithm that produced the value.
	Algorithm string
	// Value is the raw digest bytes.
	Value []byte
}

// Hex returns the hexadecimal, human-readable digest.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.Value)
}

// FileHasher streams files through SHA-256 in fixed-size chunks, so files
// larger than memory hash in one pass.
type FileHasher struct {
	chunkSize int
}

// NewFileHasher returns a hasher using DefaultChunkSize.
func NewFileHasher() *FileHasher {
	return &FileHasher{chunkSize: DefaultChunkSize}
}

// NewFileHasherWithChunkSize returns a hasher reading chunkSize bytes at a
// time. A non-positive chunkSize is an error.
func NewFileHasherWithChunkSize(chunkSize int) (*FileHasher, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	return &FileHasher{chunkSize: chunkSize}, nil
}

// HashFile computes the SHA-256 digest of the full file content.
func (h *FileHasher) HashFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	hasher := sha256.New()
	buf := make([]byte, h.chunkSize)
	if _, err := io.CopyBuffer(hasher, f, buf); err != nil {
		return Digest{}, fmt.Errorf("reading %q: %w", path, err)
	}
	return Digest{Algorithm: Algorithm, Value: hasher.Sum(nil)}, nil
}
