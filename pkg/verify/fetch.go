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

package verify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchTimeout bounds the single remote key retrieval of a verification.
const FetchTimeout = 10 * time.Second

// maxKeySize caps the accepted response body. Armored public keys are a few
// kilobytes; anything near this limit is not a key.
const maxKeySize = 1 << 20

// KeyFetcher retrieves an armored public key from a URL.
type KeyFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPKeyFetcher fetches keys over plain HTTPS GET with a bounded timeout.
type HTTPKeyFetcher struct {
	client *http.Client
}

// NewHTTPKeyFetcher creates a fetcher with the fixed FetchTimeout.
func NewHTTPKeyFetcher() *HTTPKeyFetcher {
	return &HTTPKeyFetcher{client: &http.Client{Timeout: FetchTimeout}}
}

// Fetch performs the GET. Any non-success status is a failure.
func (f *HTTPKeyFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building key request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching key from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching key from %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySize))
	if err != nil {
		return "", fmt.Errorf("reading key response from %s: %w", url, err)
	}
	return string(body), nil
}
