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

import (
	"os"
	"strings"
	"testing"
)

func openEphemeral(t *testing.T) *PGPKeyring {
	t.Helper()
	k, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") = %v", err)
	}
	t.Cleanup(func() { _ = k.Close() })
	return k
}

func TestEphemeralHomeLifecycle(t *testing.T) {
	k, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") = %v", err)
	}
	home := k.Home()
	if _, err := os.Stat(home); err != nil {
		t.Fatalf("ephemeral home not created: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if _, err := os.Stat(home); !os.IsNotExist(err) {
		t.Errorf("ephemeral home still exists after Close")
	}
	// Close is idempotent.
	if err := k.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestGenerateAndList(t *testing.T) {
	k := openEphemeral(t)
	info, err := k.Generate("Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	if len(info.Fingerprint) < 32 || len(info.KeyID) != 16 {
		t.Errorf("unexpected identifiers: %+v", info)
	}

	keys, err := k.ListKeys()
	if err != nil {
		t.Fatalf("ListKeys() = %v", err)
	}
	if len(keys) != 1 || keys[0].Fingerprint != info.Fingerprint {
		t.Errorf("ListKeys() = %+v, want the generated key", keys)
	}
}

func TestSignAndVerifyDetached(t *testing.T) {
	k := openEphemeral(t)
	info, err := k.Generate("Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	payload := []byte(`{"video_hash":"abc"}`)
	sig, err := k.SignDetached(payload, info.KeyID, "")
	if err != nil {
		t.Fatalf("SignDetached() = %v", err)
	}
	if !strings.Contains(sig, "BEGIN PGP SIGNATURE") {
		t.Errorf("signature is not armored: %q", sig)
	}

	signer, err := k.VerifyDetached(payload, sig)
	if err != nil {
		t.Fatalf("VerifyDetached() = %v", err)
	}
	if !SameFingerprint(signer, info.Fingerprint) {
		t.Errorf("VerifyDetached() signer = %s, want %s", signer, info.Fingerprint)
	}

	// A single changed byte must fail verification.
	tampered := []byte(`{"video_hash":"abd"}`)
	if _, err := k.VerifyDetached(tampered, sig); err == nil {
		t.Error("VerifyDetached() accepted a signature over different bytes")
	}
}

func TestSignDetachedUnknownKey(t *testing.T) {
	k := openEphemeral(t)
	if _, err := k.SignDetached([]byte("data"), "DEADBEEFDEADBEEF", ""); err == nil {
		t.Error("SignDetached() = nil error for unknown key")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	signerRing := openEphemeral(t)
	info, err := signerRing.Generate("Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	armored, err := signerRing.ExportPublicKey(info.Fingerprint)
	if err != nil {
		t.Fatalf("ExportPublicKey() = %v", err)
	}
	if !strings.Contains(armored, "BEGIN PGP PUBLIC KEY") {
		t.Errorf("export is not an armored public key: %q", armored[:40])
	}

	payload := []byte("signed payload")
	sig, err := signerRing.SignDetached(payload, info.KeyID, "")
	if err != nil {
		t.Fatalf("SignDetached() = %v", err)
	}

	// A second, empty keyring can verify after importing the public key.
	verifierRing := openEphemeral(t)
	fingerprints, err := verifierRing.Import(armored)
	if err != nil {
		t.Fatalf("Import() = %v", err)
	}
	if len(fingerprints) != 1 || !SameFingerprint(fingerprints[0], info.Fingerprint) {
		t.Errorf("Import() = %v, want [%s]", fingerprints, info.Fingerprint)
	}
	if _, err := verifierRing.VerifyDetached(payload, sig); err != nil {
		t.Errorf("VerifyDetached() after import = %v", err)
	}
}

func TestImportGarbage(t *testing.T) {
	k := openEphemeral(t)
	if _, err := k.Import("this is not a key"); err == nil {
		t.Error("Import() = nil error for garbage input")
	}
}

func TestExportUnknownFingerprint(t *testing.T) {
	k := openEphemeral(t)
	if _, err := k.ExportPublicKey("D4C9D8F2E1A1D8BB2F09768A5FBE8F7B07B4328D"); err == nil {
		t.Error("ExportPublicKey() = nil error for unknown fingerprint")
	}
}

func TestPersistentHomeSurvivesReopen(t *testing.T) {
	home := t.TempDir()

	k1, err := Open(home)
	if err != nil {
		t.Fatalf("Open(%q) = %v", home, err)
	}
	info, err := k1.Generate("Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	payload := []byte("persistent payload")
	sig, err := k1.SignDetached(payload, info.KeyID, "")
	if err != nil {
		t.Fatalf("SignDetached() = %v", err)
	}
	if err := k1.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	k2, err := Open(home)
	if err != nil {
		t.Fatalf("reopen = %v", err)
	}
	defer k2.Close()

	keys, err := k2.ListKeys()
	if err != nil {
		t.Fatalf("ListKeys() = %v", err)
	}
	if len(keys) != 1 || keys[0].Fingerprint != info.Fingerprint {
		t.Fatalf("reopened keyring lost the key: %+v", keys)
	}
	if _, err := k2.VerifyDetached(payload, sig); err != nil {
		t.Errorf("VerifyDetached() after reopen = %v", err)
	}
	// The signing key must survive too.
	if _, err := k2.SignDetached(payload, info.KeyID, ""); err != nil {
		t.Errorf("SignDetached() after reopen = %v", err)
	}
}
