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
	"bytes"
	"crypto"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// Verify PGPKeyring implements Keyring at compile time.
var _ Keyring = (*PGPKeyring)(nil)

const keyFileExt = ".asc"

// PGPKeyring is a file-backed OpenPGP keyring. Each key lives in the home
// directory as one armored file named by its fingerprint. When no home is
// supplied at Open, a process-private temporary directory is created and
// removed again by Close, on every exit path the caller arranges.
type PGPKeyring struct {
	mu        sync.Mutex
	home      string
	ephemeral bool
	entities  openpgp.EntityList
	closed    bool
}

// Open loads the keyring stored at home, creating the directory if needed.
// An empty home requests an ephemeral keyring.
func Open(home string) (*PGPKeyring, error) {
	ephemeral := false
	if home == "" {
		dir, err := os.MkdirTemp("", "avcf-keyring-")
		if err != nil {
			return nil, fmt.Errorf("creating ephemeral keyring home: %w", err)
		}
		home = dir
		ephemeral = true
	} else if err := os.MkdirAll(home, 0o700); err != nil {
		return nil, fmt.Errorf("creating keyring home %q: %w", home, err)
	}

	k := &PGPKeyring{home: home, ephemeral: ephemeral}
	if err := k.load(); err != nil {
		// Do not leak the directory we just created.
		if ephemeral {
			_ = os.RemoveAll(home)
		}
		return nil, err
	}
	return k, nil
}

// Home returns the keyring storage directory.
func (k *PGPKeyring) Home() string {
	return k.home
}

// Close releases the keyring. An ephemeral keyring removes its home
// directory; Close is idempotent.
func (k *PGPKeyring) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return nil
	}
	k.closed = true
	k.entities = nil
	if k.ephemeral {
		return os.RemoveAll(k.home)
	}
	return nil
}

func (k *PGPKeyring) load() error {
	entries, err := os.ReadDir(k.home)
	if err != nil {
		return fmt.Errorf("reading keyring home %q: %w", k.home, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), keyFileExt) {
			continue
		}
		path := filepath.Join(k.home, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading key file %q: %w", path, err)
		}
		list, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parsing key file %q: %w", path, err)
		}
		k.entities = append(k.entities, list...)
	}
	return nil
}

// ListKeys returns key ID and fingerprint pairs for every key in the ring.
func (k *PGPKeyring) ListKeys() ([]KeyInfo, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	infos := make([]KeyInfo, 0, len(k.entities))
	for _, e := range k.entities {
		infos = append(infos, entityInfo(e))
	}
	return infos, nil
}

// ExportPublicKey returns the armored public key whose fingerprint exactly
// matches the argument.
func (k *PGPKeyring) ExportPublicKey(fingerprint string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e := k.findByFingerprint(fingerprint)
	if e == nil {
		return "", fmt.Errorf("no key with fingerprint %s", fingerprint)
	}

	var buf bytes.Buffer
	aw, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return "", fmt.Errorf("armoring public key: %w", err)
	}
	if err := e.Serialize(aw); err != nil {
		return "", fmt.Errorf("serializing public key: %w", err)
	}
	if err := aw.Close(); err != nil {
		return "", fmt.Errorf("armoring public key: %w", err)
	}
	return buf.String(), nil
}

// SignDetached produces an armored detached signature over data with the
// private key resolved from keyID.
func (k *PGPKeyring) SignDetached(data []byte, keyID, passphrase string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	signer := k.findSigner(keyID)
	if signer == nil {
		return "", fmt.Errorf("no private key matching %q", keyID)
	}
	if err := unlockEntity(signer, passphrase); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	config := &packet.Config{DefaultHash: crypto.SHA256}
	if err := openpgp.ArmoredDetachSign(&buf, signer, bytes.NewReader(data), config); err != nil {
		return "", fmt.Errorf("creating detached signature: %w", err)
	}
	return buf.String(), nil
}

// VerifyDetached checks an armored detached signature over data and returns
// the fingerprint of the key that made it.
func (k *PGPKeyring) VerifyDetached(data []byte, armoredSignature string) (string, error) {
	k.mu.Lock()
	entities := k.entities
	k.mu.Unlock()

	signer, err := openpgp.CheckArmoredDetachedSignature(
		entities, bytes.NewReader(data), strings.NewReader(armoredSignature), nil)
	if err != nil {
		return "", err
	}
	return fingerprintOf(signer), nil
}

// Import adds armored key material to the ring, persists it under the home
// directory, and returns the fingerprints of the imported keys.
func (k *PGPKeyring) Import(armoredKey string) ([]string, error) {
	list, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armoredKey))
	if err != nil {
		return nil, fmt.Errorf("parsing armored key: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no keys found in armored input")
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	fingerprints := make([]string, 0, len(list))
	for _, e := range list {
		fp := fingerprintOf(e)
		if err := k.store(e, fp); err != nil {
			return nil, err
		}
		if existing := k.findByFingerprint(fp); existing == nil {
			k.entities = append(k.entities, e)
		}
		fingerprints = append(fingerprints, fp)
	}
	return fingerprints, nil
}

// Generate creates a new key pair for the given identity, stores it in the
// ring, and returns its identifiers. Used for provisioning and in tests.
func (k *PGPKeyring) Generate(name, email string) (KeyInfo, error) {
	e, err := openpgp.NewEntity(name, "", email, nil)
	if err != nil {
		return KeyInfo{}, fmt.Errorf("generating key pair: %w", err)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	fp := fingerprintOf(e)
	if err := k.store(e, fp); err != nil {
		return KeyInfo{}, err
	}
	k.entities = append(k.entities, e)
	return entityInfo(e), nil
}

// store writes the entity to <home>/<fingerprint>.asc, private material
// included when present so signing keys survive reopen.
func (k *PGPKeyring) store(e *openpgp.Entity, fingerprint string) error {
	var buf bytes.Buffer
	blockType := openpgp.PublicKeyType
	if e.PrivateKey != nil {
		blockType = openpgp.PrivateKeyType
	}
	aw, err := armor.Encode(&buf, blockType, nil)
	if err != nil {
		return fmt.Errorf("armoring key %s: %w", fingerprint, err)
	}
	if e.PrivateKey != nil {
		err = e.SerializePrivateWithoutSigning(aw, nil)
	} else {
		err = e.Serialize(aw)
	}
	if err != nil {
		return fmt.Errorf("serializing key %s: %w", fingerprint, err)
	}
	if err := aw.Close(); err != nil {
		return fmt.Errorf("armoring key %s: %w", fingerprint, err)
	}

	path := filepath.Join(k.home, fingerprint+keyFileExt)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing key file %q: %w", path, err)
	}
	return nil
}

func (k *PGPKeyring) findByFingerprint(fingerprint string) *openpgp.Entity {
	for _, e := range k.entities {
		if SameFingerprint(fingerprintOf(e), fingerprint) {
			return e
		}
	}
	return nil
}

func (k *PGPKeyring) findSigner(keyID string) *openpgp.Entity {
	for _, e := range k.entities {
		if e.PrivateKey != nil && MatchesIdentifier(entityInfo(e), keyID) {
			return e
		}
	}
	return nil
}

func unlockEntity(e *openpgp.Entity, passphrase string) error {
	unlock := func(pk *packet.PrivateKey) error {
		if pk == nil || !pk.Encrypted {
			return nil
		}
		if passphrase == "" {
			return fmt.Errorf("private key %s is locked and no passphrase was given", e.PrimaryKey.KeyIdString())
		}
		if err := pk.Decrypt([]byte(passphrase)); err != nil {
			return fmt.Errorf("unlocking private key: %w", err)
		}
		return nil
	}
	if err := unlock(e.PrivateKey); err != nil {
		return err
	}
	for _, sub := range e.Subkeys {
		if err := unlock(sub.PrivateKey); err != nil {
			return err
		}
	}
	return nil
}

func entityInfo(e *openpgp.Entity) KeyInfo {
	return KeyInfo{
		KeyID:       e.PrimaryKey.KeyIdString(),
		Fingerprint: fingerprintOf(e),
	}
}

func fingerprintOf(e *openpgp.Entity) string {
	return strings.ToUpper(hex.EncodeToString(e.PrimaryKey.Fingerprint))
}
