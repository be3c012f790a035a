package pcidata

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// Verifier checks detached OpenPGP signatures over dataset files.
type Verifier struct {
	keyringPath string
}

// VerificationResult describes a successful signature check.
type VerificationResult struct {
	Fingerprint string // primary key fingerprint, hex
	KeyID       string
}

// NewVerifier creates a verifier that trusts the keys in keyringPath.
// The keyring may be armored or binary.
func NewVerifier(keyringPath string) *Verifier {
	return &Verifier{keyringPath: keyringPath}
}

// Verify checks sig against data. Armored signatures are tried first,
// then binary ones.
func (v *Verifier) Verify(data, sig []byte) (*VerificationResult, error) {
	keyring, err := v.loadKeyring()
	if err != nil {
		return nil, err
	}

	signer, err := openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(data), bytes.NewReader(sig), nil)
	if err != nil {
		signer, err = openpgp.CheckDetachedSignature(keyring, bytes.NewReader(data), bytes.NewReader(sig), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("verify signature: %w", err)
	}

	result := &VerificationResult{}
	if signer != nil && signer.PrimaryKey != nil {
		result.Fingerprint = hex.EncodeToString(signer.PrimaryKey.Fingerprint)
		result.KeyID = signer.PrimaryKey.KeyIdString()
	}
	return result, nil
}

// LoadVerified reads a dataset and its detached signature, verifies the
// signature and parses the same bytes that were verified.
func (v *Verifier) LoadVerified(path, signaturePath string) (*Dataset, *VerificationResult, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset: %w", err)
	}
	sig, err := os.ReadFile(filepath.Clean(signaturePath))
	if err != nil {
		return nil, nil, fmt.Errorf("read signature: %w", err)
	}

	result, err := v.Verify(data, sig)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	ds, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, result, nil
}

// loadKeyring reads the keyring file, armored first.
func (v *Verifier) loadKeyring() (openpgp.EntityList, error) {
	raw, err := os.ReadFile(filepath.Clean(v.keyringPath))
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}

	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(raw))
	if err != nil {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}
	return keyring, nil
}
