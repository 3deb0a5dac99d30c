// Package crypt symmetrically encrypts the refined database artifact before
// distribution. Key management is the caller's concern; this package only
// seals and opens files.
package crypt

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/nacl/secretbox"
)

// EncryptedSuffix is appended to the input path to form the output path.
const EncryptedSuffix = ".enc"

// EncryptFile seals the file at path with a key derived from keyString and
// writes the result next to it, returning the new path. The random nonce is
// prepended to the sealed bytes.
func EncryptFile(keyString, path string) (string, error) {
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("crypt.EncryptFile: reading %q: %w", path, err)
	}

	key := deriveKey(keyString)

	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("crypt.EncryptFile: generating nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], plaintext, &nonce, &key)

	outPath := path + EncryptedSuffix
	if err := os.WriteFile(outPath, sealed, 0o600); err != nil {
		return "", fmt.Errorf("crypt.EncryptFile: writing %q: %w", outPath, err)
	}

	return outPath, nil
}

// DecryptFile opens a file produced by EncryptFile and returns the plaintext.
func DecryptFile(keyString, path string) ([]byte, error) {
	sealed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("crypt.DecryptFile: reading %q: %w", path, err)
	}
	if len(sealed) < 24 {
		return nil, fmt.Errorf("crypt.DecryptFile: %q too short to contain a nonce", path)
	}

	key := deriveKey(keyString)

	var nonce [24]byte
	copy(nonce[:], sealed[:24])

	plaintext, ok := secretbox.Open(nil, sealed[24:], &nonce, &key)
	if !ok {
		return nil, fmt.Errorf("crypt.DecryptFile: authentication failed for %q", path)
	}
	return plaintext, nil
}

// Service implements the pipeline's Encryptor interface.
type Service struct{}

// NewService creates a new encryption service.
func NewService() *Service {
	return &Service{}
}

// EncryptFile delegates to the package-level EncryptFile function.
func (s *Service) EncryptFile(keyString, path string) (string, error) {
	return EncryptFile(keyString, path)
}

func deriveKey(keyString string) [32]byte {
	return sha256.Sum256([]byte(keyString))
}
