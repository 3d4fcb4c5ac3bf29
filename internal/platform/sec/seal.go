// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// # Sensitive Field Sealing

// ErrUnseal is returned when a sealed value cannot be authenticated or decrypted,
// typically after a key rotation or data corruption.
var ErrUnseal = errors.New("sec: sealed value cannot be opened")

// Sealer encrypts small sensitive values (tax ids, bank accounts) at rest
// with XChaCha20-Poly1305. The random nonce is prepended to the ciphertext.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a [Sealer] from a base64-encoded 32-byte key.
func NewSealer(encodedKey string) (*Sealer, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("sec: sealing key is not valid base64: %w", err)
	}

	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("sec: sealing key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to initialise cipher: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext. The associated data binds the ciphertext to its
// owner (e.g. "entity:<id>:tax_id") so it cannot be swapped between rows.
func (s *Sealer) Seal(plaintext, associatedData string) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("sec: failed to generate nonce: %w", err)
	}

	return s.aead.Seal(nonce, nonce, []byte(plaintext), []byte(associatedData)), nil
}

// Open decrypts a value produced by [Sealer.Seal]. Any failure is reported as [ErrUnseal].
func (s *Sealer) Open(sealed []byte, associatedData string) (string, error) {
	if len(sealed) < s.aead.NonceSize() {
		return "", ErrUnseal
	}

	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, []byte(associatedData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnseal, err)
	}

	return string(plaintext), nil
}
