package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// ContentCipher seals and opens journal content with XChaCha20-Poly1305.
// The sealed form is base64(nonce || ciphertext). The key is parsed once at
// construction; a nil *ContentCipher means encryption at rest is disabled.
type ContentCipher struct {
	aead cipher.AEAD
}

// NewContentCipher parses a base64-encoded 32-byte key.
func NewContentCipher(keyBase64 string) (*ContentCipher, error) {
	keyBytes, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, errors.New("encryption key must be base64-encoded")
	}
	if len(keyBytes) != chacha20poly1305.KeySize {
		return nil, errors.New("encryption key must decode to exactly 32 bytes (256 bits)")
	}
	aead, err := chacha20poly1305.NewX(keyBytes)
	if err != nil {
		return nil, err
	}
	return &ContentCipher{aead: aead}, nil
}

// Seal encrypts plaintext. Empty input passes through unchanged.
func (c *ContentCipher) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal. Empty input passes through.
func (c *ContentCipher) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
