package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// keySalt is fixed so the same configured key always yields the same AES key;
// backups written before a restart must stay readable.
var keySalt = []byte("besfit/aes-gcm/v1")

const keyIterations = 100_000

// deriveKey stretches the configured key to 32 bytes with PBKDF2-SHA256.
func deriveKey(keyStr string) []byte {
	return pbkdf2.Key([]byte(keyStr), keySalt, keyIterations, 32, sha256.New)
}

func newGCM(keyStr string) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(keyStr))
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aesgcm, nil
}

// EncryptAES encrypts with AES-256-GCM and returns nonce+ciphertext.
func EncryptAES(keyStr string, plaintext []byte) ([]byte, error) {
	aesgcm, err := newGCM(keyStr)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// DecryptAES reverses EncryptAES; data must be nonce+ciphertext.
func DecryptAES(keyStr string, data []byte) ([]byte, error) {
	aesgcm, err := newGCM(keyStr)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(data) < ns {
		return nil, fmt.Errorf("cipher too short")
	}
	nonce, ciphertext := data[:ns], data[ns:]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}

// EncryptString encrypts plain and base64-encodes the result for text
// columns. An empty key or value is returned unchanged.
func EncryptString(keyStr, plain string) (string, error) {
	if plain == "" || keyStr == "" {
		return plain, nil
	}
	b, err := EncryptAES(keyStr, []byte(plain))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecryptString reverses EncryptString.
func DecryptString(keyStr, enc string) (string, error) {
	if enc == "" || keyStr == "" {
		return enc, nil
	}
	b, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	plain, err := DecryptAES(keyStr, b)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
