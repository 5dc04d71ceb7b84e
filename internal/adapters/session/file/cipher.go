package file

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/user"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	keySalt = "aiprobe-session-store"
	keySize = 32
)

var errMalformedEnvelope = errors.New("malformed session envelope")

// DeriveKey stretches the process-wide secret into an AES-256 key.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}

	key, err := scrypt.Key([]byte(secret), []byte(keySalt), 1<<15, 8, 1, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return key, nil
}

// FallbackSecret derives a machine-local secret from the host and user names.
// It is predictable and only suitable for non-production use.
func FallbackSecret() string {
	host, _ := os.Hostname()
	name := "unknown"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	return "aiprobe:" + host + ":" + name
}

// seal encrypts plaintext with AES-256-CBC and returns "ivHex:cipherHex".
func seal(key, plaintext []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	padded := pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(out), nil
}

func unseal(key []byte, envelope string) ([]byte, error) {
	ivHex, cipherHex, ok := strings.Cut(strings.TrimSpace(envelope), ":")
	if !ok {
		return nil, errMalformedEnvelope
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, errMalformedEnvelope
	}
	data, err := hex.DecodeString(cipherHex)
	if err != nil || len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, errMalformedEnvelope
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)

	return unpad(out, aes.BlockSize)
}

func pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, errMalformedEnvelope
	}
	n := int(data[len(data)-1])
	if n == 0 || n > size || n > len(data) {
		return nil, errMalformedEnvelope
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errMalformedEnvelope
		}
	}
	return data[:len(data)-n], nil
}
