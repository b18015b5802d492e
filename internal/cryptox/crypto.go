// Package cryptox implements the key derivation and AEAD sealing used by the
// encrypted (secure) storage tier.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"

	"github.com/dmitrijs2005/vigilkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the length of derived keys (AES-256).
	KeySize = 32
	// SaltSize is the length of keyring salts.
	SaltSize = 32
)

var ErrInvalidKey = errors.New("invalid key length")

// DeriveKey stretches a passphrase into a KeySize key with argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// MakeVerifier returns a value that can be stored next to the salt to check a
// candidate key without keeping the key itself.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-256-GCM under key, binding aad to the
// ciphertext. A fresh random nonce is generated for every call.
//
//	ct, nonce, err := cryptox.Seal(key, []byte(`{"userId":"u1"}`), []byte("vigil.session"))
func Seal(key, plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	return aesgcm.Seal(nil, nonce, plaintext, aad), nonce, nil
}

// Open reverses Seal. It fails if key, nonce or aad differ from the values
// used when sealing, or if the ciphertext was modified.
func Open(key, ciphertext, nonce, aad []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, errors.New("invalid nonce length")
	}
	return aesgcm.Open(nil, nonce, ciphertext, aad)
}
