package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_DeterministicAndSalted(t *testing.T) {
	pass := []byte("correct horse")

	k1 := DeriveKey(pass, []byte("salt-1"))
	k2 := DeriveKey(pass, []byte("salt-1"))
	k3 := DeriveKey(pass, []byte("salt-2"))

	require.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestMakeVerifier(t *testing.T) {
	key := DeriveKey([]byte("p"), []byte("s"))
	v := MakeVerifier(key)

	assert.Len(t, v, 32)
	assert.Equal(t, v, MakeVerifier(key))
	assert.False(t, bytes.Equal(v, key), "verifier must not reveal the key")
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("p"), []byte("s"))
	plain := []byte(`{"userId":"u1","fullName":"Jean Dupont"}`)

	ct, nonce, err := Seal(key, plain, []byte("vigil.session"))
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "Jean")

	got, err := Open(key, ct, nonce, []byte("vigil.session"))
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestSeal_FreshNonceEachCall(t *testing.T) {
	key := DeriveKey([]byte("p"), []byte("s"))

	ct1, n1, err := Seal(key, []byte("same"), nil)
	require.NoError(t, err)
	ct2, n2, err := Seal(key, []byte("same"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
	assert.NotEqual(t, ct1, ct2)
}

func TestOpen_Failures(t *testing.T) {
	key := DeriveKey([]byte("p"), []byte("s"))
	other := DeriveKey([]byte("q"), []byte("s"))

	ct, nonce, err := Seal(key, []byte("secret"), []byte("k1"))
	require.NoError(t, err)

	tampered := append([]byte(nil), ct...)
	tampered[0] ^= 0xFF

	tests := []struct {
		name  string
		key   []byte
		ct    []byte
		nonce []byte
		aad   []byte
	}{
		{"wrong key", other, ct, nonce, []byte("k1")},
		{"wrong aad", key, ct, nonce, []byte("k2")},
		{"tampered", key, tampered, nonce, []byte("k1")},
		{"short nonce", key, ct, nonce[:4], []byte("k1")},
		{"bad key length", key[:10], ct, nonce, []byte("k1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.key, tt.ct, tt.nonce, tt.aad)
			require.Error(t, err)
		})
	}
}

func TestSeal_InvalidKey(t *testing.T) {
	_, _, err := Seal([]byte("short"), []byte("x"), nil)
	require.ErrorIs(t, err, ErrInvalidKey)
}
