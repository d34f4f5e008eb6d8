// Package core – shared cryptographic kernel for the GPPN/Veritas stack.
//
// Exposes:
//   - Sign / Verify       – Ed25519.
//   - DeriveSharedSecret   – X25519 key agreement.
//   - Encrypt / Decrypt    – XChaCha20-Poly1305 authenticated encryption.
//   - Hash / Commit        – BLAKE3 hashing and hiding/binding commitments.
//   - DeriveKey            – Argon2id KDF.
package core

import (
	"crypto/ed25519"
	crand "crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"lukechampine.com/blake3"
)

// Sign produces a 64-byte Ed25519 signature over payload.
func Sign(priv ed25519.PrivateKey, payload []byte) ([]byte, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: want %d got %d", ErrInvalidKeyLength, ed25519.PrivateKeySize, len(priv))
	}
	return ed25519.Sign(priv, payload), nil
}

// Verify checks a 64-byte Ed25519 signature over payload against pub.
// A malformed key or signature is reported as a failed verification, not
// an error: callers should decode this as "valid: false".
func Verify(pub ed25519.PublicKey, payload, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pub, payload, sig)
}

// GenerateKeypair returns a fresh Ed25519 keypair.
func GenerateKeypair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(crand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrKeyDerivationError, err)
	}
	return pub, priv, nil
}

// X25519Keypair holds a Curve25519 key-agreement keypair.
type X25519Keypair struct {
	Public  [32]byte
	Private [32]byte
}

// GenerateX25519Keypair produces a fresh X25519 keypair.
func GenerateX25519Keypair() (*X25519Keypair, error) {
	var kp X25519Keypair
	if _, err := crand.Read(kp.Private[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivationError, err)
	}
	pub, err := curve25519.X25519(kp.Private[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivationError, err)
	}
	copy(kp.Public[:], pub)
	return &kp, nil
}

// DeriveSharedSecret computes the X25519 shared secret between a local
// private key and a remote public key.
func DeriveSharedSecret(priv, peerPub [32]byte) ([32]byte, error) {
	var out [32]byte
	shared, err := curve25519.X25519(priv[:], peerPub[:])
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrKeyDerivationError, err)
	}
	copy(out[:], shared)
	return out, nil
}

// Encrypt seals plaintext with XChaCha20-Poly1305 under key, returning
// nonce||ciphertext. key must be 32 bytes.
func Encrypt(key, plaintext, additionalData []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyLength, err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := crand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionError, err)
	}
	ciphertext := aead.Seal(nil, nonce, plaintext, additionalData)
	return append(nonce, ciphertext...), nil
}

// Decrypt opens a nonce||ciphertext payload produced by Encrypt. Failure
// is terminal for that payload: there is no partial-success outcome.
func Decrypt(key, sealed, additionalData []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyLength, err)
	}
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: sealed payload too short", ErrDecryptionError)
	}
	nonce, ciphertext := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionError, err)
	}
	return plaintext, nil
}

// Hash returns the 32-byte BLAKE3 digest of data.
func Hash(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// HashConcat returns BLAKE3(a||b), the internal-node hash used throughout
// the Merkle and commitment primitives.
func HashConcat(a, b []byte) [32]byte {
	buf := make([]byte, 0, len(a)+len(b))
	buf = append(buf, a...)
	buf = append(buf, b...)
	return Hash(buf)
}

// Argon2idParams controls the cost of DeriveKey.
type Argon2idParams struct {
	Time    uint32
	MemKiB  uint32
	Threads uint8
	KeyLen  uint32
}

// DefaultArgon2idParams are conservative interactive-login parameters.
var DefaultArgon2idParams = Argon2idParams{Time: 1, MemKiB: 64 * 1024, Threads: 4, KeyLen: 32}

// DeriveKey derives a symmetric key from a passphrase and salt using
// Argon2id.
func DeriveKey(passphrase, salt []byte, p Argon2idParams) []byte {
	return argon2.IDKey(passphrase, salt, p.Time, p.MemKiB, p.Threads, p.KeyLen)
}

// Zeroize overwrites b in place. Best-effort: the garbage collector may
// already have made copies before this runs. Ed25519 signing keys and
// X25519 private scalars must be wiped via this helper once no longer
// needed.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
