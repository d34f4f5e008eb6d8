package core

import (
	"crypto/ed25519"
	"sync"
)

// IdentityKeyStore holds a node's Ed25519 signing keypair and any X25519
// keys derived for session encryption. Grounded on core/wallet.go's
// in-memory key-material holder, narrowed from an HD wallet to the
// single-identity keypair the spec's peer model calls for.
type IdentityKeyStore struct {
	mu      sync.RWMutex
	signPub ed25519.PublicKey
	signPriv ed25519.PrivateKey
	x25519  *X25519Keypair
}

// NewIdentityKeyStore generates a fresh Ed25519 keypair and wraps it.
func NewIdentityKeyStore() (*IdentityKeyStore, error) {
	pub, priv, err := GenerateKeypair()
	if err != nil {
		return nil, err
	}
	return &IdentityKeyStore{signPub: pub, signPriv: priv}, nil
}

// LoadIdentityKeyStore wraps an existing Ed25519 keypair, e.g. one read
// from a config-supplied key file.
func LoadIdentityKeyStore(pub ed25519.PublicKey, priv ed25519.PrivateKey) *IdentityKeyStore {
	return &IdentityKeyStore{signPub: pub, signPriv: priv}
}

// PublicKey returns the node's Ed25519 public key.
func (k *IdentityKeyStore) PublicKey() ed25519.PublicKey {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.signPub
}

// Sign signs payload with the node's private key.
func (k *IdentityKeyStore) Sign(payload []byte) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return Sign(k.signPriv, payload)
}

// EnsureX25519 lazily derives a session-encryption keypair and returns
// its public half.
func (k *IdentityKeyStore) EnsureX25519() ([32]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.x25519 == nil {
		kp, err := GenerateX25519Keypair()
		if err != nil {
			return [32]byte{}, err
		}
		k.x25519 = kp
	}
	return k.x25519.Public, nil
}

// SharedSecret derives the X25519 shared secret with a peer's public key.
func (k *IdentityKeyStore) SharedSecret(peerPub [32]byte) ([32]byte, error) {
	k.mu.RLock()
	kp := k.x25519
	k.mu.RUnlock()
	if kp == nil {
		if _, err := k.EnsureX25519(); err != nil {
			return [32]byte{}, err
		}
		k.mu.RLock()
		kp = k.x25519
		k.mu.RUnlock()
	}
	return DeriveSharedSecret(kp.Private, peerPub)
}

// Close zeroizes key material held in memory.
func (k *IdentityKeyStore) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	Zeroize(k.signPriv)
	if k.x25519 != nil {
		Zeroize(k.x25519.Private[:])
	}
}
