package core

import (
	"encoding/json"
	"sync"
)

// DidRegistry resolves DIDs to DID Documents and tracks credential
// revocation. Grounded on core/idwallet_registration.go's
// singleton-over-a-StateRW pattern, generalized from Ledger/Address to
// the StateRW contract and DID.
type DidRegistry struct {
	mu      sync.RWMutex
	store   StateRW
	docNS   []byte
	revNS   []byte
}

// NewDidRegistry wires a registry over the given state store.
func NewDidRegistry(store StateRW) *DidRegistry {
	return &DidRegistry{store: store, docNS: []byte("diddoc:"), revNS: []byte("revoked:")}
}

func (r *DidRegistry) docKey(id DID) []byte {
	return append(append([]byte(nil), r.docNS...), []byte(id)...)
}

func (r *DidRegistry) revKey(credID string) []byte {
	return append(append([]byte(nil), r.revNS...), []byte(credID)...)
}

// Publish stores or replaces a DID Document under its own id.
func (r *DidRegistry) Publish(doc DidDocument) error {
	if !doc.ID.Valid() {
		return ErrInvalidDID
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.SetState(r.docKey(doc.ID), data)
}

// Resolve returns the DID Document registered for id, if any.
func (r *DidRegistry) Resolve(id DID) (DidDocument, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ok, err := r.store.HasState(r.docKey(id))
	if err != nil || !ok {
		return DidDocument{}, false, err
	}
	val, err := r.store.GetState(r.docKey(id))
	if err != nil {
		return DidDocument{}, false, err
	}
	var doc DidDocument
	if err := json.Unmarshal(val, &doc); err != nil {
		return DidDocument{}, false, err
	}
	return doc, true, nil
}

// Revoke marks a credential id as revoked.
func (r *DidRegistry) Revoke(credID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.SetState(r.revKey(credID), []byte{1})
}

// IsRevoked reports whether a credential id has been revoked.
func (r *DidRegistry) IsRevoked(credID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.HasState(r.revKey(credID))
}

// ListDocuments returns every published DID Document.
func (r *DidRegistry) ListDocuments() ([]DidDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it := r.store.PrefixIterator(r.docNS)
	var out []DidDocument
	for it.Next() {
		var doc DidDocument
		if err := json.Unmarshal(it.Value(), &doc); err != nil {
			continue
		}
		out = append(out, doc)
	}
	return out, it.Error()
}
