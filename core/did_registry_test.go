package core

import "testing"

func TestDidRegistryPublishResolve(t *testing.T) {
	r := NewDidRegistry(NewMemoryStore())
	doc := DidDocument{ID: DID("did:gppn:key:alice")}
	if err := r.Publish(doc); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	got, found, err := r.Resolve(doc.ID)
	if err != nil || !found {
		t.Fatalf("expected resolve to find document (err=%v, found=%v)", err, found)
	}
	if got.ID != doc.ID {
		t.Fatalf("unexpected document id: %s", got.ID)
	}
}

func TestDidRegistryResolveNotFound(t *testing.T) {
	r := NewDidRegistry(NewMemoryStore())
	_, found, err := r.Resolve(DID("did:gppn:key:ghost"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if found {
		t.Fatalf("expected not found")
	}
}

func TestDidRegistryPublishRejectsInvalidDID(t *testing.T) {
	r := NewDidRegistry(NewMemoryStore())
	if err := r.Publish(DidDocument{ID: DID("not-a-did")}); err != ErrInvalidDID {
		t.Fatalf("expected ErrInvalidDID, got %v", err)
	}
}

func TestDidRegistryRevocation(t *testing.T) {
	r := NewDidRegistry(NewMemoryStore())
	revoked, err := r.IsRevoked("cred-1")
	if err != nil || revoked {
		t.Fatalf("expected not revoked initially")
	}
	if err := r.Revoke("cred-1"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err = r.IsRevoked("cred-1")
	if err != nil || !revoked {
		t.Fatalf("expected revoked after Revoke")
	}
}

func TestDidRegistryListDocuments(t *testing.T) {
	r := NewDidRegistry(NewMemoryStore())
	r.Publish(DidDocument{ID: DID("did:gppn:key:a")})
	r.Publish(DidDocument{ID: DID("did:gppn:key:b")})
	docs, err := r.ListDocuments()
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
}
