package core

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func sampleCredential() *VerifiableCredential {
	return &VerifiableCredential{
		ID:           uuid.New(),
		Types:        []string{"VerifiableCredential", "KycCredential"},
		IssuerDID:    DID("did:gppn:key:issuer"),
		SubjectDID:   DID("did:gppn:key:subject"),
		IssuanceDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Claims:       map[string]interface{}{"level": "2"},
		Status:       VCActive,
	}
}

func TestSigningPayloadDeterministicAcrossClaimOrder(t *testing.T) {
	vc1 := sampleCredential()
	vc1.Claims = map[string]interface{}{"b": "2", "a": "1"}
	vc2 := sampleCredential()
	vc2.ID = vc1.ID
	vc2.Claims = map[string]interface{}{"a": "1", "b": "2"}

	p1, err := vc1.SigningPayload()
	if err != nil {
		t.Fatalf("SigningPayload: %v", err)
	}
	p2, err := vc2.SigningPayload()
	if err != nil {
		t.Fatalf("SigningPayload: %v", err)
	}
	if string(p1) != string(p2) {
		t.Fatalf("expected claim-order-independent canonical payload")
	}
}

func TestSignAndVerifyCredential(t *testing.T) {
	pub, priv, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	vc := sampleCredential()
	if err := SignCredential(vc, priv, "Ed25519VerificationKey2020", time.Now()); err != nil {
		t.Fatalf("SignCredential: %v", err)
	}

	registry := NewDidRegistry(NewMemoryStore())
	verifier := NewCredentialVerifier(registry, vc.IssuerDID)
	result := verifier.Check(vc, pub, time.Now())
	if !result.Valid {
		t.Fatalf("expected credential to verify, checks=%+v", result.Checks)
	}
}

func TestCredentialVerifierRejectsUntrustedIssuer(t *testing.T) {
	pub, priv, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	vc := sampleCredential()
	if err := SignCredential(vc, priv, "Ed25519VerificationKey2020", time.Now()); err != nil {
		t.Fatalf("SignCredential: %v", err)
	}

	registry := NewDidRegistry(NewMemoryStore())
	verifier := NewCredentialVerifier(registry) // no trusted issuers
	result := verifier.Check(vc, pub, time.Now())
	if result.Valid {
		t.Fatalf("expected verification to fail for untrusted issuer")
	}
}

func TestCredentialVerifierRejectsExpired(t *testing.T) {
	pub, priv, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	vc := sampleCredential()
	past := time.Now().Add(-time.Hour)
	vc.ExpirationDate = &past
	if err := SignCredential(vc, priv, "Ed25519VerificationKey2020", time.Now()); err != nil {
		t.Fatalf("SignCredential: %v", err)
	}

	registry := NewDidRegistry(NewMemoryStore())
	verifier := NewCredentialVerifier(registry, vc.IssuerDID)
	result := verifier.Check(vc, pub, time.Now())
	if result.Valid {
		t.Fatalf("expected verification to fail for expired credential")
	}
}

func TestCredentialVerifierRejectsRevoked(t *testing.T) {
	pub, priv, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	vc := sampleCredential()
	if err := SignCredential(vc, priv, "Ed25519VerificationKey2020", time.Now()); err != nil {
		t.Fatalf("SignCredential: %v", err)
	}

	registry := NewDidRegistry(NewMemoryStore())
	if err := registry.Revoke(vc.ID.String()); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	verifier := NewCredentialVerifier(registry, vc.IssuerDID)
	result := verifier.Check(vc, pub, time.Now())
	if result.Valid {
		t.Fatalf("expected verification to fail for revoked credential")
	}
}

func TestCredentialVCTransitions(t *testing.T) {
	vc := sampleCredential()
	vc.Status = VCDraft
	if err := vc.Transition(VCIssued); err != nil {
		t.Fatalf("Transition to Issued: %v", err)
	}
	if err := vc.Transition(VCActive); err != nil {
		t.Fatalf("Transition to Active: %v", err)
	}
	if err := vc.Transition(VCRevoked); err != nil {
		t.Fatalf("Transition to Revoked: %v", err)
	}
	if err := vc.Transition(VCActive); err != ErrInvalidStateTransition {
		t.Fatalf("expected ErrInvalidStateTransition from Revoked, got %v", err)
	}
}
