package core

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// credentialPayload is the canonical, deterministic JSON view of a
// VerifiableCredential signed over by its issuer: fields are emitted in
// a fixed order, dates as RFC3339, and the proof itself is excluded.
// Field names match spec §4.6's literal canonical payload so that every
// implementation exchanging credentials over core/protocol.go computes
// the same signing bytes.
type credentialPayload struct {
	ID             string                 `json:"id"`
	Types          []string               `json:"type"`
	IssuerDID      string                 `json:"issuer"`
	SubjectDID     string                 `json:"subject"`
	IssuanceDate   string                 `json:"issuanceDate"`
	ExpirationDate string                 `json:"expirationDate,omitempty"`
	Claims         map[string]interface{} `json:"claims"`
}

// SigningPayload returns the canonical bytes an issuer signs over.
func (vc *VerifiableCredential) SigningPayload() ([]byte, error) {
	types := append([]string(nil), vc.Types...)
	sort.Strings(types)

	claimKeys := make([]string, 0, len(vc.Claims))
	for k := range vc.Claims {
		claimKeys = append(claimKeys, k)
	}
	sort.Strings(claimKeys)
	orderedClaims := make(map[string]interface{}, len(vc.Claims))
	for _, k := range claimKeys {
		orderedClaims[k] = vc.Claims[k]
	}

	p := credentialPayload{
		ID:           vc.ID.String(),
		Types:        types,
		IssuerDID:    string(vc.IssuerDID),
		SubjectDID:   string(vc.SubjectDID),
		IssuanceDate: vc.IssuanceDate.UTC().Format(time.RFC3339),
		Claims:       orderedClaims,
	}
	if vc.ExpirationDate != nil {
		p.ExpirationDate = vc.ExpirationDate.UTC().Format(time.RFC3339)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

var vcTransitions = map[VCStatus]map[VCStatus]bool{
	VCDraft:     {VCIssued: true},
	VCIssued:    {VCActive: true},
	VCActive:    {VCSuspended: true, VCRevoked: true, VCExpired: true},
	VCSuspended: {VCActive: true, VCRevoked: true, VCExpired: true},
}

// SignCredential signs the credential's canonical payload and attaches
// the resulting hex-encoded proof.
func SignCredential(vc *VerifiableCredential, priv ed25519.PrivateKey, method string, createdAt time.Time) error {
	payload, err := vc.SigningPayload()
	if err != nil {
		return err
	}
	sig, err := Sign(priv, payload)
	if err != nil {
		return err
	}
	vc.Proof = &VCProof{Signature: hex.EncodeToString(sig), Method: method, Created: createdAt}
	return nil
}

// Transition moves the credential to target if the edge is legal.
func (vc *VerifiableCredential) Transition(target VCStatus) error {
	edges, ok := vcTransitions[vc.Status]
	if !ok || !edges[target] {
		return ErrInvalidStateTransition
	}
	vc.Status = target
	return nil
}

// CredentialVerifier runs an ordered set of checks in Check, mirroring
// spec §4.6: signature_present, issuer_trusted,
// signature_valid, not_expired, revocation_checked.
type CredentialVerifier struct {
	registry    *DidRegistry
	trustedDIDs map[DID]bool
}

// NewCredentialVerifier wires a verifier over a DID registry and a set
// of issuer DIDs trusted a priori.
func NewCredentialVerifier(registry *DidRegistry, trustedIssuers ...DID) *CredentialVerifier {
	trusted := make(map[DID]bool, len(trustedIssuers))
	for _, d := range trustedIssuers {
		trusted[d] = true
	}
	return &CredentialVerifier{registry: registry, trustedDIDs: trusted}
}

// Check runs the full verifier checklist and returns every check's
// outcome alongside the overall verdict.
func (v *CredentialVerifier) Check(vc *VerifiableCredential, issuerPubKey []byte, now time.Time) VerificationResult {
	var checks []VerificationCheck
	overall := true

	addCheck := func(name string, passed bool, detail string) {
		checks = append(checks, VerificationCheck{Name: name, Passed: passed, Detail: detail})
		if !passed {
			overall = false
		}
	}

	hasSig := vc.Proof != nil && vc.Proof.Signature != ""
	addCheck("signature_present", hasSig, "")

	trusted := v.trustedDIDs[vc.IssuerDID]
	addCheck("issuer_trusted", trusted, fmt.Sprintf("issuer=%s", vc.IssuerDID))

	sigValid := false
	if hasSig {
		payload, err := vc.SigningPayload()
		if err == nil {
			if sigBytes, decErr := hex.DecodeString(vc.Proof.Signature); decErr == nil {
				sigValid = Verify(issuerPubKey, payload, sigBytes)
			}
		}
	}
	addCheck("signature_valid", sigValid, "")

	notExpired := vc.ExpirationDate == nil || now.Before(*vc.ExpirationDate)
	addCheck("not_expired", notExpired, "")

	revoked := false
	if v.registry != nil {
		revoked, _ = v.registry.IsRevoked(vc.ID.String())
	}
	addCheck("revocation_checked", !revoked, "")

	return VerificationResult{Valid: overall, Checks: checks}
}
