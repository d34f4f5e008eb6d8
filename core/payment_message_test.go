package core

import (
	"math/big"
	"testing"
)

func buildValidPM(t *testing.T) *PaymentMessage {
	t.Helper()
	pm, err := NewPaymentMessageBuilder().
		Sender(DID("did:gppn:key:sender")).
		Receiver(DID("did:gppn:key:receiver")).
		Amount(Amount{Value: big.NewInt(500), Currency: Currency{Kind: CurrencyFiat, Code: "USD"}}).
		TimestampMs(1_700_000_000_000).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return pm
}

func TestPaymentMessageBuilderDefaults(t *testing.T) {
	pm := buildValidPM(t)
	if pm.Version != 1 {
		t.Fatalf("expected default version 1, got %d", pm.Version)
	}
	if pm.TTLSeconds != defaultTTLSeconds {
		t.Fatalf("expected default ttl %d, got %d", defaultTTLSeconds, pm.TTLSeconds)
	}
	if pm.State != PMCreated {
		t.Fatalf("expected default state Created, got %s", pm.State)
	}
}

func TestPaymentMessageValidateRejectsSameParty(t *testing.T) {
	_, err := NewPaymentMessageBuilder().
		Sender(DID("did:gppn:key:a")).
		Receiver(DID("did:gppn:key:a")).
		Amount(Amount{Value: big.NewInt(1), Currency: Currency{Code: "USD"}}).
		TimestampMs(1).
		Build()
	if err != ErrSameParty {
		t.Fatalf("expected ErrSameParty, got %v", err)
	}
}

func TestPaymentMessageValidateRejectsZeroAmount(t *testing.T) {
	_, err := NewPaymentMessageBuilder().
		Sender(DID("did:gppn:key:a")).
		Receiver(DID("did:gppn:key:b")).
		Amount(Amount{Value: big.NewInt(0), Currency: Currency{Code: "USD"}}).
		TimestampMs(1).
		Build()
	if err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestPaymentMessageValidateRejectsMissingTimestamp(t *testing.T) {
	_, err := NewPaymentMessageBuilder().
		Sender(DID("did:gppn:key:a")).
		Receiver(DID("did:gppn:key:b")).
		Amount(Amount{Value: big.NewInt(1), Currency: Currency{Code: "USD"}}).
		Build()
	if err != ErrInvalidTimestamp {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
}

func TestPaymentMessageIsExpired(t *testing.T) {
	pm := buildValidPM(t)
	pm.TimestampMs = 1000
	pm.TTLSeconds = 10
	if pm.IsExpired(10_999) {
		t.Fatalf("expected not expired just before boundary")
	}
	if !pm.IsExpired(11_001) {
		t.Fatalf("expected expired just after boundary")
	}
}

func TestPaymentMessageSigningPayloadDeterministic(t *testing.T) {
	pm := buildValidPM(t)
	p1 := pm.SigningPayload()
	p2 := pm.SigningPayload()
	if string(p1) != string(p2) {
		t.Fatalf("expected deterministic signing payload")
	}

	other := buildValidPM(t)
	other.PMID = pm.PMID
	other.Metadata = []byte("different metadata")
	if string(pm.SigningPayload()) == string(other.SigningPayload()) {
		t.Fatalf("expected different metadata to change signing payload")
	}
}

func TestPaymentMessageSignAndVerify(t *testing.T) {
	pub, priv, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	pm := buildValidPM(t)
	if err := pm.SignWith(priv); err != nil {
		t.Fatalf("SignWith: %v", err)
	}
	if !pm.VerifySignature(pub) {
		t.Fatalf("expected signature to verify")
	}
	pm.Amount.Value = big.NewInt(999)
	if pm.VerifySignature(pub) {
		t.Fatalf("expected signature to fail after tampering with amount")
	}
}
