package core

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const defaultTTLSeconds uint32 = 300

// PaymentMessageBuilder assembles a PaymentMessage, validating it on
// Build(). Zero-value builders are usable; Build() fails on missing
// required fields.
type PaymentMessageBuilder struct {
	pm PaymentMessage
}

// NewPaymentMessageBuilder starts a builder with defaults: version 1,
// ttl 300s, state Created.
func NewPaymentMessageBuilder() *PaymentMessageBuilder {
	return &PaymentMessageBuilder{pm: PaymentMessage{
		Version:    1,
		TTLSeconds: defaultTTLSeconds,
		State:      PMCreated,
	}}
}

func (b *PaymentMessageBuilder) Sender(d DID) *PaymentMessageBuilder {
	b.pm.Sender = d
	return b
}

func (b *PaymentMessageBuilder) Receiver(d DID) *PaymentMessageBuilder {
	b.pm.Receiver = d
	return b
}

func (b *PaymentMessageBuilder) Amount(a Amount) *PaymentMessageBuilder {
	b.pm.Amount = a
	return b
}

func (b *PaymentMessageBuilder) TTLSeconds(ttl uint32) *PaymentMessageBuilder {
	b.pm.TTLSeconds = ttl
	return b
}

func (b *PaymentMessageBuilder) TimestampMs(ts uint64) *PaymentMessageBuilder {
	b.pm.TimestampMs = ts
	return b
}

func (b *PaymentMessageBuilder) Metadata(m []byte) *PaymentMessageBuilder {
	b.pm.Metadata = m
	return b
}

func (b *PaymentMessageBuilder) SettlementPreferences(prefs []SettlementPreference) *PaymentMessageBuilder {
	b.pm.SettlementPreferences = prefs
	return b
}

func (b *PaymentMessageBuilder) Conditions(c []Condition) *PaymentMessageBuilder {
	b.pm.Conditions = c
	return b
}

func (b *PaymentMessageBuilder) RoutingHints(h []RoutingHint) *PaymentMessageBuilder {
	b.pm.RoutingHints = h
	return b
}

// Build assigns a time-ordered pm_id and validates the message.
func (b *PaymentMessageBuilder) Build() (*PaymentMessage, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("pm_id generation: %w", err)
	}
	b.pm.PMID = id
	if err := b.pm.Validate(); err != nil {
		return nil, err
	}
	out := b.pm
	return &out, nil
}

// Validate checks the PM invariants of §3 (construction-time only; never
// surfaced to peers).
func (pm *PaymentMessage) Validate() error {
	if pm.Version == 0 {
		return ErrInvalidVersion
	}
	if pm.Sender == "" || pm.Receiver == "" {
		return ErrMissingField
	}
	if !pm.Sender.Valid() || !pm.Receiver.Valid() {
		return ErrInvalidDID
	}
	if pm.Sender == pm.Receiver {
		return ErrSameParty
	}
	if pm.Amount.Value == nil || pm.Amount.Value.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !pm.Amount.FitsUint128() {
		return ErrInvalidAmount
	}
	if pm.TTLSeconds == 0 {
		return ErrInvalidTTL
	}
	if pm.TimestampMs == 0 {
		return ErrInvalidTimestamp
	}
	return nil
}

// IsExpired reports whether the PM is expired at nowMs.
// is_expired(now) ≡ now > timestamp + ttl*1000.
func (pm *PaymentMessage) IsExpired(nowMs uint64) bool {
	return nowMs > pm.TimestampMs+uint64(pm.TTLSeconds)*1000
}

// SigningPayload renders the byte-exact canonical payload covered by the
// PM signature. Deterministic: identical PMs always produce identical
// bytes, across calls and across restarts.
func (pm *PaymentMessage) SigningPayload() []byte {
	buf := make([]byte, 0, 128+len(pm.Metadata))
	buf = append(buf, pm.Version)
	buf = append(buf, pm.PMID[:]...)

	buf = appendLenPrefixed(buf, []byte(pm.Sender))
	buf = appendLenPrefixed(buf, []byte(pm.Receiver))

	var amountBytes [16]byte
	if pm.Amount.Value != nil {
		pm.Amount.Value.FillBytes(amountBytes[:])
	}
	buf = append(buf, amountBytes[:]...)

	buf = appendLenPrefixed(buf, []byte(pm.Amount.Currency.Code))

	var ttlBuf [4]byte
	binary.BigEndian.PutUint32(ttlBuf[:], pm.TTLSeconds)
	buf = append(buf, ttlBuf[:]...)

	var tsBuf [8]byte
	binary.BigEndian.PutUint64(tsBuf[:], pm.TimestampMs)
	buf = append(buf, tsBuf[:]...)

	if len(pm.Metadata) > 0 {
		h := Hash(pm.Metadata)
		buf = append(buf, h[:]...)
	}
	return buf
}

func appendLenPrefixed(buf, data []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf = append(buf, lenBuf[:]...)
	return append(buf, data...)
}

// SignWith signs the PM's canonical payload and stores the resulting
// 64-byte signature.
func (pm *PaymentMessage) SignWith(priv ed25519.PrivateKey) error {
	sig, err := Sign(priv, pm.SigningPayload())
	if err != nil {
		return err
	}
	copy(pm.Signature[:], sig)
	return nil
}

// VerifySignature reports whether the PM's stored signature is valid
// over its own canonical payload under pub.
func (pm *PaymentMessage) VerifySignature(pub ed25519.PublicKey) bool {
	return Verify(pub, pm.SigningPayload(), pm.Signature[:])
}

// amountFromUint64 is a small convenience constructor used by callers
// and tests that don't need arbitrary-precision amounts.
func amountFromUint64(v uint64, code string, kind CurrencyKind) Amount {
	return Amount{Value: new(big.Int).SetUint64(v), Currency: Currency{Kind: kind, Code: code}}
}
