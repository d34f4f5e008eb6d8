package core

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InternalAdapter is the in-memory reference settlement backend.
// Grounded on core/escrow.go's mutex-guarded get-modify-put idiom: a
// single mutex serializes every read-modify-write sequence across its
// three maps so that a confirm's double-entry pair is never observed
// half-posted.
type InternalAdapter struct {
	mu          sync.Mutex
	settlements map[uuid.UUID]SettlementRecord
	ledger      map[uuid.UUID]LedgerEntry
	balances    map[string]*big.Int // "{did}:{currency}" -> signed balance
	currencies  map[string]bool
}

// NewInternalAdapter returns a reference adapter supporting the given
// currency codes.
func NewInternalAdapter(currencies ...string) *InternalAdapter {
	set := make(map[string]bool, len(currencies))
	for _, c := range currencies {
		set[c] = true
	}
	return &InternalAdapter{
		settlements: make(map[uuid.UUID]SettlementRecord),
		ledger:      make(map[uuid.UUID]LedgerEntry),
		balances:    make(map[string]*big.Int),
		currencies:  set,
	}
}

func balanceKey(did DID, currency string) string { return string(did) + ":" + currency }

func (a *InternalAdapter) AdapterID() string { return "internal" }

func (a *InternalAdapter) SupportedCurrencies() map[string]bool {
	out := make(map[string]bool, len(a.currencies))
	for k, v := range a.currencies {
		out[k] = v
	}
	return out
}

func (a *InternalAdapter) EstimateCost(amount Amount) (Amount, error) {
	return Amount{Value: big.NewInt(0), Currency: amount.Currency}, nil
}

func (a *InternalAdapter) EstimateLatency(amount Amount) (time.Duration, error) {
	return 0, nil
}

// Initiate creates a Settlement in status Initiated.
func (a *InternalAdapter) Initiate(pmID uuid.UUID, amount Amount, sender, receiver DID) (uuid.UUID, error) {
	if !a.currencies[amount.Currency.Code] {
		return uuid.UUID{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, amount.Currency.Code)
	}
	id := uuid.New()
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.settlements[id]; exists {
		return uuid.UUID{}, ErrAlreadyExists
	}
	a.settlements[id] = SettlementRecord{
		SettlementID: id,
		PMID:         pmID,
		Amount:       amount,
		Sender:       sender,
		Receiver:     receiver,
		Status:       SettlementInitiated,
	}
	return id, nil
}

// Confirm transitions Initiated/Pending -> Confirmed and atomically
// posts the sender-debit/receiver-credit ledger entry pair.
func (a *InternalAdapter) Confirm(id uuid.UUID) (SettlementReceipt, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.settlements[id]
	if !ok {
		return SettlementReceipt{}, ErrSettlementNotFound
	}
	if rec.Status != SettlementInitiated && rec.Status != SettlementPending {
		return SettlementReceipt{}, ErrInvalidStateTransition
	}

	currency := rec.Amount.Currency.Code
	senderKey := balanceKey(rec.Sender, currency)
	receiverKey := balanceKey(rec.Receiver, currency)

	senderDelta := new(big.Int).Neg(rec.Amount.Value)
	receiverDelta := new(big.Int).Set(rec.Amount.Value)

	senderEntry := LedgerEntry{ID: uuid.New(), DID: rec.Sender, SignedDelta: senderDelta, SettlementID: id, Currency: currency}
	receiverEntry := LedgerEntry{ID: uuid.New(), DID: rec.Receiver, SignedDelta: receiverDelta, SettlementID: id, Currency: currency}

	a.ledger[senderEntry.ID] = senderEntry
	a.ledger[receiverEntry.ID] = receiverEntry
	a.applyBalance(senderKey, senderDelta)
	a.applyBalance(receiverKey, receiverDelta)

	rec.Status = SettlementConfirmed
	a.settlements[id] = rec

	return SettlementReceipt{
		SettlementID: id,
		AdapterID:    a.AdapterID(),
		Status:       SettlementConfirmed,
		Amount:       rec.Amount,
		Sender:       rec.Sender,
		Receiver:     rec.Receiver,
		ConfirmedAt:  time.Now().UnixMilli(),
	}, nil
}

func (a *InternalAdapter) applyBalance(key string, delta *big.Int) {
	cur, ok := a.balances[key]
	if !ok {
		cur = big.NewInt(0)
	}
	a.balances[key] = new(big.Int).Add(cur, delta)
}

// Rollback: from Initiated/Pending is a pure status change; from
// Confirmed it reverses the balance adjustments and marks RolledBack.
func (a *InternalAdapter) Rollback(id uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.settlements[id]
	if !ok {
		return ErrSettlementNotFound
	}
	switch rec.Status {
	case SettlementInitiated, SettlementPending:
		rec.Status = SettlementRolledBack
		a.settlements[id] = rec
		return nil
	case SettlementConfirmed:
		currency := rec.Amount.Currency.Code
		senderKey := balanceKey(rec.Sender, currency)
		receiverKey := balanceKey(rec.Receiver, currency)
		a.applyBalance(senderKey, new(big.Int).Set(rec.Amount.Value))
		a.applyBalance(receiverKey, new(big.Int).Neg(rec.Amount.Value))
		rec.Status = SettlementRolledBack
		a.settlements[id] = rec
		return nil
	default:
		return ErrInvalidStateTransition
	}
}

func (a *InternalAdapter) GetStatus(id uuid.UUID) (SettlementStatus, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.settlements[id]
	if !ok {
		return "", ErrSettlementNotFound
	}
	return rec.Status, nil
}

// Balance returns the derived balance for (did, currency): the sum of
// all applicable ledger deltas.
func (a *InternalAdapter) Balance(did DID, currency string) *big.Int {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.balances[balanceKey(did, currency)]
	if !ok {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

var _ SettlementAdapter = (*InternalAdapter)(nil)
